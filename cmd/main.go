package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/Mihailob5017/codegames/internal/adapter/crypto"
	"github.com/Mihailob5017/codegames/internal/adapter/limiter"
	"github.com/Mihailob5017/codegames/internal/adapter/postgres/migrate"
	"github.com/Mihailob5017/codegames/internal/adapter/postgres/problemrepository"
	"github.com/Mihailob5017/codegames/internal/adapter/postgres/submissionrepository"
	"github.com/Mihailob5017/codegames/internal/adapter/redis/resultcache"
	"github.com/Mihailob5017/codegames/internal/adapter/sandbox"
	"github.com/Mihailob5017/codegames/internal/config"
	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	"github.com/Mihailob5017/codegames/internal/core/services/grading"
	"github.com/Mihailob5017/codegames/internal/core/services/harness"
	"github.com/Mihailob5017/codegames/internal/core/services/screening"
	logger2 "github.com/Mihailob5017/codegames/internal/global/logger"
	"github.com/Mihailob5017/codegames/internal/handlers"
	http2 "github.com/Mihailob5017/codegames/internal/http"
	"github.com/Mihailob5017/codegames/internal/schedulerengine"
)

const shutdownTimeout = 10 * time.Second

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()
	logger2.Configure(sysCfg.DebugMode)
	logger := logger2.Logger
	defer func() { _ = logger.Sync() }()

	logger2.Info("Starting grading service", "service", sysCfg.HttpConfig.ServiceName)

	ctxBg, cancelBg := context.WithCancel(context.Background())
	defer cancelBg()

	db, err := setupDatabase(ctxBg, sysCfg.PostgresConfig, logger)
	if err != nil {
		logger2.Error("Failed to set up database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	problemPort := problemrepository.New(db, logger, sysCfg.PostgresConfig.Schema)
	submissionPort := submissionrepository.New(db, logger, sysCfg.PostgresConfig.Schema)
	executor := sandbox.NewProcessExecutorFromConfig(sysCfg.SandboxConfig, logger)

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	gradingSvc := grading.NewGradingService(
		problemPort,
		submissionPort,
		screening.NewScreenerFromConfig(sysCfg.ScreeningConfig),
		harness.NewBuilder(),
		executor,
		logger,
		grading.OptionsFromConfig(sysCfg.GradingConfig, sysCfg.SandboxConfig),
	)
	if err := redisClient.Ping(ctxBg).Err(); err != nil {
		// grading works without the cache, results are just recomputed
		logger2.Warn("Redis unreachable, result cache disabled", "addr", sysCfg.RedisConfig.Url, "error", err)
	} else {
		gradingSvc.SetResultCache(resultcache.NewResultCache(redisClient, logger, sysCfg.GradingConfig.ResultCacheTTL))
	}

	rateLimiter := limiter.NewRateLimiterFromConfig(sysCfg.LimiterConfig)
	healthChecks := map[string]handlers.HealthCheck{
		"postgres": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}
	serviceProvider := http2.NewServiceProvider(gradingSvc, jwtProvider, rateLimiter, healthChecks)

	//server
	httpServer := http2.NewServer(sysCfg.HttpConfig.Port, sysCfg.HttpConfig.ServiceName, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	httpServer.Start(ctxBg)

	housekeeping := schedulerengine.NewSchedulerEngine(logger,
		schedulerengine.Task{
			Name:     "rate-limiter-sweep",
			Interval: sysCfg.LimiterConfig.SweepInterval,
			Run: func(ctx context.Context) {
				if n := rateLimiter.Sweep(sysCfg.LimiterConfig.SweepInterval); n > 0 {
					logger2.Debug("Evicted idle rate limit clients", "evicted", n, "remaining", rateLimiter.Clients())
				}
			},
		},
		schedulerengine.Task{
			Name:     "db-stats",
			Interval: time.Minute,
			Run: func(ctx context.Context) {
				stats := db.Stats()
				logger2.Debug("Database pool stats",
					"open", stats.OpenConnections,
					"inUse", stats.InUse,
					"idle", stats.Idle,
					"waitCount", stats.WaitCount,
				)
			},
		},
	)
	housekeeping.Start(ctxBg)

	<-quit
	logger2.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger2.Error("Server forced to shutdown", "error", err)
	}
	// running programs are killed once the base context is gone
	cancelBg()
	housekeeping.Stop()

	logger2.Info("successfully shutdown server")
}

// setupDatabase opens the PostgreSQL connection and applies the schema when asked to
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig, logger primary.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := migrate.Up(ctx, db, cfg.Schema, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

// InitReader loads <env>.env, "local" when no environment is given.
// A missing file is fine, the process environment is used as is.
func InitReader() {
	environment := "local"
	if len(os.Args) >= 2 {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger2.Error("Error loading env file", "file", environment+".env", "error", err)
		os.Exit(1)
	}
}
