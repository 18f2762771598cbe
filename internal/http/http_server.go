package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mihailob5017/codegames/internal/adapter/limiter"
	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	"github.com/Mihailob5017/codegames/internal/core/services/grading"
	"github.com/Mihailob5017/codegames/internal/handlers"
	"github.com/Mihailob5017/codegames/internal/handlers/execute"
	gradinghandler "github.com/Mihailob5017/codegames/internal/handlers/grading"
)

type ServiceProvider struct {
	gradingService grading.IGradingService
	jwtService     primary.JWTService
	rateLimiter    *limiter.RateLimiter
	healthChecks   map[string]handlers.HealthCheck
}

func NewServiceProvider(
	gradingService grading.IGradingService,
	jwtService primary.JWTService,
	rateLimiter *limiter.RateLimiter,
	healthChecks map[string]handlers.HealthCheck,
) *ServiceProvider {
	return &ServiceProvider{
		gradingService: gradingService,
		jwtService:     jwtService,
		rateLimiter:    rateLimiter,
		healthChecks:   healthChecks,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.gradingService == nil {
		return errors.New("grading service is required")
	}

	r := mux.NewRouter()
	handlers.NewHealthHandler(s.ServiceName, s.ServiceProvider.healthChecks).RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// only the code-running endpoints are rate limited
	api := r.NewRoute().Subrouter()
	if s.ServiceProvider.rateLimiter != nil {
		api.Use(s.ServiceProvider.rateLimiter.Middleware)
	}

	auth := handlers.New(s.ServiceProvider.jwtService, s.logger)
	execute.NewHandler(s.ServiceProvider.gradingService, s.logger).RegisterRoutes(api)
	gradinghandler.NewHandler(s.ServiceProvider.gradingService, s.logger).RegisterRoutes(api, auth.JWTMiddleware)

	s.router = r
	return nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:        fmt.Sprintf(":%d", s.Port),
		Handler:     s.router,
		BaseContext: func(net.Listener) context.Context { return ctx },
		ReadTimeout: 15 * time.Second,
		// grading many slow test cases can take a while
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}
