package config

import "os"

type AppConfig struct {
	DebugMode       bool
	HttpConfig      *HttpConfig
	RedisConfig     *RedisConfig
	PostgresConfig  *PostgresConfig
	JwtConfig       *JwtConfig
	SandboxConfig   *SandboxConfig
	ScreeningConfig *ScreeningConfig
	GradingConfig   *GradingConfig
	LimiterConfig   *LimiterConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:       os.Getenv("DEBUG_MODE") == "true",
		HttpConfig:      NewHttpConfig(),
		RedisConfig:     NewRedisConfig(),
		PostgresConfig:  NewPostgresConfig(),
		JwtConfig:       NewJwtConfig(),
		SandboxConfig:   NewSandboxConfig(),
		ScreeningConfig: NewScreeningConfig(),
		GradingConfig:   NewGradingConfig(),
		LimiterConfig:   NewLimiterConfig(),
	}
}
