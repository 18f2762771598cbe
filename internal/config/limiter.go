package config

import "time"

type LimiterConfig struct {
	GlobalRPS      float64
	PerClientRPS   float64
	PerClientBurst int
	SweepInterval  time.Duration
}

func NewLimiterConfig() *LimiterConfig {
	return &LimiterConfig{
		GlobalRPS:      getFloatEnv("RATE_LIMIT_GLOBAL_RPS", 50),
		PerClientRPS:   getFloatEnv("RATE_LIMIT_CLIENT_RPS", 2),
		PerClientBurst: getIntEnv("RATE_LIMIT_CLIENT_BURST", 5),
		SweepInterval:  getSecondsEnv("RATE_LIMIT_SWEEP_INTERVAL_SEC", 300),
	}
}
