package config

import "time"

type GradingConfig struct {
	MaxParallelTests int
	ResultCacheTTL   time.Duration
}

func NewGradingConfig() *GradingConfig {
	return &GradingConfig{
		MaxParallelTests: getIntEnv("GRADING_MAX_PARALLEL_TESTS", 4),
		ResultCacheTTL:   getSecondsEnv("GRADING_RESULT_CACHE_TTL_SEC", 600),
	}
}
