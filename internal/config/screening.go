package config

type ScreeningConfig struct {
	MaxLines       int
	MaxChars       int
	MaxLoopNesting int
}

func NewScreeningConfig() *ScreeningConfig {
	return &ScreeningConfig{
		MaxLines:       getIntEnv("SCREENING_MAX_LINES", 500),
		MaxChars:       getIntEnv("SCREENING_MAX_CHARS", 20000),
		MaxLoopNesting: getIntEnv("SCREENING_MAX_LOOP_NESTING", 3),
	}
}
