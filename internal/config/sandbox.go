package config

type SandboxConfig struct {
	NodeBinary         string
	PythonBinary       string
	WorkDir            string
	MaxOutputBytes     int
	MaxConcurrent      int
	DefaultTimeLimitMs int
}

func NewSandboxConfig() *SandboxConfig {
	return &SandboxConfig{
		NodeBinary:         getEnv("SANDBOX_NODE_BINARY", "node"),
		PythonBinary:       getEnv("SANDBOX_PYTHON_BINARY", "python3"),
		WorkDir:            getEnv("SANDBOX_WORKDIR", ""),
		MaxOutputBytes:     getIntEnv("SANDBOX_MAX_OUTPUT_BYTES", 1<<20),
		MaxConcurrent:      getIntEnv("SANDBOX_MAX_CONCURRENT", 8),
		DefaultTimeLimitMs: getIntEnv("SANDBOX_DEFAULT_TIME_LIMIT_MS", 5000),
	}
}
