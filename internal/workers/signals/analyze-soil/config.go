// internal/workers/signals/analyze-soil/config.go
package analyzesoil

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
