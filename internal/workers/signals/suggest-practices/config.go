// internal/workers/signals/suggest-practices/config.go
package suggestpractices

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
