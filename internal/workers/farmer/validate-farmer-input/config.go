// internal/workers/farmer/validate-farmer-input/config.go
package validatefarmerinput

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
