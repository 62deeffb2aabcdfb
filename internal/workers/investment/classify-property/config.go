// internal/workers/investment/classify-property/config.go
package classifyproperty

import "time"

type Config struct {
	Timeout       time.Duration
	AlertsEnabled bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       10 * time.Second,
		AlertsEnabled: true,
	}
}
