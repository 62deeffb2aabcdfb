// internal/workers/investment/estimate-rent/config.go
package estimaterent

import (
	"time"

	"rental-investment-workers/internal/common/config"
)

type Config struct {
	CacheTTL          time.Duration
	Timeout           time.Duration
	ComparablesSource string
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL:          30 * time.Minute,
		Timeout:           10 * time.Second,
		ComparablesSource: config.ComparablesFromPostgres,
	}
}
