// internal/workers/investment/search-listings/config.go
package searchlistings

import (
	"time"

	"rental-investment-workers/internal/models"
)

type Config struct {
	Timeout  time.Duration
	PageSize int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		PageSize: models.DefaultPageSize,
	}
}
