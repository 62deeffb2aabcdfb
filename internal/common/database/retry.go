// internal/common/database/retry.go
package database

import (
	"context"
	"fmt"
	"time"

	"rental-investment-workers/internal/common/logger"
)

// RetryPolicy retries a connection check with exponential backoff.
type RetryPolicy struct {
	Attempts     int
	InitialDelay time.Duration
	Logger       logger.Logger
}

func DefaultRetryPolicy(log logger.Logger) RetryPolicy {
	return RetryPolicy{Attempts: 15, InitialDelay: 2 * time.Second, Logger: log}
}

// Do runs op until it succeeds, the attempts run out or ctx is done.
func (p RetryPolicy) Do(ctx context.Context, name string, op func(context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.InitialDelay

	var err error
	for i := 0; i < attempts; i++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		if p.Logger != nil {
			p.Logger.Warn(name+" failed, retrying", map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  attempts,
				"nextRetryIn": delay.String(),
			})
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, err)
}
