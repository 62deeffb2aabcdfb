// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"rental-investment-workers/internal/common/config"
)

// PostgresClient holds the listing store connection pool.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pool using the lib/pq driver. No connection is made
// until Ping or the first query.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// ConnectPostgres opens the pool and pings it with backoff.
func ConnectPostgres(ctx context.Context, cfg config.PostgresConfig, policy RetryPolicy) (*PostgresClient, error) {
	pg, err := NewPostgres(cfg)
	if err != nil {
		return nil, err
	}
	if err := policy.Do(ctx, "postgres connection", pg.Ping); err != nil {
		_ = pg.Close()
		return nil, err
	}
	return pg, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
