package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/config"
)

// uniqueViolation is the postgres error code for duplicate keys
const uniqueViolation = "23505"

// Open connects to PostgreSQL and configures the connection pool
func Open(cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MinConns)
	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StatementTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// base carries the shared connection and statement timeout for every
// repository in this package
type base struct {
	db      *sql.DB
	timeout time.Duration
}

// opContext bounds one statement execution
func (b base) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

// writeErr maps a write failure to the error taxonomy
func writeErr(op string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return apperr.Conflict(op, pqErr.Detail)
	}
	return apperr.Persistence(op, err)
}
