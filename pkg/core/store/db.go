// Package store persists sessions (Postgres) and best-effort backups
// (local JSON snapshots). The analysis engine never touches it; it is
// read at process start for session recovery and written on explicit
// saves and scheduled backups.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool    *pgxpool.Pool
	poolErr error
	once    sync.Once
)

// InitDB initializes the shared connection pool from DATABASE_URL and
// ensures the session table exists. Safe to call more than once.
func InitDB(ctx context.Context) error {
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			poolErr = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			poolErr = fmt.Errorf("failed to parse database config: %w", err)
			return
		}

		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			poolErr = err
			return
		}

		if _, err := p.Exec(ctx, sessionTableDDL); err != nil {
			p.Close()
			poolErr = fmt.Errorf("failed to ensure session table: %w", err)
			return
		}
		pool = p
	})
	return poolErr
}

const sessionTableDDL = `
	CREATE TABLE IF NOT EXISTS comp_sessions (
		id UUID PRIMARY KEY,
		employees JSONB NOT NULL,
		total_budget DOUBLE PRECISION NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'USD',
		updated_at TIMESTAMPTZ NOT NULL
	);
`

// GetPool returns the shared pool, nil before InitDB succeeds.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close releases the pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
