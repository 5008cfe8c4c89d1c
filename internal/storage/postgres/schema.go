package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS booking_requests (
		id TEXT PRIMARY KEY,
		service_id TEXT NOT NULL,
		service_name TEXT NOT NULL,
		sub_services JSONB NOT NULL DEFAULT '[]',
		total_price NUMERIC(12, 2) NOT NULL,
		channel TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_booking_requests_requested_at ON booking_requests (requested_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_booking_requests_status ON booking_requests (status)`,
}

// EnsureSchema creates the tables the service writes to. It is safe to run
// on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
