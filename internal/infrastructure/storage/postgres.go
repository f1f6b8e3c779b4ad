package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS seen_urls (
	url         TEXT PRIMARY KEY,
	status      TEXT NOT NULL,
	recorded_at BIGINT NOT NULL
)`

// OpenPostgres connects to a shared seen store. Several hosts may use the
// same database, but runs must still not overlap.
func OpenPostgres(ctx context.Context, dsn string) (*SeenStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: schema: %w", err)
	}

	return newSeenStore(db, sq.Dollar), nil
}
