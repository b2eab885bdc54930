package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the tables used by the catalog, the key-value store and
// the route-time cache. The DDL is valid for both SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLearningPacksQuery := `
	CREATE TABLE IF NOT EXISTS learning_packs (
		pack_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		source TEXT NOT NULL,
		source_label TEXT NOT NULL,
		title TEXT NOT NULL,
		summary TEXT NOT NULL,
		estimated_minutes INTEGER NOT NULL CHECK (estimated_minutes > 0),
		tags TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT ''
	);
	`

	createKVStoreQuery := `
	CREATE TABLE IF NOT EXISTS kv_store (
        store_key TEXT PRIMARY KEY,
        store_value TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );
	`

	createRouteTimeCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_time_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        mode TEXT NOT NULL,
        minutes INTEGER NOT NULL,
        distance_meters INTEGER NOT NULL,
        provider TEXT NOT NULL,
        details TEXT NOT NULL,
        calculated_at TEXT NOT NULL,
        PRIMARY KEY (origin, destination, mode)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_learning_packs_position
    ON learning_packs(position);
	`

	statements := []string{
		createLearningPacksQuery,
		createKVStoreQuery,
		createRouteTimeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
