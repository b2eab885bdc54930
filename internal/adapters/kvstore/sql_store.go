package kvstore

import (
	"commute-learning-service/internal/platform/db"
	"commute-learning-service/internal/platform/obs"
	"commute-learning-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLStore is a KeyValueStore backed by the kv_store table (SQLite or Postgres).
type SQLStore struct {
	DB     *sql.DB
	Driver string
}

func NewSQLStore(conn *sql.DB, driver string) *SQLStore {
	return &SQLStore{DB: conn, Driver: driver}
}

// Fetch the value stored under key.
func (s *SQLStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "kv.sql.Get")(&err)

	if s.DB == nil {
		return "", false, fmt.Errorf("kv get: %w: db is nil", ports.ErrStoreUnavailable)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, errors.New("kv get: key must not be empty")
	}

	q := db.Rebind(s.Driver, `
	SELECT store_value
    FROM kv_store
    WHERE store_key = ?;
	`)

	var value string
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get: query kv_store table: %w", err)
	}

	return value, true, nil
}

// Upsert the value stored under key.
func (s *SQLStore) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "kv.sql.Set")(&err)

	if s.DB == nil {
		return fmt.Errorf("kv set: %w: db is nil", ports.ErrStoreUnavailable)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("kv set: key must not be empty")
	}

	q := db.Rebind(s.Driver, `
	INSERT INTO kv_store (store_key, store_value, updated_at)
    VALUES (?, ?, ?)
	ON CONFLICT (store_key) DO UPDATE
	SET store_value = excluded.store_value,
		updated_at = excluded.updated_at;
	`)

	if _, err := s.DB.ExecContext(ctx, q, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("kv set key=%q: %w", key, err)
	}

	return nil
}
