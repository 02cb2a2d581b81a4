package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Dialect holds the statements that differ between SQL drivers.
type Dialect struct {
	Name     string
	Schema   string
	GetQuery string
	SetQuery string
}

var PostgresDialect = Dialect{
	Name: "postgres",
	Schema: `
	CREATE TABLE IF NOT EXISTS kv_store (
		namespace  TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		value      TEXT        NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (namespace, key)
	);
`,
	GetQuery: `
		SELECT value
		FROM kv_store
		WHERE namespace = $1 AND key = $2`,
	SetQuery: `
		INSERT INTO kv_store (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
}

var SQLiteDialect = Dialect{
	Name: "sqlite",
	Schema: `
	CREATE TABLE IF NOT EXISTS kv_store (
		namespace  TEXT      NOT NULL,
		key        TEXT      NOT NULL,
		value      TEXT      NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, key)
	);
`,
	GetQuery: `
		SELECT value
		FROM kv_store
		WHERE namespace = ? AND key = ?`,
	SetQuery: `
		INSERT INTO kv_store (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
}

// SQLStore implements KVStore on top of a single kv_store table.
// Rows are scoped by namespace so several installations can share a database.
type SQLStore struct {
	db        *sql.DB
	dialect   Dialect
	namespace string
}

// NewSQLStore creates a SQLStore backed by the given *sql.DB. The schema must already exist.
func NewSQLStore(db *sql.DB, dialect Dialect, namespace string) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, namespace: namespace}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.GetQuery, s.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	_, err := s.db.ExecContext(ctx, s.dialect.SetQuery, s.namespace, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Ping checks database connectivity. Intended for health check endpoints.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// initSchema pings the database and creates the kv_store table if needed.
func initSchema(db *sql.DB, dialect Dialect) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.ExecContext(ctx, dialect.Schema); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}
