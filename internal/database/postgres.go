package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens a PostgreSQL connection pool, verifies connectivity,
// initialises the schema, and returns a ready-to-use SQLStore.
func ConnectPostgres(dsn, namespace string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Connection pool defaults, normally these values could be made configurable in production.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err := initSchema(db, PostgresDialect); err != nil {
		db.Close()
		return nil, err
	}

	return NewSQLStore(db, PostgresDialect, namespace), nil
}
