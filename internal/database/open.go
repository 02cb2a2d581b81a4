package database

import "fmt"

// Store is a KVStore that owns resources to release on shutdown.
type Store interface {
	KVStore
	Close() error
}

// Options selects and configures a storage backend.
type Options struct {
	Driver      string // "sqlite", "postgres" or "memory"
	SQLitePath  string
	PostgresDSN string
	Namespace   string
}

// Open connects the backend named by opts.Driver.
func Open(opts Options) (Store, error) {
	switch opts.Driver {
	case "sqlite":
		return OpenSQLite(opts.SQLitePath, opts.Namespace)
	case "postgres":
		return ConnectPostgres(opts.PostgresDSN, opts.Namespace)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
