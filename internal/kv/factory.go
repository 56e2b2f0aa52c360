package kv

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	MemoryBackend   = "memory"
	SQLiteBackend   = "sqlite"
	PostgresBackend = "postgres"
)

// BackendConfig carries what Open needs to build a Store.
type BackendConfig struct {
	Type         string
	SQLiteDBPath string
	PostgresURL  string
}

// Open builds the Store selected by the configuration.
func Open(ctx context.Context, cfg BackendConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Type {
	case SQLiteBackend:
		store, err := NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return store, nil
	case PostgresBackend:
		store, err := NewPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres backend: %w", err)
		}
		logger.Info("Initialized Postgres backend")
		return store, nil
	case MemoryBackend:
		logger.Info("Initialized memory backend")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
