package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/config"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store bundles the repositories for one storage backend.
type Store struct {
	Backend string
	Entries domain.SleepEntryRepository
	Users   domain.UserRepository

	db *sqlx.DB
}

// NewStore opens the configured backend, applies the schema and, when rdb
// is non-nil, puts the entry cache in front of it.
func NewStore(ctx context.Context, cfg *config.Config, rdb *redis.Client, logger *zap.Logger) (*Store, error) {
	store := &Store{Backend: cfg.StorageBackend}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		store.Entries = NewInMemorySleepEntryRepository()
		store.Users = NewInMemoryUserRepository()
	case config.BackendPostgres, config.BackendSQLite:
		db, err := OpenSQL(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		store.db = db
		store.Entries = NewSQLSleepEntryRepository(db)
		store.Users = NewSQLUserRepository(db)
	default:
		return nil, fmt.Errorf("repository: unknown storage backend %q", cfg.StorageBackend)
	}

	if rdb != nil {
		store.Entries = NewCachedSleepEntryRepository(store.Entries, rdb, cfg.CacheTTL, logger)
	}

	return store, nil
}

// OpenSQL connects to Postgres through pgx or to a SQLite file.
func OpenSQL(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := sqlx.ConnectContext(ctx, "pgx", cfg.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("repository: failed to connect to postgres: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		return db, nil

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("repository: failed to create %s: %w", dir, err)
			}
		}
		db, err := sqlx.ConnectContext(ctx, "sqlite", cfg.SQLitePath+"?_pragma=busy_timeout(5000)")
		if err != nil {
			return nil, fmt.Errorf("repository: failed to open sqlite: %w", err)
		}
		// SQLite allows one writer at a time.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	return nil, fmt.Errorf("repository: %q is not a SQL backend", cfg.StorageBackend)
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
