package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	queryTimeout = 3 * time.Second

	dateLayout = "2006-01-02"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		age INTEGER NOT NULL DEFAULT 0,
		sleep_goal DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sleep_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date DATE NOT NULL,
		sleep_duration DOUBLE PRECISION NOT NULL,
		deep_sleep DOUBLE PRECISION NOT NULL DEFAULT 0,
		rem_sleep DOUBLE PRECISION NOT NULL DEFAULT 0,
		light_sleep DOUBLE PRECISION NOT NULL DEFAULT 0,
		quality INTEGER NOT NULL,
		interruptions INTEGER NOT NULL DEFAULT 0,
		bedtime TEXT NOT NULL DEFAULT '',
		wake_time TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sleep_entries_user_date ON sleep_entries(user_id, date)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		age INTEGER NOT NULL DEFAULT 0,
		sleep_goal REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sleep_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		sleep_duration REAL NOT NULL,
		deep_sleep REAL NOT NULL DEFAULT 0,
		rem_sleep REAL NOT NULL DEFAULT 0,
		light_sleep REAL NOT NULL DEFAULT 0,
		quality INTEGER NOT NULL,
		interruptions INTEGER NOT NULL DEFAULT 0,
		bedtime TEXT NOT NULL DEFAULT '',
		wake_time TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sleep_entries_user_date ON sleep_entries(user_id, date)`,
}

// Migrate creates the tables for the database's dialect. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts := postgresSchema
	if isSQLite(db) {
		stmts = sqliteSchema
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("repository: migration failed: %w", err)
		}
	}
	return nil
}

func isSQLite(db *sqlx.DB) bool {
	return strings.HasPrefix(db.DriverName(), "sqlite")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}

	return false
}

// Times cross the driver boundary as text so Postgres and SQLite share one
// scan path: Postgres returns DATE/TIMESTAMPTZ as RFC 3339 when scanned
// into a string.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("repository: unparseable time %q", s)
}
