package repository

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.SleepEntryRepository = (*SQLSleepEntryRepository)(nil)

// SQLSleepEntryRepository works against Postgres and SQLite; queries are
// written with ? and rebound for the driver.
type SQLSleepEntryRepository struct {
	db *sqlx.DB
}

func NewSQLSleepEntryRepository(db *sqlx.DB) *SQLSleepEntryRepository {
	return &SQLSleepEntryRepository{
		db: db,
	}
}

type sleepEntryRow struct {
	ID            string  `db:"id"`
	UserID        string  `db:"user_id"`
	Date          string  `db:"date"`
	SleepDuration float64 `db:"sleep_duration"`
	DeepSleep     float64 `db:"deep_sleep"`
	RemSleep      float64 `db:"rem_sleep"`
	LightSleep    float64 `db:"light_sleep"`
	Quality       int     `db:"quality"`
	Interruptions int     `db:"interruptions"`
	Bedtime       string  `db:"bedtime"`
	WakeTime      string  `db:"wake_time"`
	Notes         string  `db:"notes"`
	CreatedAt     string  `db:"created_at"`
}

func (row sleepEntryRow) toDomain() (*domain.SleepEntry, error) {
	date, err := parseTimestamp(row.Date)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTimestamp(row.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &domain.SleepEntry{
		ID:            row.ID,
		UserID:        row.UserID,
		Date:          domain.DateOnly(date),
		SleepDuration: row.SleepDuration,
		DeepSleep:     row.DeepSleep,
		RemSleep:      row.RemSleep,
		LightSleep:    row.LightSleep,
		Quality:       row.Quality,
		Interruptions: row.Interruptions,
		Bedtime:       row.Bedtime,
		WakeTime:      row.WakeTime,
		Notes:         row.Notes,
		CreatedAt:     createdAt,
	}, nil
}

const insertSleepEntry = `
	INSERT INTO sleep_entries (
		id, user_id, date, sleep_duration, deep_sleep, rem_sleep, light_sleep,
		quality, interruptions, bedtime, wake_time, notes, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func insertArgs(entry *domain.SleepEntry) []any {
	return []any{
		entry.ID,
		entry.UserID,
		formatDate(entry.Date),
		entry.SleepDuration,
		entry.DeepSleep,
		entry.RemSleep,
		entry.LightSleep,
		entry.Quality,
		entry.Interruptions,
		entry.Bedtime,
		entry.WakeTime,
		entry.Notes,
		formatTimestamp(entry.CreatedAt),
	}
}

func (r *SQLSleepEntryRepository) Create(ctx context.Context, entry *domain.SleepEntry) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	assignIdentity(entry)

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertSleepEntry), insertArgs(entry)...); err != nil {
		return fmt.Errorf("repository: create sleep entry failed: %w", err)
	}

	return nil
}

func (r *SQLSleepEntryRepository) CreateBatch(ctx context.Context, entries []*domain.SleepEntry) (err error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin batch failed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(insertSleepEntry))
	if err != nil {
		return fmt.Errorf("repository: prepare batch failed: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		assignIdentity(entry)
		if _, err = stmt.ExecContext(ctx, insertArgs(entry)...); err != nil {
			return fmt.Errorf("repository: create sleep entry batch failed: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit batch failed: %w", err)
	}
	return nil
}

func (r *SQLSleepEntryRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.SleepEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		SELECT id, user_id, date, sleep_duration, deep_sleep, rem_sleep, light_sleep,
		       quality, interruptions, bedtime, wake_time, notes, created_at
		FROM sleep_entries
		WHERE user_id = ?
		ORDER BY date ASC, created_at ASC
	`)

	var rows []sleepEntryRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list sleep entries failed: %w", err)
	}

	entries := make([]*domain.SleepEntry, 0, len(rows))
	for _, row := range rows {
		e, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *SQLSleepEntryRepository) HasAny(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`SELECT EXISTS (SELECT 1 FROM sleep_entries WHERE user_id = ?)`)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("repository: check sleep entries failed: %w", err)
	}

	return exists, nil
}
