package domain

import "context"

type SleepEntryRepository interface {
	// Create persists a new entry and assigns its ID.
	Create(ctx context.Context, entry *SleepEntry) error

	// CreateBatch persists all entries or none of them.
	CreateBatch(ctx context.Context, entries []*SleepEntry) error

	// ListByUserID returns every entry owned by userID.
	// Order is unspecified: callers sort and group the result themselves.
	ListByUserID(ctx context.Context, userID string) ([]*SleepEntry, error)

	// HasAny reports whether userID owns at least one entry.
	HasAny(ctx context.Context, userID string) (bool, error)
}
