package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ domain.SleepEntryRepository = (*CachedSleepEntryRepository)(nil)

// CachedSleepEntryRepository is a read-through Redis cache over a user's
// entry list. Writes go to the next repository and then drop the cached list.
// Redis failures are logged and never fail a request.
type CachedSleepEntryRepository struct {
	next   domain.SleepEntryRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedSleepEntryRepository(next domain.SleepEntryRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedSleepEntryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSleepEntryRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("entry_cache"),
	}
}

func (r *CachedSleepEntryRepository) cacheKey(userID string) string {
	return fmt.Sprintf("sleep_entries:%s", userID)
}

func (r *CachedSleepEntryRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		r.logger.Warn("failed to invalidate cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func (r *CachedSleepEntryRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.SleepEntry, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entries []*domain.SleepEntry
		if err := json.Unmarshal(val, &entries); err == nil {
			return entries, nil
		}
		r.logger.Warn("corrupted cache entry, cleaning up", zap.String("user_id", userID))
		r.cache.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("redis read error", zap.Error(err))
	}

	entries, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("redis set error", zap.Error(setErr))
		}
	}

	return entries, nil
}

func (r *CachedSleepEntryRepository) HasAny(ctx context.Context, userID string) (bool, error) {
	return r.next.HasAny(ctx, userID)
}

func (r *CachedSleepEntryRepository) Create(ctx context.Context, entry *domain.SleepEntry) error {
	if err := r.next.Create(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx, entry.UserID)
	return nil
}

func (r *CachedSleepEntryRepository) CreateBatch(ctx context.Context, entries []*domain.SleepEntry) error {
	if err := r.next.CreateBatch(ctx, entries); err != nil {
		return err
	}
	users := make(map[string]bool)
	for _, e := range entries {
		if !users[e.UserID] {
			users[e.UserID] = true
			r.invalidate(ctx, e.UserID)
		}
	}
	return nil
}
