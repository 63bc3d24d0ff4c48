package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const resetKeyPrefix = "password_reset:"

// RedisResetTokenStore keeps reset tokens as expiring keys. Consume uses
// GETDEL so a token can be redeemed once even under concurrent requests.
type RedisResetTokenStore struct {
	rdb *redis.Client
}

func NewRedisResetTokenStore(rdb *redis.Client) *RedisResetTokenStore {
	return &RedisResetTokenStore{rdb: rdb}
}

func (s *RedisResetTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, resetKeyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("cache: save reset token: %w", err)
	}
	return nil
}

func (s *RedisResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, resetKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", fmt.Errorf("cache: consume reset token: %w", err)
	}
	return userID, nil
}

type memoryToken struct {
	userID    string
	expiresAt time.Time
}

// MemoryResetTokenStore is the single-process fallback when Redis is not configured.
type MemoryResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
	now    func() time.Time
}

func NewMemoryResetTokenStore() *MemoryResetTokenStore {
	return &MemoryResetTokenStore{
		tokens: make(map[string]memoryToken),
		now:    time.Now,
	}
}

func (s *MemoryResetTokenStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, t := range s.tokens {
		if now.After(t.expiresAt) {
			delete(s.tokens, k)
		}
	}
	s.tokens[token] = memoryToken{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryResetTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.tokens, token)

	if s.now().After(t.expiresAt) {
		return "", domain.ErrInvalidResetToken
	}
	return t.userID, nil
}
