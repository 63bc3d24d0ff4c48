package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/google/uuid"
)

var (
	_ domain.SleepEntryRepository = (*InMemorySleepEntryRepository)(nil)
	_ domain.UserRepository       = (*InMemoryUserRepository)(nil)
)

type InMemorySleepEntryRepository struct {
	entries map[string][]*domain.SleepEntry

	mu sync.RWMutex
}

func NewInMemorySleepEntryRepository() *InMemorySleepEntryRepository {
	return &InMemorySleepEntryRepository{
		entries: make(map[string][]*domain.SleepEntry),
	}
}

func (r *InMemorySleepEntryRepository) Create(ctx context.Context, entry *domain.SleepEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	assignIdentity(entry)

	stored := *entry
	r.entries[entry.UserID] = append(r.entries[entry.UserID], &stored)
	return nil
}

func (r *InMemorySleepEntryRepository) CreateBatch(ctx context.Context, entries []*domain.SleepEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		assignIdentity(e)
		if seen[e.ID] || r.hasID(e.UserID, e.ID) {
			return fmt.Errorf("repository: duplicate sleep entry id %s", e.ID)
		}
		seen[e.ID] = true
	}

	for _, e := range entries {
		stored := *e
		r.entries[e.UserID] = append(r.entries[e.UserID], &stored)
	}
	return nil
}

func (r *InMemorySleepEntryRepository) hasID(userID, id string) bool {
	for _, e := range r.entries[userID] {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (r *InMemorySleepEntryRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.SleepEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.entries[userID]
	out := make([]*domain.SleepEntry, 0, len(stored))
	for _, e := range stored {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *InMemorySleepEntryRepository) HasAny(ctx context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries[userID]) > 0, nil
}

type InMemoryUserRepository struct {
	byID    map[string]*domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, taken := r.byEmail[email]; taken {
		return domain.ErrEmailAlreadyExists
	}

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *InMemoryUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	return nil
}

// assignIdentity fills the server-owned fields of a new entry.
func assignIdentity(entry *domain.SleepEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
}
