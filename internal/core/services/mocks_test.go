package services

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

type MockSleepEntryRepository struct {
	mock.Mock
}

func (m *MockSleepEntryRepository) Create(ctx context.Context, entry *domain.SleepEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockSleepEntryRepository) CreateBatch(ctx context.Context, entries []*domain.SleepEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockSleepEntryRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.SleepEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SleepEntry), args.Error(1)
}

func (m *MockSleepEntryRepository) HasAny(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, history []*domain.SleepEntry, candidate domain.SleepCandidate) (domain.Prediction, error) {
	args := m.Called(ctx, history, candidate)
	return args.Get(0).(domain.Prediction), args.Error(1)
}

type MockSeedQueue struct {
	mock.Mock
}

func (m *MockSeedQueue) Enqueue(userID string) {
	m.Called(userID)
}

type fakeResetStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{tokens: make(map[string]string)}
}

func (s *fakeResetStore) Save(_ context.Context, token, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *fakeResetStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.tokens, token)
	return userID, nil
}

type capturingNotifier struct {
	tokens []string
}

func (n *capturingNotifier) SendPasswordReset(_ context.Context, _ *domain.User, token string) error {
	n.tokens = append(n.tokens, token)
	return nil
}

func (n *capturingNotifier) last() string {
	if len(n.tokens) == 0 {
		return ""
	}
	return n.tokens[len(n.tokens)-1]
}
