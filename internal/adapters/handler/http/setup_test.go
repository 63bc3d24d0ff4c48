package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/services"
)

type capturingNotifier struct {
	mu     sync.Mutex
	tokens []string
}

func (n *capturingNotifier) SendPasswordReset(_ context.Context, _ *domain.User, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tokens = append(n.tokens, token)
	return nil
}

func (n *capturingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.tokens) == 0 {
		return ""
	}
	return n.tokens[len(n.tokens)-1]
}

type failingEntryRepository struct{}

var errStoreDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

func (failingEntryRepository) Create(context.Context, *domain.SleepEntry) error { return errStoreDown }
func (failingEntryRepository) CreateBatch(context.Context, []*domain.SleepEntry) error {
	return errStoreDown
}
func (failingEntryRepository) ListByUserID(context.Context, string) ([]*domain.SleepEntry, error) {
	return nil, errStoreDown
}
func (failingEntryRepository) HasAny(context.Context, string) (bool, error) {
	return false, errStoreDown
}

type testApp struct {
	router   *gin.Engine
	users    *repository.InMemoryUserRepository
	entries  domain.SleepEntryRepository
	tokens   *services.TokenService
	notifier *capturingNotifier
}

// newTestApp wires real services over in-memory stores. Options adjust the
// router dependencies before the router is built.
func newTestApp(t *testing.T, entries domain.SleepEntryRepository, opts ...func(*RouterDependencies)) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if entries == nil {
		entries = repository.NewInMemorySleepEntryRepository()
	}
	users := repository.NewInMemoryUserRepository()
	logger := zap.NewNop()

	tokens := services.NewTokenService("handler-test-secret", "kanso-test", time.Hour, users)
	notifier := &capturingNotifier{}
	auth := services.NewAuthService(users, tokens, nil, services.PasswordResetConfig{
		Store:    cache.NewMemoryResetTokenStore(),
		Notifier: notifier,
		TTL:      time.Minute,
	}, logger)

	generator := services.NewDefaultDataGenerator(nil)
	predictor := services.NewScorePredictor(services.NewKNNPredictor(services.DefaultNeighbours), services.DefaultMinSamples, logger)

	deps := RouterDependencies{
		AuthHandler:  NewAuthHandler(auth, logger),
		SleepHandler: NewSleepHandler(services.NewSleepService(entries, generator), logger),
		StatsHandler: NewStatsHandler(services.NewStatsService(entries, predictor, generator), logger),
		TokenService: tokens,
		Logger:       logger,
		StartTime:    time.Now(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	router := NewRouter(deps)

	return &testApp{
		router:   router,
		users:    users,
		entries:  entries,
		tokens:   tokens,
		notifier: notifier,
	}
}

// newUser stores a user directly and returns its id with a valid bearer token.
func (a *testApp) newUser(t *testing.T) (string, string) {
	t.Helper()

	id := uuid.NewString()
	user, err := domain.NewUser(id, "sleeper_"+id+"@kanso.app")
	require.NoError(t, err)
	require.NoError(t, a.users.Create(context.Background(), user))

	token, err := a.tokens.GenerateToken(id)
	require.NoError(t, err)
	return id, token
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	return a.doFrom("", method, path, token, body)
}

// doFrom sends the request as if it came through a proxy for clientIP.
func (a *testApp) doFrom(clientIP, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if clientIP != "" {
		req.Header.Set("X-Forwarded-For", clientIP)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "disabled", body["redis"])
}
