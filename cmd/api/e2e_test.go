package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/config"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:                 "development",
		LogLevel:            "debug",
		StorageBackend:      config.BackendSQLite,
		SQLitePath:          filepath.Join(t.TempDir(), "e2e.db"),
		JWTSecret:           "e2e-secret",
		JWTIssuer:           "kanso-e2e",
		TokenTTL:            time.Hour,
		ResetTokenTTL:       time.Minute,
		RateLimit:           100,
		RateWindow:          time.Minute,
		CORSOrigins:         []string{"*"},
		PredictorMinSamples: 5,
		PredictorNeighbours: 5,
	}
}

func send(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_SleepLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApplication(ctx, testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer app.Close()

	done := app.seeds.Start(ctx)
	defer func() {
		cancel()
		<-done
	}()

	router := app.router
	var token string

	t.Run("1. Register", func(t *testing.T) {
		w := send(router, http.MethodPost, "/api/v1/auth/register", "", `{
			"email": "e2e@kanso.app",
			"password": "sleepwell",
			"confirm_password": "sleepwell",
			"full_name": "End To End",
			"age": 30,
			"sleep_goal": 8
		}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("2. Login", func(t *testing.T) {
		w := send(router, http.MethodPost, "/api/v1/auth/login", "", `{"email": "e2e@kanso.app", "password": "sleepwell"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		token = resp.Token
	})

	t.Run("3. Default week is seeded in the background", func(t *testing.T) {
		require.NotEmpty(t, token, "Login step failed")

		require.Eventually(t, func() bool {
			w := send(router, http.MethodGet, "/api/v1/sleep/entries", token, "")
			var entries []domain.SleepEntry
			return w.Code == http.StatusOK &&
				json.Unmarshal(w.Body.Bytes(), &entries) == nil &&
				len(entries) == 7
		}, 5*time.Second, 50*time.Millisecond)
	})

	t.Run("4. Add an entry", func(t *testing.T) {
		w := send(router, http.MethodPost, "/api/v1/sleep/entries", token, `{
			"date": "2024-01-10",
			"sleep_duration": 7.5,
			"deep_sleep": 1.5,
			"rem_sleep": 1.8,
			"light_sleep": 4.2,
			"quality": 80,
			"interruptions": 1,
			"bedtime": "23:30",
			"wake_time": "07:00"
		}`)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("5. Overview reflects stored data", func(t *testing.T) {
		w := send(router, http.MethodGet, "/api/v1/sleep/overview", token, "")
		require.Equal(t, http.StatusOK, w.Code)

		var overview domain.SleepOverview
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
		assert.False(t, overview.IsDefault)
		assert.Equal(t, 8, overview.Stats.TotalEntries)
		assert.Len(t, overview.WeeklyData, 7)
	})

	t.Run("6. Weekly records", func(t *testing.T) {
		w := send(router, http.MethodGet, "/api/v1/sleep/weeks", token, "")
		require.Equal(t, http.StatusOK, w.Code)

		var weeks []domain.WeekRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &weeks))
		require.NotEmpty(t, weeks)
		assert.Equal(t, "2024-W2", weeks[0].Key)

		single := send(router, http.MethodGet, "/api/v1/sleep/weeks/2024-W02", token, "")
		assert.Equal(t, http.StatusOK, single.Code)
	})

	t.Run("7. Prediction uses history", func(t *testing.T) {
		w := send(router, http.MethodPost, "/api/v1/sleep/predict", token, `{"sleep_duration": 7.2, "deep_sleep": 1.4, "rem_sleep": 1.6, "light_sleep": 4.2, "interruptions": 1}`)
		require.Equal(t, http.StatusOK, w.Code)

		var p domain.Prediction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, domain.PredictionMethodKNN, p.Method)
		assert.GreaterOrEqual(t, p.Score, 0)
		assert.LessOrEqual(t, p.Score, 100)
	})

	t.Run("8. Auth Error", func(t *testing.T) {
		w := send(router, http.MethodGet, "/api/v1/sleep/overview", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("9. Health", func(t *testing.T) {
		w := send(router, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"connected"`)
	})
}
