package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/cache"
)

func limiterRedis(t *testing.T) *redis.Client {
	t.Helper()

	host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	pass, ok := os.LookupEnv("REDIS_PASSWORD")
	if !ok {
		pass = "secret_redis_pass_local"
	}

	rdb, err := cache.NewRedisClient(context.Background(), host, port, pass, 1)
	if err != nil {
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}
	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func limitedEngine(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RateLimiterMiddleware(rdb, limit, window, logger))
	engine.GET("/sleep/overview", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"is_default": true})
	})
	return engine
}

func hit(engine *gin.Engine, clientIP string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/sleep/overview", nil)
	req.Header.Set("X-Forwarded-For", clientIP)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type limitedBody struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	RetryInS int    `json:"retry_in_s"`
}

func TestRateLimiterMiddleware_Integration(t *testing.T) {
	rdb := limiterRedis(t)
	ctx := context.Background()

	t.Run("Success: First hit opens a window with an expiry", func(t *testing.T) {
		engine := limitedEngine(rdb, 2, 30*time.Second, zaptest.NewLogger(t))

		w := hit(engine, "10.2.0.1")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

		ttl, err := rdb.TTL(ctx, "rate_limit:10.2.0.1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, 30*time.Second)

		reset, err := strconv.ParseInt(w.Header().Get("X-RateLimit-Reset"), 10, 64)
		require.NoError(t, err)
		assert.InDelta(t, time.Now().Add(30*time.Second).Unix(), reset, 2)
	})

	t.Run("Fail: Over the limit returns the throttle body", func(t *testing.T) {
		engine := limitedEngine(rdb, 1, time.Minute, zaptest.NewLogger(t))

		require.Equal(t, http.StatusOK, hit(engine, "10.2.0.2").Code)
		w := hit(engine, "10.2.0.2")

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		var body limitedBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "too many requests", body.Error)
		assert.NotEmpty(t, body.Message)
		assert.InDelta(t, 60, body.RetryInS, 2)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Success: Key without expiry falls back to the window", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "rate_limit:10.2.0.3", 4, 0).Err())
		engine := limitedEngine(rdb, 4, 45*time.Second, zaptest.NewLogger(t))

		w := hit(engine, "10.2.0.3")

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		var body limitedBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 45, body.RetryInS)
	})
}

func TestRateLimiterMiddleware_FailOpen(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	unreachable := redis.NewClient(&redis.Options{Addr: "localhost:9999", DialTimeout: 200 * time.Millisecond})
	defer unreachable.Close()

	engine := limitedEngine(unreachable, 1, time.Minute, zap.New(core))

	for i := 0; i < 3; i++ {
		w := hit(engine, "10.2.0.9")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, 3, logs.FilterMessage("redis error, rate limiter skipped").Len())
}
