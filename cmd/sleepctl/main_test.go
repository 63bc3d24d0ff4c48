package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
)

func setupSQLiteEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("KANSO_CONFIG", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "sleepctl.db"))
}

func lookup(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	setupSQLiteEnv(t)

	t.Run("Success: migrate", func(t *testing.T) {
		out, err := execute(t, "migrate")
		require.NoError(t, err)
		assert.Contains(t, out, "schema is up to date (sqlite)")
	})

	t.Run("Success: seed only once", func(t *testing.T) {
		out, err := execute(t, "seed", "--user", "cli-user")
		require.NoError(t, err)
		assert.Contains(t, out, "seeded 7 nights for user cli-user")

		out, err = execute(t, "seed", "--user", "cli-user")
		require.NoError(t, err)
		assert.Contains(t, out, "already has sleep data")
	})

	t.Run("Success: weeks as JSON", func(t *testing.T) {
		out, err := execute(t, "weeks", "--user", "cli-user", "--json")
		require.NoError(t, err)

		var weeks []domain.WeekRecord
		require.NoError(t, json.Unmarshal([]byte(out), &weeks))

		nights := 0
		for _, w := range weeks {
			nights += len(w.Entries)
		}
		assert.Equal(t, 7, nights)
	})

	t.Run("Success: weeks as a table", func(t *testing.T) {
		out, err := execute(t, "weeks", "--user", "cli-user", "--no-color")
		require.NoError(t, err)
		assert.Contains(t, out, "WEEK")
		assert.Contains(t, out, "QUALITY")
	})

	t.Run("Success: predict", func(t *testing.T) {
		out, err := execute(t, "predict", "--user", "cli-user", "--duration", "6", "--interruptions", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "score:")
		assert.Contains(t, out, "method:     "+domain.PredictionMethodKNN)
	})

	t.Run("Fail: missing flags", func(t *testing.T) {
		_, err := execute(t, "weeks")
		assert.EqualError(t, err, "--user is required")

		_, err = execute(t, "predict", "--user", "cli-user")
		assert.EqualError(t, err, "--duration is required")
	})
}

func TestSeed_InvalidatesCachedEntries(t *testing.T) {
	host, port, pass := lookup("REDIS_HOST", "localhost"), lookup("REDIS_PORT", "6379"), lookup("REDIS_PASSWORD", "secret_redis_pass_local")
	setupSQLiteEnv(t)

	rdb, err := cache.NewRedisClient(context.Background(), host, port, pass, 5)
	if err != nil {
		t.Skipf("Skipping Redis test: %v", err)
	}
	defer rdb.Close()

	t.Setenv("REDIS_HOST", host)
	t.Setenv("REDIS_PORT", port)
	t.Setenv("REDIS_PASSWORD", pass)
	t.Setenv("REDIS_DB", "5")

	ctx := context.Background()
	key := "sleep_entries:cached-user"
	require.NoError(t, rdb.Set(ctx, key, "[]", time.Hour).Err())

	_, err = execute(t, "migrate")
	require.NoError(t, err)
	out, err := execute(t, "seed", "--user", "cached-user")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 7 nights")

	exists, err := rdb.Exists(ctx, key).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestSeed_RedisDown(t *testing.T) {
	setupSQLiteEnv(t)
	t.Setenv("REDIS_HOST", "127.0.0.1")
	t.Setenv("REDIS_PORT", "9999")

	_, err := execute(t, "migrate")
	require.NoError(t, err)

	out, err := execute(t, "seed", "--user", "offline-user")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 7 nights for user offline-user")
}

func TestRenderWeeks(t *testing.T) {
	t.Run("Success: empty history", func(t *testing.T) {
		var buf bytes.Buffer
		renderWeeks(&buf, nil, false)
		assert.Equal(t, "no sleep entries recorded\n", buf.String())
	})

	t.Run("Success: one row per week", func(t *testing.T) {
		weeks := []domain.WeekRecord{
			{
				Key:       "2024-W10",
				StartDate: "04-03-2024",
				EndDate:   "10-03-2024",
				Averages:  domain.WeeklyAverages{AvgDuration: 7.5, AvgQuality: 82, AvgDeep: 1.6, AvgRem: 1.9, AvgLight: 4},
				Tier:      domain.QualityExcellent,
				Entries:   make([]*domain.SleepEntry, 3),
			},
		}

		var buf bytes.Buffer
		renderWeeks(&buf, weeks, false)

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		row := string(lines[1])
		assert.Contains(t, row, "2024-W10")
		assert.Contains(t, row, "04-03-2024 - 10-03-2024")
		assert.Contains(t, row, "7.5")
		assert.Contains(t, row, "82 excellent")
		assert.NotContains(t, row, "\x1b[")
	})
}

func TestRenderPrediction(t *testing.T) {
	var buf bytes.Buffer
	renderPrediction(&buf, domain.HeuristicPrediction(domain.SleepCandidate{SleepDuration: 6, Interruptions: 1}), false)

	out := buf.String()
	assert.Contains(t, out, "score:      77\n")
	assert.Contains(t, out, "confidence: 0.30 (low)\n")
	assert.Contains(t, out, domain.HeuristicMessage)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, useColor(&buf, false), "buffers are never terminals")
	assert.False(t, useColor(&buf, true))
}
