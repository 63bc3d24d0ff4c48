package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
)

func entryPayload(date string, duration float64) map[string]any {
	return map[string]any{
		"date":           date,
		"sleep_duration": duration,
		"deep_sleep":     1.5,
		"rem_sleep":      1.8,
		"light_sleep":    duration - 3.3,
		"quality":        82,
		"interruptions":  1,
		"bedtime":        "23:10",
		"wake_time":      "07:00",
	}
}

func TestSleepHandler_Create(t *testing.T) {
	app := newTestApp(t, nil)
	_, token := app.newUser(t)

	t.Run("Success: Should return 201 with sanitised notes", func(t *testing.T) {
		payload := entryPayload("2024-03-04", 7.8)
		payload["notes"] = "<b>Great</b> night"

		w := app.do(http.MethodPost, "/api/v1/sleep/entries", token, payload)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		entry := decode[domain.SleepEntry](t, w)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "2024-03-04", entry.Date.Format(domain.InputDateLayout))
		assert.Equal(t, 7.8, entry.SleepDuration)
		assert.Equal(t, "Great night", entry.Notes)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("Fail: Invalid input is rejected with 400", func(t *testing.T) {
		tooLong := entryPayload("2024-03-05", 30)
		badClock := entryPayload("2024-03-05", 7)
		badClock["bedtime"] = "25:00"
		negative := entryPayload("2024-03-05", 7)
		negative["interruptions"] = -2

		tests := []struct {
			name    string
			payload any
		}{
			{"duration over 24h", tooLong},
			{"bad bedtime", badClock},
			{"negative interruptions", negative},
			{"unparseable date", entryPayload("04/03/2024", 7)},
			{"missing date", map[string]any{"sleep_duration": 7}},
			{"malformed json", `{"date": `},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := app.do(http.MethodPost, "/api/v1/sleep/entries", token, tt.payload)
				assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			})
		}
	})

	t.Run("Fail: Missing token", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/v1/sleep/entries", "", entryPayload("2024-03-04", 7))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSleepHandler_List(t *testing.T) {
	app := newTestApp(t, nil)
	_, token := app.newUser(t)
	_, otherToken := app.newUser(t)

	for _, date := range []string{"2024-03-06", "2024-03-04", "2024-03-05"} {
		require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/v1/sleep/entries", token, entryPayload(date, 7)).Code)
	}

	t.Run("Success: Entries come back oldest first", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/v1/sleep/entries", token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		entries := decode[[]domain.SleepEntry](t, w)
		require.Len(t, entries, 3)
		assert.Equal(t, "2024-03-04", entries[0].Date.Format(domain.InputDateLayout))
		assert.Equal(t, "2024-03-06", entries[2].Date.Format(domain.InputDateLayout))
	})

	t.Run("Success: Other users see nothing", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/v1/sleep/entries", otherToken, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[[]domain.SleepEntry](t, w))
	})
}

func TestSleepHandler_GenerateDefaults(t *testing.T) {
	app := newTestApp(t, nil)
	_, token := app.newUser(t)

	first := app.do(http.MethodPost, "/api/v1/sleep/defaults", token, nil)
	require.Equal(t, http.StatusCreated, first.Code)
	assert.True(t, decode[map[string]bool](t, first)["generated"])

	second := app.do(http.MethodPost, "/api/v1/sleep/defaults", token, nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.False(t, decode[map[string]bool](t, second)["generated"])

	list := app.do(http.MethodGet, "/api/v1/sleep/entries", token, nil)
	assert.Len(t, decode[[]domain.SleepEntry](t, list), 7)
}

func TestSleepHandler_StoreUnavailable(t *testing.T) {
	app := newTestApp(t, failingEntryRepository{})
	_, token := app.newUser(t)

	t.Run("Fail: Create surfaces 503", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/v1/sleep/entries", token, entryPayload("2024-03-04", 7))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decode[errorResponse](t, w)
		assert.Equal(t, unavailableMessage, body.Message)
		assert.NotContains(t, w.Body.String(), "127.0.0.1")
	})

	t.Run("Fail: List surfaces 503", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/v1/sleep/entries", token, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
