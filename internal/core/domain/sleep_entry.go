package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrEntryInvalidUserID   = fmt.Errorf("%w: user_id is required", ErrInvalidArgument)
	ErrEntryMissingDate     = fmt.Errorf("%w: date is required", ErrInvalidArgument)
	ErrEntryInvalidDuration = fmt.Errorf("%w: sleep duration must be between 0 and 24 hours", ErrInvalidArgument)
	ErrEntryInvalidPhase    = fmt.Errorf("%w: sleep phases cannot be negative", ErrInvalidArgument)
	ErrEntryInvalidQuality  = fmt.Errorf("%w: quality must be between 0 and 100", ErrInvalidArgument)
	ErrEntryInvalidCount    = fmt.Errorf("%w: interruptions cannot be negative", ErrInvalidArgument)
	ErrEntryInvalidClock    = fmt.Errorf("%w: bedtime and wake time must be HH:MM", ErrInvalidArgument)
	ErrEntryNotesTooLong    = fmt.Errorf("%w: notes are too long (max %d chars)", ErrInvalidArgument, MaxNotesLen)
)

var clockRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	MaxNotesLen   = 1000
	MaxSleepHours = 24.0
	MaxQuality    = 100
)

type SleepEntry struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	Date          time.Time `json:"date" db:"date"`
	SleepDuration float64   `json:"sleep_duration" db:"sleep_duration"`
	DeepSleep     float64   `json:"deep_sleep" db:"deep_sleep"`
	RemSleep      float64   `json:"rem_sleep" db:"rem_sleep"`
	LightSleep    float64   `json:"light_sleep" db:"light_sleep"`
	Quality       int       `json:"quality" db:"quality"`
	Interruptions int       `json:"interruptions" db:"interruptions"`
	Bedtime       string    `json:"bedtime" db:"bedtime"`
	WakeTime      string    `json:"wake_time" db:"wake_time"`
	Notes         string    `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DateOnly drops the time of day, keeping the calendar date as seen in t's location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func NewSleepEntry(userID string, date time.Time) *SleepEntry {
	return &SleepEntry{
		UserID:    userID,
		Date:      DateOnly(date),
		CreatedAt: time.Now().UTC(),
	}
}

func (e *SleepEntry) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return ErrEntryInvalidUserID
	}
	if e.Date.IsZero() {
		return ErrEntryMissingDate
	}
	if !validHours(e.SleepDuration) {
		return ErrEntryInvalidDuration
	}
	for _, phase := range []float64{e.DeepSleep, e.RemSleep, e.LightSleep} {
		if !validHours(phase) {
			return ErrEntryInvalidPhase
		}
	}
	if e.Quality < 0 || e.Quality > MaxQuality {
		return ErrEntryInvalidQuality
	}
	if e.Interruptions < 0 {
		return ErrEntryInvalidCount
	}
	if e.Bedtime != "" && !clockRegex.MatchString(e.Bedtime) {
		return ErrEntryInvalidClock
	}
	if e.WakeTime != "" && !clockRegex.MatchString(e.WakeTime) {
		return ErrEntryInvalidClock
	}
	if utf8.RuneCountInString(e.Notes) > MaxNotesLen {
		return ErrEntryNotesTooLong
	}
	return nil
}

// PhaseTotal is the sum of the recorded phases; it may differ from SleepDuration.
func (e *SleepEntry) PhaseTotal() float64 {
	return e.DeepSleep + e.RemSleep + e.LightSleep
}

func validHours(h float64) bool {
	return !math.IsNaN(h) && h >= 0 && h <= MaxSleepHours
}
