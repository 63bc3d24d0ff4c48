package services

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
)

const DefaultWeekLength = 7

// DefaultDataGenerator synthesizes a plausible week of sleep for users
// who have not recorded anything yet.
type DefaultDataGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewDefaultDataGenerator uses rnd when given, otherwise a time-seeded source.
func NewDefaultDataGenerator(rnd *rand.Rand) *DefaultDataGenerator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &DefaultDataGenerator{rnd: rnd}
}

// GenerateDefaultWeek returns seven entries, oldest first, the last one dated today.
func (g *DefaultDataGenerator) GenerateDefaultWeek(userID string, today time.Time) []*domain.SleepEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := domain.DateOnly(today)
	entries := make([]*domain.SleepEntry, 0, DefaultWeekLength)

	for i := DefaultWeekLength - 1; i >= 0; i-- {
		e := domain.NewSleepEntry(userID, day.AddDate(0, 0, -i))

		e.SleepDuration = roundTenth(5 + g.rnd.Float64()*4)
		e.Interruptions = g.rnd.Intn(4)
		e.Quality = domain.HeuristicScore(e.SleepDuration, e.Interruptions)

		e.DeepSleep = roundTenth(e.SleepDuration * (0.15 + g.rnd.Float64()*0.10))
		e.RemSleep = roundTenth(e.SleepDuration * (0.20 + g.rnd.Float64()*0.05))
		e.LightSleep = roundTenth(math.Max(0, e.SleepDuration-e.DeepSleep-e.RemSleep))

		wake := 6*60 + g.rnd.Intn(120)
		bed := wake - int(math.Round(e.SleepDuration*60))
		e.WakeTime = clock(wake)
		e.Bedtime = clock(bed)

		entries = append(entries, e)
	}

	return entries
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// clock formats minutes since midnight as HH:MM, wrapping across days.
func clock(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
