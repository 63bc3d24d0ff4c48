package domain

import (
	"math"
	"slices"
)

type WeeklyAverages struct {
	AvgDuration float64 `json:"avg_duration"`
	AvgQuality  int     `json:"avg_quality"`
	AvgDeep     float64 `json:"avg_deep"`
	AvgRem      float64 `json:"avg_rem"`
	AvgLight    float64 `json:"avg_light"`
}

// GroupByWeek buckets entries by the week key of their Date.
// Input order is preserved inside each bucket and duplicates are kept.
func GroupByWeek(entries []*SleepEntry) map[string][]*SleepEntry {
	grouped := make(map[string][]*SleepEntry)
	for _, e := range entries {
		key := WeekKeyOf(e.Date)
		grouped[key] = append(grouped[key], e)
	}
	return grouped
}

func SortedWeekKeys(grouped map[string][]*SleepEntry) []string {
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CompareWeekKeys)
	return keys
}

// Aggregate averages a non-empty bucket. Quality is rounded to an integer,
// hour values to one decimal, both half away from zero.
func Aggregate(entries []*SleepEntry) (WeeklyAverages, error) {
	if len(entries) == 0 {
		return WeeklyAverages{}, ErrEmptyInput
	}

	var duration, quality, deep, rem, light float64
	for _, e := range entries {
		duration += e.SleepDuration
		quality += float64(e.Quality)
		deep += e.DeepSleep
		rem += e.RemSleep
		light += e.LightSleep
	}

	n := float64(len(entries))
	return WeeklyAverages{
		AvgDuration: RoundHours(duration / n),
		AvgQuality:  int(math.Round(quality / n)),
		AvgDeep:     RoundHours(deep / n),
		AvgRem:      RoundHours(rem / n),
		AvgLight:    RoundHours(light / n),
	}, nil
}

// RoundHours rounds to one decimal. The value is first snapped to two
// decimals so binary noise (1.6500000000000001, 1.6499999999999999)
// cannot flip a half-way case.
func RoundHours(v float64) float64 {
	snapped := math.Round(v*100) / 100
	return math.Round(snapped*10) / 10
}
