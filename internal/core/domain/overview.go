package domain

import "sort"

type SleepOverview struct {
	LastNight         *SleepEntry       `json:"last_night"`
	WeeklyData        []DayPoint        `json:"weekly_data"`
	Stats             OverviewStats     `json:"stats"`
	SleepDistribution SleepDistribution `json:"sleep_distribution"`
	AllEntries        []*SleepEntry     `json:"all_entries"`
	IsDefault         bool              `json:"is_default"`
}

type DayPoint struct {
	Date          string  `json:"date"`
	Day           string  `json:"day"`
	SleepDuration float64 `json:"sleep_duration"`
	DeepSleep     float64 `json:"deep_sleep"`
	RemSleep      float64 `json:"rem_sleep"`
	LightSleep    float64 `json:"light_sleep"`
	Quality       int     `json:"quality"`
}

type OverviewStats struct {
	AverageSleepDuration float64    `json:"average_sleep_duration"`
	AverageQuality       int        `json:"average_quality"`
	SleepScore           Prediction `json:"sleep_score"`
	TotalEntries         int        `json:"total_entries"`
}

// SleepDistribution holds each phase's share of total phase time, in percent.
type SleepDistribution struct {
	Deep  float64 `json:"deep"`
	Rem   float64 `json:"rem"`
	Light float64 `json:"light"`
}

type WeekRecord struct {
	Key       string         `json:"key"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Averages  WeeklyAverages `json:"averages"`
	Tier      QualityTier    `json:"tier"`
	TierColor string         `json:"tier_color"`
	Entries   []*SleepEntry  `json:"entries"`
}

func NewDayPoint(e *SleepEntry) DayPoint {
	return DayPoint{
		Date:          FormatDisplayDate(e.Date),
		Day:           e.Date.Weekday().String()[:3],
		SleepDuration: e.SleepDuration,
		DeepSleep:     e.DeepSleep,
		RemSleep:      e.RemSleep,
		LightSleep:    e.LightSleep,
		Quality:       e.Quality,
	}
}

func DistributionOf(entries []*SleepEntry) SleepDistribution {
	var deep, rem, light float64
	for _, e := range entries {
		deep += e.DeepSleep
		rem += e.RemSleep
		light += e.LightSleep
	}
	total := deep + rem + light
	if total == 0 {
		return SleepDistribution{}
	}
	return SleepDistribution{
		Deep:  RoundHours(deep / total * 100),
		Rem:   RoundHours(rem / total * 100),
		Light: RoundHours(light / total * 100),
	}
}

// SortByDate orders entries by Date, oldest first; ties keep their input order.
func SortByDate(entries []*SleepEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
