package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
)

const overviewDays = 7

type StatsService struct {
	repo      domain.SleepEntryRepository
	predictor domain.Predictor
	generator *DefaultDataGenerator
	now       func() time.Time
}

func NewStatsService(repo domain.SleepEntryRepository, predictor domain.Predictor, generator *DefaultDataGenerator) *StatsService {
	if generator == nil {
		generator = NewDefaultDataGenerator(nil)
	}
	return &StatsService{
		repo:      repo,
		predictor: predictor,
		generator: generator,
		now:       time.Now,
	}
}

// GetUserSleepData builds the dashboard overview. A user without entries
// gets a generated week that is returned but never stored.
func (s *StatsService) GetUserSleepData(ctx context.Context, userID string) (*domain.SleepOverview, error) {
	entries, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	isDefault := false
	if len(entries) == 0 {
		entries = s.generator.GenerateDefaultWeek(userID, s.now())
		isDefault = true
	}
	domain.SortByDate(entries)

	recent := entries[max(0, len(entries)-overviewDays):]
	weekly := make([]domain.DayPoint, 0, len(recent))
	var duration float64
	for _, e := range recent {
		weekly = append(weekly, domain.NewDayPoint(e))
		duration += e.SleepDuration
	}

	all, err := domain.Aggregate(entries)
	if err != nil {
		return nil, err
	}

	// Last night is scored against the nights before it, never against itself.
	lastNight := entries[len(entries)-1]

	return &domain.SleepOverview{
		LastNight:  lastNight,
		WeeklyData: weekly,
		Stats: domain.OverviewStats{
			AverageSleepDuration: domain.RoundHours(duration / float64(len(recent))),
			AverageQuality:       all.AvgQuality,
			SleepScore:           s.predict(ctx, entries[:len(entries)-1], domain.CandidateFromEntry(lastNight)),
			TotalEntries:         len(entries),
		},
		SleepDistribution: domain.DistributionOf(recent),
		AllEntries:        entries,
		IsDefault:         isDefault,
	}, nil
}

// GetWeeklyRecords groups one snapshot of the user's entries into weeks,
// oldest week first.
func (s *StatsService) GetWeeklyRecords(ctx context.Context, userID string) ([]domain.WeekRecord, error) {
	entries, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	grouped := domain.GroupByWeek(entries)
	records := make([]domain.WeekRecord, 0, len(grouped))

	for _, key := range domain.SortedWeekKeys(grouped) {
		record, err := buildWeekRecord(key, grouped[key])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *StatsService) GetWeek(ctx context.Context, userID, key string) (*domain.WeekRecord, error) {
	year, week, err := domain.ParseWeekKey(key)
	if err != nil {
		return nil, err
	}
	canonical := canonicalWeekKey(year, week)

	entries, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	bucket := domain.GroupByWeek(entries)[canonical]
	if len(bucket) == 0 {
		return nil, domain.ErrWeekNotFound
	}

	record, err := buildWeekRecord(canonical, bucket)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// PredictScore only fails when the history cannot be read.
func (s *StatsService) PredictScore(ctx context.Context, userID string, candidate domain.SleepCandidate) (domain.Prediction, error) {
	history, err := s.fetch(ctx, userID)
	if err != nil {
		return domain.Prediction{}, err
	}
	return s.predict(ctx, history, candidate), nil
}

func (s *StatsService) predict(ctx context.Context, history []*domain.SleepEntry, candidate domain.SleepCandidate) domain.Prediction {
	if s.predictor == nil {
		return domain.HeuristicPrediction(candidate)
	}
	prediction, err := s.predictor.Predict(ctx, history, candidate)
	if err != nil {
		return domain.HeuristicPrediction(candidate)
	}
	return prediction
}

func (s *StatsService) fetch(ctx context.Context, userID string) ([]*domain.SleepEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrEntryInvalidUserID
	}
	entries, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, upstream("stats service: failed to load entries", err)
	}
	return entries, nil
}

func buildWeekRecord(key string, bucket []*domain.SleepEntry) (domain.WeekRecord, error) {
	averages, err := domain.Aggregate(bucket)
	if err != nil {
		return domain.WeekRecord{}, err
	}

	start, end, err := domain.WeekDateRange(key)
	if err != nil {
		return domain.WeekRecord{}, err
	}

	entries := append([]*domain.SleepEntry(nil), bucket...)
	domain.SortByDate(entries)

	tier := domain.QualityTierOf(averages.AvgQuality)
	return domain.WeekRecord{
		Key:       key,
		StartDate: domain.FormatDisplayDate(start),
		EndDate:   domain.FormatDisplayDate(end),
		Averages:  averages,
		Tier:      tier,
		TierColor: tier.Color(),
		Entries:   entries,
	}, nil
}

func canonicalWeekKey(year, week int) string {
	return fmt.Sprintf("%d-W%d", year, week)
}
