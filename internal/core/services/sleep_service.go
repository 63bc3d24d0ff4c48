package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var validate = validator.New()

type SleepService struct {
	repo      domain.SleepEntryRepository
	generator *DefaultDataGenerator
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

func NewSleepService(repo domain.SleepEntryRepository, generator *DefaultDataGenerator) *SleepService {
	if generator == nil {
		generator = NewDefaultDataGenerator(nil)
	}
	return &SleepService{
		repo:      repo,
		generator: generator,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

type CreateSleepEntryInput struct {
	UserID        string    `validate:"required"`
	Date          time.Time `validate:"required"`
	SleepDuration float64   `validate:"gte=0,lte=24"`
	DeepSleep     float64   `validate:"gte=0,lte=24"`
	RemSleep      float64   `validate:"gte=0,lte=24"`
	LightSleep    float64   `validate:"gte=0,lte=24"`
	Quality       int       `validate:"gte=0,lte=100"`
	Interruptions int       `validate:"gte=0"`
	Bedtime       string
	WakeTime      string
	Notes         string
}

func (s *SleepService) AddSleepEntry(ctx context.Context, input CreateSleepEntryInput) (*domain.SleepEntry, error) {
	if err := validate.Struct(input); err != nil {
		return nil, invalidInput(err)
	}

	entry := domain.NewSleepEntry(input.UserID, input.Date)
	entry.SleepDuration = input.SleepDuration
	entry.DeepSleep = input.DeepSleep
	entry.RemSleep = input.RemSleep
	entry.LightSleep = input.LightSleep
	entry.Quality = input.Quality
	entry.Interruptions = input.Interruptions
	entry.Bedtime = strings.TrimSpace(input.Bedtime)
	entry.WakeTime = strings.TrimSpace(input.WakeTime)
	entry.Notes = s.plainText(input.Notes)

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, upstream("sleep service: failed to save entry", err)
	}

	return entry, nil
}

// plainText strips markup from free text. The policy escapes what it keeps,
// so the result is unescaped back to the characters the user typed.
func (s *SleepService) plainText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(raw)))
}

// ListSleepEntries returns the user's entries ordered by date, oldest first.
func (s *SleepService) ListSleepEntries(ctx context.Context, userID string) ([]*domain.SleepEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrEntryInvalidUserID
	}

	entries, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, upstream("sleep service: failed to list entries", err)
	}

	domain.SortByDate(entries)
	return entries, nil
}

func (s *SleepService) CheckUserHasSleepData(ctx context.Context, userID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, domain.ErrEntryInvalidUserID
	}

	has, err := s.repo.HasAny(ctx, userID)
	if err != nil {
		return false, upstream("sleep service: failed to check entries", err)
	}
	return has, nil
}

// GenerateDefaultSleepData stores a generated week for a user with no entries.
// It reports false without writing when the user already has data. The week is
// written in one batch, so a failed save leaves nothing behind and a retry seeds
// again. The check and the write are not atomic: two concurrent first calls may
// both seed.
func (s *SleepService) GenerateDefaultSleepData(ctx context.Context, userID string) (bool, error) {
	has, err := s.CheckUserHasSleepData(ctx, userID)
	if err != nil {
		return false, err
	}
	if has {
		return false, nil
	}

	week := s.generator.GenerateDefaultWeek(userID, s.now())
	if err := s.repo.CreateBatch(ctx, week); err != nil {
		return false, upstream("sleep service: failed to save default week", err)
	}

	return true, nil
}

func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed on %q", domain.ErrInvalidArgument, strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
}

func upstream(msg string, err error) error {
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrUpstreamUnavailable, err)
}
