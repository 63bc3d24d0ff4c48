package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultResetTokenTTL = 30 * time.Minute

// SeedQueue schedules default data generation for a new user.
type SeedQueue interface {
	Enqueue(userID string)
}

// ResetTokenStore keeps one-shot password reset tokens.
// Consume returns domain.ErrInvalidResetToken for unknown or expired tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, user *domain.User, token string) error
}

type PasswordResetConfig struct {
	Store    ResetTokenStore
	Notifier ResetNotifier
	TTL      time.Duration
}

type AuthService struct {
	repo   domain.UserRepository
	tokens *TokenService
	seeds  SeedQueue
	reset  PasswordResetConfig
	logger *zap.Logger
}

func NewAuthService(repo domain.UserRepository, tokens *TokenService, seeds SeedQueue, reset PasswordResetConfig, logger *zap.Logger) *AuthService {
	if reset.TTL <= 0 {
		reset.TTL = DefaultResetTokenTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		seeds:  seeds,
		reset:  reset,
		logger: logger,
	}
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	Age             int
	SleepGoal       float64
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, domain.ErrPasswordsMismatch
	}

	user, err := domain.NewUser(uuid.NewString(), input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetProfile(input.FullName, input.Age, input.SleepGoal); err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, userStoreError("auth service: failed to create user", err)
	}

	if s.seeds != nil {
		s.seeds.Enqueue(user.ID)
	}

	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, *domain.User, error) {
	email, err := normaliseEmail(input.Email)
	if err != nil {
		return "", nil, err
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, userStoreError("auth service: failed to load user", err)
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// RequestPasswordReset issues a reset token and hands it to the notifier.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if s.reset.Store == nil || s.reset.Notifier == nil {
		return fmt.Errorf("auth service: %w: password reset is not configured", domain.ErrUpstreamUnavailable)
	}

	email, err := normaliseEmail(email)
	if err != nil {
		return err
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return userStoreError("auth service: failed to load user", err)
	}

	token := uuid.NewString()
	if err := s.reset.Store.Save(ctx, token, user.ID, s.reset.TTL); err != nil {
		return upstream("auth service: failed to store reset token", err)
	}

	if err := s.reset.Notifier.SendPasswordReset(ctx, user, token); err != nil {
		return upstream("auth service: failed to deliver reset token", err)
	}

	s.logger.Info("password reset requested", zap.String("user_id", user.ID))
	return nil
}

type ResetPasswordInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if s.reset.Store == nil {
		return fmt.Errorf("auth service: %w: password reset is not configured", domain.ErrUpstreamUnavailable)
	}
	if input.Password != input.ConfirmPassword {
		return domain.ErrPasswordsMismatch
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return err
	}
	if strings.TrimSpace(input.Token) == "" {
		return domain.ErrInvalidResetToken
	}

	userID, err := s.reset.Store.Consume(ctx, input.Token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidResetToken) {
			return err
		}
		return upstream("auth service: failed to read reset token", err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return userStoreError("auth service: failed to load user", err)
	}

	if err := user.SetPassword(input.Password); err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, user.PasswordHash); err != nil {
		return userStoreError("auth service: failed to update password", err)
	}

	s.logger.Info("password reset completed", zap.String("user_id", user.ID))
	return nil
}

func normaliseEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if _, err := domain.NewUser("", email); err != nil {
		return "", err
	}
	return strings.ToLower(email), nil
}

// userStoreError keeps the auth sentinels visible and marks everything
// else as an upstream failure.
func userStoreError(msg string, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrEmailAlreadyExists) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return upstream(msg, err)
}

// LogResetNotifier delivers reset tokens to the log. It stands in for a
// mail provider.
type LogResetNotifier struct {
	logger *zap.Logger
}

func NewLogResetNotifier(logger *zap.Logger) *LogResetNotifier {
	return &LogResetNotifier{logger: logger}
}

func (n *LogResetNotifier) SendPasswordReset(_ context.Context, user *domain.User, token string) error {
	n.logger.Info("password reset token issued",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("token", token),
	)
	return nil
}
