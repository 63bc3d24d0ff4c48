package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrPasswordsMismatch  = errors.New("passwords do not match")
	ErrInvalidResetToken  = errors.New("invalid or expired password reset token")
	ErrInvalidProfile     = fmt.Errorf("%w: age and sleep goal must be positive", ErrInvalidArgument)
)

const (
	MinPasswordLen = 6
	bcryptCost     = 12
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Age          int       `json:"age" db:"age"`
	SleepGoal    float64   `json:"sleep_goal" db:"sleep_goal"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func NewUser(id, email string) (*User, error) {
	email = strings.TrimSpace(email)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     strings.ToLower(email),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) SetProfile(fullName string, age int, sleepGoal float64) error {
	if age < 0 || sleepGoal < 0 || sleepGoal > MaxSleepHours {
		return ErrInvalidProfile
	}
	u.FullName = strings.TrimSpace(fullName)
	u.Age = age
	u.SleepGoal = sleepGoal
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func ValidatePassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < MinPasswordLen {
		return ErrWeakPassword
	}
	return nil
}

func (u *User) SetPassword(plainPassword string) error {
	if err := ValidatePassword(plainPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
