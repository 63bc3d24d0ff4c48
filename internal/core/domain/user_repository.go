package domain

import "context"

type UserRepository interface {
	// Create stores a new user. Duplicate emails return ErrEmailAlreadyExists.
	Create(ctx context.Context, user *User) error

	GetByEmail(ctx context.Context, email string) (*User, error)

	GetByID(ctx context.Context, id string) (*User, error)

	// UpdatePassword replaces the stored hash for the user.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
