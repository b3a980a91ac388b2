package domain

import (
	"context"
	"time"
)

// User is an operator allowed to read and edit victim records.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// RecordLogin stamps the user's last successful login.
	RecordLogin(ctx context.Context, id int64, at time.Time) error
}
