package repository

import (
	"context"

	"foodorder/internal/domain/model"
)

// Accounts are created at registration; the role is immutable afterwards.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	// FindByEmail matches case-insensitively (emails are stored lowercase).
	FindByEmail(ctx context.Context, email string) (model.User, error)
}
