package repository

import (
	"context"

	"github.com/threadcart/garmentshop/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string, role model.UserRole) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateStatus(ctx context.Context, id int64, status model.UserStatus) error
}
