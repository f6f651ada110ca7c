package repositories

import (
	"context"

	"store/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Repository[models.User]
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
