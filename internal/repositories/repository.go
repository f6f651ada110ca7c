package repositories

import (
	"context"
	"errors"

	"store/internal/pagination"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// Repository defines data access for one entity type.
type Repository[T any] interface {
	Transactor
	FindAll(ctx context.Context, page pagination.Pageable, preload ...string) ([]T, int64, error)
	FindByID(ctx context.Context, id int64, preload ...string) (*T, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
