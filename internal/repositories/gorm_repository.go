package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"store/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRepository is a GORM implementation of Repository.
// Writes never cascade into associations; only foreign keys are stored.
type GORMRepository[T any] struct {
	db *gorm.DB
}

// NewGORMRepository creates a new instance of GORMRepository.
func NewGORMRepository[T any](db *gorm.DB) *GORMRepository[T] {
	return &GORMRepository[T]{db: db}
}

// WithinTransaction runs fn inside a transaction shared by every repository on the same database.
func (r *GORMRepository[T]) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return withinTransaction(ctx, r.db, fn)
}

// FindAll retrieves one page of records and the total number of records. Both
// are read from the same transaction so the total matches the page.
func (r *GORMRepository[T]) FindAll(ctx context.Context, page pagination.Pageable, preload ...string) ([]T, int64, error) {
	var (
		total    int64
		entities = make([]T, 0)
	)
	err := withinTransaction(ctx, r.db, func(ctx context.Context) error {
		if err := conn(ctx, r.db).Model(new(T)).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}

		query := conn(ctx, r.db)
		for _, rel := range preload {
			query = query.Preload(rel)
		}
		if err := page.Apply(query).Find(&entities).Error; err != nil {
			return fmt.Errorf("failed to get records: %w", err)
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// FindByID retrieves a single record by its ID.
func (r *GORMRepository[T]) FindByID(ctx context.Context, id int64, preload ...string) (*T, error) {
	query := conn(ctx, r.db)
	for _, rel := range preload {
		query = query.Preload(rel)
	}

	entity := new(T)
	if err := query.First(entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record by ID %d: %w", id, err)
	}
	return entity, nil
}

func (r *GORMRepository[T]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check record %d: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts a new record; the generated ID is written back into entity.
func (r *GORMRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// Update replaces every column of an existing record.
func (r *GORMRepository[T]) Update(ctx context.Context, entity *T) error {
	res := conn(ctx, r.db).Omit(clause.Associations).Save(entity)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update record: %w", res.Error)
	}
	return nil
}

// Delete deletes a record by its ID.
func (r *GORMRepository[T]) Delete(ctx context.Context, id int64) error {
	res := conn(ctx, r.db).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GORMRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(new(T)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}
