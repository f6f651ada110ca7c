package repositories

import (
	"context"
	"fmt"

	"store/internal/models"

	"gorm.io/gorm"
)

// CustomerDetailsRepository defines the interface for customer data access.
type CustomerDetailsRepository interface {
	Repository[models.CustomerDetails]
	// ExistsByUserID reports whether a customer other than excludeID belongs to userID.
	ExistsByUserID(ctx context.Context, userID, excludeID int64) (bool, error)
}

// GORMCustomerDetailsRepository is a GORM implementation of CustomerDetailsRepository.
type GORMCustomerDetailsRepository struct {
	*GORMRepository[models.CustomerDetails]
	db *gorm.DB
}

func NewGORMCustomerDetailsRepository(db *gorm.DB) *GORMCustomerDetailsRepository {
	return &GORMCustomerDetailsRepository{
		GORMRepository: NewGORMRepository[models.CustomerDetails](db),
		db:             db,
	}
}

func (r *GORMCustomerDetailsRepository) ExistsByUserID(ctx context.Context, userID, excludeID int64) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&models.CustomerDetails{}).
		Where("user_id = ? AND id <> ?", userID, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check customer of user %d: %w", userID, err)
	}
	return count > 0, nil
}
