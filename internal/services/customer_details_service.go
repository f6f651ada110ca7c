package services

import (
	"context"

	"store/internal/apperrors"
	"store/internal/models"
	"store/internal/repositories"

	"github.com/rs/zerolog"
)

type CustomerDetailsService = CrudService[models.CustomerDetails, *models.CustomerDetails]

// NewCustomerDetailsService creates a new CustomerDetailsService. Each customer
// belongs to exactly one user and a user has at most one customer record.
func NewCustomerDetailsService(repo repositories.CustomerDetailsRepository, users ExistenceChecker, events EventPublisher, logger zerolog.Logger) *CustomerDetailsService {
	return NewCrudService[models.CustomerDetails, *models.CustomerDetails](repo, "customerDetails", []string{"User"}, Hooks[models.CustomerDetails]{
		Resolve: func(ctx context.Context, c *models.CustomerDetails) error {
			refs := newRefCheck(ctx, "customerDetails")
			userID := checkRef(refs, "user", c.User, users, true)
			if err := refs.result(); err != nil {
				return err
			}

			taken, err := repo.ExistsByUserID(ctx, userID, c.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewValidationError("customerDetails", apperrors.FieldError{
					Field:   "user",
					Message: "already has customer details",
				})
			}

			c.UserID = userID
			return nil
		},
	}, events, logger)
}
