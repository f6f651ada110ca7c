package services

import (
	"context"
	"fmt"

	"store/internal/apperrors"
)

// ExistenceChecker reports whether a record with the given id is stored.
type ExistenceChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// refCheck collects reference failures so that all of them are reported together
// and nothing is written while any remains.
type refCheck struct {
	ctx        context.Context
	entityName string
	fields     []apperrors.FieldError
	err        error
}

func newRefCheck(ctx context.Context, entityName string) *refCheck {
	return &refCheck{ctx: ctx, entityName: entityName}
}

func (c *refCheck) fail(field, message string) {
	c.fields = append(c.fields, apperrors.FieldError{Field: field, Message: message})
}

func (c *refCheck) result() error {
	if c.err != nil {
		return c.err
	}
	if len(c.fields) > 0 {
		return apperrors.NewValidationError(c.entityName, c.fields...)
	}
	return nil
}

// checkRef returns the id of ref once the referenced record is known to exist.
// A nil reference, or one without an id, yields 0.
func checkRef[R any, PR EntityPtr[R]](c *refCheck, field string, ref PR, repo ExistenceChecker, required bool) int64 {
	if c.err != nil {
		return 0
	}
	if ref == nil || ref.GetID() == 0 {
		if required {
			c.fail(field, "must not be null")
		}
		return 0
	}

	id := ref.GetID()
	ok, err := repo.ExistsByID(c.ctx, id)
	if err != nil {
		c.err = fmt.Errorf("failed to check %s reference: %w", field, err)
		return 0
	}
	if !ok {
		c.fail(field, fmt.Sprintf("references unknown id %d", id))
		return 0
	}
	return id
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
