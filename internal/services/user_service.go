package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"store/internal/apperrors"
	"store/internal/models"
	"store/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService = CrudService[models.User, *models.User]

// NewUserService creates a new UserService. Logins and emails are stored in lower
// case and must be unique. Passwords are only ever stored as bcrypt hashes.
func NewUserService(repo repositories.UserRepository, events EventPublisher, logger zerolog.Logger) *UserService {
	return NewCrudService[models.User, *models.User](repo, "user", nil, Hooks[models.User]{
		BeforeSave: func(ctx context.Context, user, existing *models.User) error {
			user.Login = strings.ToLower(user.Login)
			user.Email = strings.ToLower(user.Email)

			if err := checkUnique(ctx, user.ID, user.Login, repo.GetByLogin, "Login name already used!", "userexists"); err != nil {
				return err
			}
			if err := checkUnique(ctx, user.ID, user.Email, repo.GetByEmail, "Email is already in use!", "emailexists"); err != nil {
				return err
			}

			switch {
			case user.Password != "":
				return hashPassword(user, user.Password)
			case existing != nil:
				user.PasswordHash = existing.PasswordHash
				return nil
			default:
				return hashPassword(user, uuid.NewString())
			}
		},
		AfterSave: func(user *models.User) {
			user.Password = ""
		},
	}, events, logger)
}

func checkUnique(ctx context.Context, id int64, value string, lookup func(context.Context, string) (*models.User, error), title, errorKey string) error {
	found, err := lookup(ctx, value)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if found.ID != id {
		return apperrors.NewBadRequestError(title, "userManagement", errorKey)
	}
	return nil
}

func hashPassword(user *models.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	user.Password = ""
	return nil
}
