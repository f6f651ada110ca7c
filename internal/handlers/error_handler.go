package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"store/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"
)

const (
	problemBase            = "https://www.jhipster.tech/problem"
	problemDefault         = problemBase + "/problem-with-message"
	problemConstraint      = problemBase + "/constraint-violation"
	problemEntityNotFound  = problemBase + "/entity-not-found"
	messageValidationError = "error.validation"
)

// Problem is the JSON body of every error response.
type Problem struct {
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Status      int                    `json:"status"`
	Path        string                 `json:"path,omitempty"`
	EntityName  string                 `json:"entityName,omitempty"`
	ErrorKey    string                 `json:"errorKey,omitempty"`
	Message     string                 `json:"message"`
	FieldErrors []apperrors.FieldError `json:"fieldErrors,omitempty"`
}

// NewErrorHandler returns the fiber.ErrorHandler that turns application errors
// into problem responses and X-{app}-error headers.
func NewErrorHandler(appName string, logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		problem := toProblem(err)
		problem.Path = c.Path()

		if problem.Status >= fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("Request failed")
		} else {
			logger.Debug().Err(err).Int("status", problem.Status).Str("path", c.Path()).Msg("Request rejected")
		}

		c.Set("X-"+appName+"-error", problem.Message)
		if problem.EntityName != "" {
			c.Set("X-"+appName+"-params", problem.EntityName)
		}
		return c.Status(problem.Status).JSON(problem, "application/problem+json")
	}
}

func toProblem(err error) Problem {
	var (
		validationErr *apperrors.ValidationError
		badRequest    *apperrors.BadRequestError
		notFound      *apperrors.NotFoundError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return Problem{
			Type:        problemConstraint,
			Title:       "Method argument not valid",
			Status:      fiber.StatusBadRequest,
			EntityName:  validationErr.EntityName,
			Message:     messageValidationError,
			FieldErrors: validationErr.Fields,
		}
	case errors.As(err, &badRequest):
		return Problem{
			Type:       problemDefault,
			Title:      badRequest.Title,
			Status:     fiber.StatusBadRequest,
			EntityName: badRequest.EntityName,
			ErrorKey:   badRequest.ErrorKey,
			Message:    "error." + badRequest.ErrorKey,
		}
	case errors.As(err, &notFound):
		return Problem{
			Type:       problemEntityNotFound,
			Title:      "Not Found",
			Status:     fiber.StatusNotFound,
			EntityName: notFound.Resource,
			ErrorKey:   "notfound",
			Message:    "error.http.404",
		}
	case errors.As(err, &fiberErr):
		return Problem{
			Type:    problemDefault,
			Title:   utils.StatusMessage(fiberErr.Code),
			Status:  fiberErr.Code,
			Message: "error.http." + strconv.Itoa(fiberErr.Code),
		}
	default:
		return Problem{
			Type:    problemDefault,
			Title:   utils.StatusMessage(fiber.StatusInternalServerError),
			Status:  fiber.StatusInternalServerError,
			Message: fmt.Sprintf("error.http.%d", fiber.StatusInternalServerError),
		}
	}
}
