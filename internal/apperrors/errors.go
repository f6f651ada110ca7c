package apperrors

import "fmt"

// FieldError is a single failed validation rule on a JSON field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s not found: %d", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// BadRequestError is a client error tied to an entity, identified by a stable key
// such as "idexists" or "idinvalid".
type BadRequestError struct {
	EntityName string
	ErrorKey   string
	Title      string
}

func (e *BadRequestError) Error() string {
	return e.Title
}

func NewBadRequestError(title, entityName, errorKey string) *BadRequestError {
	return &BadRequestError{Title: title, EntityName: entityName, ErrorKey: errorKey}
}

// ValidationError collects every field rule that failed for one request.
type ValidationError struct {
	EntityName string
	Fields     []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed on %d fields", len(e.Fields))
}

func NewValidationError(entityName string, fields ...FieldError) *ValidationError {
	return &ValidationError{EntityName: entityName, Fields: fields}
}
