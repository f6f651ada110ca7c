package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"store/internal/apperrors"
	"store/internal/models"
	"store/internal/pagination"
	"store/internal/repositories"
	"store/internal/validation"

	"github.com/rs/zerolog"
)

// EventPublisher receives entity lifecycle notifications after a successful write.
type EventPublisher interface {
	PublishEntityEvent(ctx context.Context, entityName, action string, id int64, payload any) error
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityPtr constrains a type parameter to a pointer to T that carries an identifier.
type EntityPtr[T any] interface {
	*T
	models.Entity
}

// Hooks customize a CrudService for one entity.
type Hooks[T any] struct {
	// Resolve checks the entity's references and copies their ids into foreign keys.
	Resolve func(ctx context.Context, entity *T) error
	// BeforeSave runs after validation and resolution. existing is nil on create.
	BeforeSave func(ctx context.Context, entity, existing *T) error
	// AfterSave prepares the entity for the response.
	AfterSave func(entity *T)
}

// CrudService implements create, update, partial update, lookup, listing and deletion for one entity.
type CrudService[T any, PT EntityPtr[T]] struct {
	repo       repositories.Repository[T]
	entityName string
	relations  []string
	hooks      Hooks[T]
	events     EventPublisher
	log        zerolog.Logger
}

// NewCrudService creates a CrudService. relations are the associations loaded for
// single-record lookups and eager listings.
func NewCrudService[T any, PT EntityPtr[T]](repo repositories.Repository[T], entityName string, relations []string, hooks Hooks[T], events EventPublisher, logger zerolog.Logger) *CrudService[T, PT] {
	return &CrudService[T, PT]{
		repo:       repo,
		entityName: entityName,
		relations:  relations,
		hooks:      hooks,
		events:     events,
		log:        logger.With().Str("entity", entityName).Logger(),
	}
}

func (s *CrudService[T, PT]) EntityName() string {
	return s.entityName
}

// Create persists a new entity. The entity must not carry an id. Reference
// checks and the insert share one transaction.
func (s *CrudService[T, PT]) Create(ctx context.Context, entity *T) (*T, error) {
	s.log.Debug().Msg("Request to save entity")

	if err := validation.Struct(s.entityName, entity); err != nil {
		return nil, err
	}
	if PT(entity).GetID() != 0 {
		return nil, apperrors.NewBadRequestError("A new "+s.entityName+" cannot already have an ID", s.entityName, "idexists")
	}

	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.prepare(ctx, entity, nil); err != nil {
			return err
		}
		return s.writeError("create", s.repo.Create(ctx, entity))
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, ActionCreated, entity)
	return s.finish(entity), nil
}

// Update replaces every field of the entity stored under id.
func (s *CrudService[T, PT]) Update(ctx context.Context, id int64, entity *T) (*T, error) {
	s.log.Debug().Int64("id", id).Msg("Request to update entity")

	if err := validation.Struct(s.entityName, entity); err != nil {
		return nil, err
	}

	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.checkIdentity(ctx, id, PT(entity).GetID())
		if err != nil {
			return err
		}
		if err := s.prepare(ctx, entity, existing); err != nil {
			return err
		}
		return s.writeError("update", s.repo.Update(ctx, entity))
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, ActionUpdated, entity)
	return s.finish(entity), nil
}

// PartialUpdate applies a JSON merge patch to the entity stored under id.
// Fields that are absent from the patch or set to null keep their stored values.
func (s *CrudService[T, PT]) PartialUpdate(ctx context.Context, id int64, patch []byte) (*T, error) {
	s.log.Debug().Int64("id", id).Msg("Request to partially update entity")

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &fields); err != nil {
		return nil, apperrors.NewBadRequestError("Malformed JSON request body", s.entityName, "badrequest")
	}

	var bodyID int64
	if raw, ok := fields["id"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &bodyID); err != nil {
			return nil, apperrors.NewBadRequestError("Invalid id", s.entityName, "idinvalid")
		}
	}

	for name, raw := range fields {
		if isNull(raw) {
			delete(fields, name)
		}
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}

	entity := new(T)
	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.checkIdentity(ctx, id, bodyID)
		if err != nil {
			return err
		}

		*entity = *existing
		if err := json.Unmarshal(merged, entity); err != nil {
			return apperrors.NewBadRequestError("Malformed JSON request body", s.entityName, "badrequest")
		}
		PT(entity).SetID(id)

		if err := validation.Struct(s.entityName, entity); err != nil {
			return err
		}
		if err := s.prepare(ctx, entity, existing); err != nil {
			return err
		}
		return s.writeError("update", s.repo.Update(ctx, entity))
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, ActionUpdated, entity)
	return s.finish(entity), nil
}

// FindOne returns the entity stored under id with its relationships loaded.
func (s *CrudService[T, PT]) FindOne(ctx context.Context, id int64) (*T, error) {
	s.log.Debug().Int64("id", id).Msg("Request to get entity")

	entity, err := s.repo.FindByID(ctx, id, s.relations...)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(s.entityName, id)
		}
		return nil, err
	}
	return s.finish(entity), nil
}

// FindAll returns one page of entities and the total count. Relationships are
// loaded only when eager is set; otherwise they carry just their id.
func (s *CrudService[T, PT]) FindAll(ctx context.Context, page pagination.Pageable, eager bool) ([]T, int64, error) {
	s.log.Debug().Int("page", page.Page).Int("size", page.Size).Bool("eager", eager).Msg("Request to get all entities")

	var preload []string
	if eager {
		preload = s.relations
	}
	entities, total, err := s.repo.FindAll(ctx, page, preload...)
	if err != nil {
		return nil, 0, err
	}
	for i := range entities {
		s.finish(&entities[i])
	}
	return entities, total, nil
}

// Delete removes the entity stored under id.
func (s *CrudService[T, PT]) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("Request to delete entity")

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(s.entityName, id)
		}
		return fmt.Errorf("failed to delete %s: %w", s.entityName, err)
	}

	s.publishID(ctx, ActionDeleted, id, nil)
	return nil
}

// Count returns the number of stored entities.
func (s *CrudService[T, PT]) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// checkIdentity enforces the identifier rules shared by full and partial updates
// and returns the stored record.
func (s *CrudService[T, PT]) checkIdentity(ctx context.Context, pathID, bodyID int64) (*T, error) {
	if bodyID == 0 {
		return nil, apperrors.NewBadRequestError("Invalid id", s.entityName, "idnull")
	}
	if bodyID != pathID {
		return nil, apperrors.NewBadRequestError("Invalid ID", s.entityName, "idinvalid")
	}

	existing, err := s.repo.FindByID(ctx, pathID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewBadRequestError("Entity not found", s.entityName, "idnotfound")
		}
		return nil, err
	}
	return existing, nil
}

// writeError reports a unique constraint violation as a client error.
func (s *CrudService[T, PT]) writeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrDuplicate):
		return apperrors.NewBadRequestError("A "+s.entityName+" with the same unique values already exists", s.entityName, "duplicate")
	default:
		return fmt.Errorf("failed to %s %s: %w", op, s.entityName, err)
	}
}

func (s *CrudService[T, PT]) prepare(ctx context.Context, entity, existing *T) error {
	if s.hooks.Resolve != nil {
		if err := s.hooks.Resolve(ctx, entity); err != nil {
			return err
		}
	}
	if s.hooks.BeforeSave != nil {
		if err := s.hooks.BeforeSave(ctx, entity, existing); err != nil {
			return err
		}
	}
	return nil
}

func (s *CrudService[T, PT]) finish(entity *T) *T {
	if s.hooks.AfterSave != nil {
		s.hooks.AfterSave(entity)
	}
	return entity
}

func (s *CrudService[T, PT]) publish(ctx context.Context, action string, entity *T) {
	s.publishID(ctx, action, PT(entity).GetID(), entity)
}

// publishID logs publishing failures instead of returning them.
func (s *CrudService[T, PT]) publishID(ctx context.Context, action string, id int64, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEntityEvent(ctx, s.entityName, action, id, payload); err != nil {
		s.log.Error().Err(err).Str("action", action).Int64("id", id).Msg("Failed to publish entity event")
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
