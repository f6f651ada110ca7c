package handlers

import (
	"context"
	"strconv"
	"strings"

	"store/internal/apperrors"
	"store/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// CrudService is the service a ResourceHandler serves.
type CrudService[T any] interface {
	EntityName() string
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id int64, entity *T) (*T, error)
	PartialUpdate(ctx context.Context, id int64, patch []byte) (*T, error)
	FindOne(ctx context.Context, id int64) (*T, error)
	FindAll(ctx context.Context, page pagination.Pageable, eager bool) ([]T, int64, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceHandler handles HTTP requests for one entity collection.
type ResourceHandler[T any] struct {
	service    CrudService[T]
	appName    string
	collection string
	sortable   map[string]string
}

// NewResourceHandler creates a new ResourceHandler serving /{collection}.
// sortable maps the JSON properties accepted by ?sort= to columns.
func NewResourceHandler[T any](service CrudService[T], appName, collection string, sortable map[string]string) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		service:    service,
		appName:    appName,
		collection: collection,
		sortable:   sortable,
	}
}

// RegisterRoutes registers the collection routes with the Fiber router.
func (h *ResourceHandler[T]) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/" + h.collection)
	routes.Post("", h.HandleCreate)
	routes.Get("", h.HandleGetAll)
	routes.Get("/:id", h.HandleGet)
	routes.Put("/:id", h.HandleUpdate)
	routes.Patch("/:id", h.HandlePartialUpdate)
	routes.Delete("/:id", h.HandleDelete)
}

// HandleCreate creates a new entity.
func (h *ResourceHandler[T]) HandleCreate(c *fiber.Ctx) error {
	entity := new(T)
	if err := c.BodyParser(entity); err != nil {
		return h.malformed()
	}

	created, err := h.service.Create(c.UserContext(), entity)
	if err != nil {
		return err
	}

	id := h.idOf(created)
	h.alert(c, "created", id)
	c.Location(strings.TrimSuffix(c.Path(), "/") + "/" + id)
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdate replaces an existing entity.
func (h *ResourceHandler[T]) HandleUpdate(c *fiber.Ctx) error {
	id, err := h.pathID(c)
	if err != nil {
		return err
	}

	entity := new(T)
	if err := c.BodyParser(entity); err != nil {
		return h.malformed()
	}

	updated, err := h.service.Update(c.UserContext(), id, entity)
	if err != nil {
		return err
	}

	h.alert(c, "updated", h.idOf(updated))
	return c.JSON(updated)
}

// HandlePartialUpdate applies a JSON merge patch to an existing entity.
func (h *ResourceHandler[T]) HandlePartialUpdate(c *fiber.Ctx) error {
	id, err := h.pathID(c)
	if err != nil {
		return err
	}

	updated, err := h.service.PartialUpdate(c.UserContext(), id, c.Body())
	if err != nil {
		return err
	}

	h.alert(c, "updated", h.idOf(updated))
	return c.JSON(updated)
}

// HandleGetAll retrieves one page of entities.
func (h *ResourceHandler[T]) HandleGetAll(c *fiber.Ctx) error {
	page, err := pagination.Parse(c, h.sortable)
	if err != nil {
		return apperrors.NewBadRequestError(err.Error(), h.service.EntityName(), "badrequest")
	}

	entities, total, err := h.service.FindAll(c.UserContext(), page, c.QueryBool("eagerload", false))
	if err != nil {
		return err
	}

	pagination.WriteHeaders(c, page, total)
	return c.JSON(entities)
}

// HandleGet retrieves a single entity by its ID.
func (h *ResourceHandler[T]) HandleGet(c *fiber.Ctx) error {
	id, err := h.pathID(c)
	if err != nil {
		return err
	}

	entity, err := h.service.FindOne(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(entity)
}

// HandleDelete deletes an entity by its ID.
func (h *ResourceHandler[T]) HandleDelete(c *fiber.Ctx) error {
	id, err := h.pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}

	h.alert(c, "deleted", strconv.FormatInt(id, 10))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ResourceHandler[T]) pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequestError("Invalid id", h.service.EntityName(), "badrequest")
	}
	return id, nil
}

func (h *ResourceHandler[T]) malformed() error {
	return apperrors.NewBadRequestError("Malformed JSON request body", h.service.EntityName(), "badrequest")
}

// alert sets the X-{app}-alert and X-{app}-params headers of a successful mutation.
func (h *ResourceHandler[T]) alert(c *fiber.Ctx, action, id string) {
	c.Set("X-"+h.appName+"-alert", h.appName+"."+h.service.EntityName()+"."+action)
	c.Set("X-"+h.appName+"-params", id)
}

func (h *ResourceHandler[T]) idOf(entity *T) string {
	if e, ok := any(entity).(interface{ GetID() int64 }); ok {
		return strconv.FormatInt(e.GetID(), 10)
	}
	return ""
}
