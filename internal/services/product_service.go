package services

import (
	"context"

	"store/internal/models"
	"store/internal/repositories"

	"github.com/rs/zerolog"
)

type (
	ProductService         = CrudService[models.Product, *models.Product]
	ProductCategoryService = CrudService[models.ProductCategory, *models.ProductCategory]
)

// NewProductService creates a new ProductService. The category reference is optional.
func NewProductService(repo repositories.Repository[models.Product], categories ExistenceChecker, events EventPublisher, logger zerolog.Logger) *ProductService {
	return NewCrudService[models.Product, *models.Product](repo, "product", []string{"ProductCategory"}, Hooks[models.Product]{
		Resolve: func(ctx context.Context, p *models.Product) error {
			refs := newRefCheck(ctx, "product")
			categoryID := checkRef(refs, "productCategory", p.ProductCategory, categories, false)
			if err := refs.result(); err != nil {
				return err
			}
			p.ProductCategoryID = optionalID(categoryID)
			return nil
		},
	}, events, logger)
}

// NewProductCategoryService creates a new ProductCategoryService.
func NewProductCategoryService(repo repositories.Repository[models.ProductCategory], events EventPublisher, logger zerolog.Logger) *ProductCategoryService {
	return NewCrudService[models.ProductCategory, *models.ProductCategory](repo, "productCategory", nil, Hooks[models.ProductCategory]{}, events, logger)
}
