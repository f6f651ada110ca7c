package app

import (
	"context"
	"fmt"

	"store/internal/models"

	"github.com/shopspring/decimal"
)

// Seed populates an empty catalog with a few categories and products for development.
// It does nothing when products already exist.
func (a *App) Seed(ctx context.Context) error {
	total, err := a.Products.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if total > 0 {
		a.log.Info().Int64("products", total).Msg("Catalog already populated, skipping seed")
		return nil
	}

	categories := map[string]*models.ProductCategory{
		"Computers":   {Name: "Computers", Description: strPtr("Laptops and peripherals")},
		"Accessories": {Name: "Accessories", Description: strPtr("Small things that go with a computer")},
	}
	for name, category := range categories {
		if _, err := a.ProductCategories.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
	}

	products := []models.Product{
		{Name: "Laptop", Description: strPtr("High performance laptop"), Price: decimal.RequireFromString("1200.00"), Size: models.SizeL, ProductCategory: categories["Computers"]},
		{Name: "Keyboard", Description: strPtr("Mechanical keyboard"), Price: decimal.RequireFromString("75.00"), Size: models.SizeM, ProductCategory: categories["Accessories"]},
		{Name: "Mouse", Description: strPtr("Ergonomic wireless mouse"), Price: decimal.RequireFromString("25.00"), Size: models.SizeS, ProductCategory: categories["Accessories"]},
	}
	for i := range products {
		if _, err := a.Products.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
		a.log.Info().Str("name", products[i].Name).Int64("id", products[i].ID).Msg("Seeded product")
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
