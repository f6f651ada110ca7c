package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductCategory groups products in the catalogue.
type ProductCategory struct {
	Base
	Name        string  `json:"name" gorm:"type:varchar(255);not null" validate:"required"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
}

// Product represents a product in the store.
type Product struct {
	Base
	Name              string           `json:"name" gorm:"type:varchar(255);not null" validate:"required"`
	Description       *string          `json:"description,omitempty" gorm:"type:text"`
	Price             decimal.Decimal  `json:"price" gorm:"type:decimal(21,2);not null" validate:"required,gt=0"`
	Size              Size             `json:"size" gorm:"type:varchar(8);not null" validate:"required,oneof=S M L XL XXL"`
	Image             *string          `json:"image,omitempty" gorm:"type:varchar(2048)" validate:"omitempty,max=2048"`
	ProductCategoryID *int64           `json:"-"`
	ProductCategory   *ProductCategory `json:"productCategory,omitempty" gorm:"foreignKey:ProductCategoryID" validate:"-"`
}

// AfterFind leaves a reference holding only the id when the category was not preloaded.
func (p *Product) AfterFind(*gorm.DB) error {
	if p.ProductCategory == nil && p.ProductCategoryID != nil {
		p.ProductCategory = &ProductCategory{Base: Base{ID: *p.ProductCategoryID}}
	}
	return nil
}
