package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShoppingCart is a customer's order, placed at PlacedDate and paid with PaymentMethod.
type ShoppingCart struct {
	Base
	PlacedDate        time.Time           `json:"placedDate" gorm:"not null" validate:"required"`
	Status            OrderStatus         `json:"status" gorm:"type:varchar(16);not null" validate:"required,oneof=COMPLETED PAID PENDING CANCELLED REFUNDED"`
	TotalPrice        decimal.NullDecimal `json:"totalPrice" gorm:"type:decimal(21,2);not null" validate:"required,min=0"`
	PaymentMethod     PaymentMethod       `json:"paymentMethod" gorm:"type:varchar(16);not null" validate:"required,oneof=CREDIT_CARD IDEAL PAYPAL"`
	PaymentReference  *string             `json:"paymentReference,omitempty" gorm:"type:varchar(255)"`
	CustomerDetailsID int64               `json:"-" gorm:"not null;index"`
	CustomerDetails   *CustomerDetails    `json:"customerDetails,omitempty" gorm:"foreignKey:CustomerDetailsID" validate:"-"`
}

// AfterFind leaves a reference holding only the id when the customer was not preloaded.
func (s *ShoppingCart) AfterFind(*gorm.DB) error {
	if s.CustomerDetails == nil && s.CustomerDetailsID != 0 {
		s.CustomerDetails = &CustomerDetails{Base: Base{ID: s.CustomerDetailsID}}
	}
	return nil
}

// ProductOrder is a single line of a shopping cart.
type ProductOrder struct {
	Base
	Quantity   *int                `json:"quantity" gorm:"not null" validate:"required,min=0"`
	TotalPrice decimal.NullDecimal `json:"totalPrice" gorm:"type:decimal(21,2);not null" validate:"required,min=0"`
	ProductID  int64               `json:"-" gorm:"not null;index"`
	Product    *Product            `json:"product,omitempty" gorm:"foreignKey:ProductID" validate:"-"`
	CartID     int64               `json:"-" gorm:"not null;index"`
	Cart       *ShoppingCart       `json:"cart,omitempty" gorm:"foreignKey:CartID" validate:"-"`
}

// AfterFind leaves references holding only the id for associations that were not preloaded.
func (o *ProductOrder) AfterFind(*gorm.DB) error {
	if o.Product == nil && o.ProductID != 0 {
		o.Product = &Product{Base: Base{ID: o.ProductID}}
	}
	if o.Cart == nil && o.CartID != 0 {
		o.Cart = &ShoppingCart{Base: Base{ID: o.CartID}}
	}
	return nil
}
