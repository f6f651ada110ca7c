package models

import "gorm.io/gorm"

// CustomerDetails holds the contact and shipping data of a customer.
// Every record belongs to exactly one User.
type CustomerDetails struct {
	Base
	Gender       Gender  `json:"gender" gorm:"type:varchar(8);not null" validate:"required,oneof=MALE FEMALE OTHER"`
	Phone        string  `json:"phone" gorm:"type:varchar(255);not null" validate:"required"`
	AddressLine1 string  `json:"addressLine1" gorm:"type:varchar(255);not null" validate:"required"`
	AddressLine2 *string `json:"addressLine2,omitempty" gorm:"type:varchar(255)"`
	City         string  `json:"city" gorm:"type:varchar(255);not null" validate:"required"`
	Country      string  `json:"country" gorm:"type:varchar(255);not null" validate:"required"`
	UserID       int64   `json:"-" gorm:"uniqueIndex;not null"`
	User         *User   `json:"user,omitempty" gorm:"foreignKey:UserID" validate:"-"`
}

// TableName keeps the plural table name used by the original schema.
func (CustomerDetails) TableName() string {
	return "customer_details"
}

// AfterFind leaves a reference holding only the id when the user was not preloaded.
func (c *CustomerDetails) AfterFind(*gorm.DB) error {
	if c.User == nil && c.UserID != 0 {
		c.User = &User{Base: Base{ID: c.UserID}}
	}
	return nil
}
