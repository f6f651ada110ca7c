package models

// User is an account of the store. The password hash is never serialized.
type User struct {
	Base
	Login        string  `json:"login" gorm:"uniqueIndex;type:varchar(50);not null" validate:"required,min=1,max=50"`
	Email        string  `json:"email" gorm:"uniqueIndex;type:varchar(254);not null" validate:"required,email,max=254"`
	FirstName    *string `json:"firstName,omitempty" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	LastName     *string `json:"lastName,omitempty" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	Activated    bool    `json:"activated" gorm:"not null;default:false"`
	Password     string  `json:"password,omitempty" gorm:"-" validate:"omitempty,min=4,max=100"`
	PasswordHash string  `json:"-" gorm:"type:varchar(60);not null"`
}
