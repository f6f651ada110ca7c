package models

import (
	"reflect"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are serialized as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Entity is implemented by every persisted store record.
type Entity interface {
	GetID() int64
	SetID(id int64)
}

// Base carries the server-assigned identifier shared by all entities.
type Base struct {
	ID int64 `json:"id,omitempty" gorm:"primaryKey;autoIncrement"`
}

// GetID returns the identifier, zero when the entity has not been persisted.
func (b *Base) GetID() int64 { return b.ID }

// SetID sets the identifier.
func (b *Base) SetID(id int64) { b.ID = id }

// SameIdentity reports whether a and b denote the same record.
// An entity without an identifier is never equal to anything, and entities
// of different types never are.
func SameIdentity(a, b Entity) bool {
	if a == nil || b == nil || reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a.GetID() != 0 && a.GetID() == b.GetID()
}
