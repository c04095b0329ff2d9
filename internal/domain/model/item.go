package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a line item owned exclusively by its parent order. Product
// fields are a snapshot taken at order time and never change afterwards.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	IsCustom    bool
	CustomSpecs json.RawMessage
	CreatedAt   time.Time
}

// Priced reports whether the item carries an effective unit price. A zero
// price is the "quote pending" sentinel for custom items; for catalog items
// any non-negative price counts as final.
func (i OrderItem) Priced() bool {
	return !i.IsCustom || i.UnitPrice.IsPositive()
}

// LineAmount returns quantity * unitPrice without rounding.
func (i OrderItem) LineAmount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
