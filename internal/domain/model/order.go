package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus describes the fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Next returns the following status in the canonical fulfillment sequence
// pending -> confirmed -> processing -> shipped -> delivered.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusConfirmed, true
	case OrderStatusConfirmed:
		return OrderStatusProcessing, true
	case OrderStatusProcessing:
		return OrderStatusShipped, true
	case OrderStatusShipped:
		return OrderStatusDelivered, true
	}
	return "", false
}

// CanTransitionTo reports whether a single transition to target is legal.
// Cancellation is reachable from any non-terminal status; every other move
// must follow the canonical sequence one step at a time.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == OrderStatusCancelled {
		return true
	}
	next, ok := s.Next()
	return ok && target == next
}

// Order is the fulfillment aggregate. It is created from a customer cart and
// afterwards mutated only by administrative actions.
type Order struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	CustomerEmail string
	Status        OrderStatus
	DeliveryPrice *decimal.Decimal
	DeliveryDate  *time.Time
	Total         decimal.Decimal
	Version       int64
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UnpricedItemIDs returns the ids of custom items still waiting for an
// administrator to set a quote price.
func (o *Order) UnpricedItemIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, item := range o.Items {
		if !item.Priced() {
			ids = append(ids, item.ID)
		}
	}
	return ids
}
