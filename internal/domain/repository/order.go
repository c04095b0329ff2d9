package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palletworks/portal/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and their
// items. Every mutating call takes the version the caller read; a stale
// version yields domain ErrVersionConflict and no write happens.
type OrderRepository interface {
	// Create persists an order together with all items. Either everything is
	// stored or nothing is: a failed item insert must not leave an orphan
	// order row behind.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// GetByItemID loads the order owning the given item.
	GetByItemID(ctx context.Context, itemID uuid.UUID) (*model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, deliveryDate *time.Time, total decimal.Decimal, version int64) (*model.Order, error)
	UpdateDeliveryPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, total decimal.Decimal, version int64) (*model.Order, error)
	UpdateItemPrice(ctx context.Context, itemID uuid.UUID, price decimal.Decimal, total decimal.Decimal, version int64) (*model.Order, error)
}
