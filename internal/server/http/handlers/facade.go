package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/usecase"
)

// IntakeFacade describes the public submission operations used by handlers.
type IntakeFacade interface {
	SubmitContact(ctx context.Context, req usecase.ContactRequest) (*usecase.SubmissionReceipt, error)
	SubmitQuote(ctx context.Context, req usecase.QuoteRequest) (*usecase.SubmissionReceipt, error)
	SubmitPickup(ctx context.Context, req usecase.PickupRequest) (*usecase.SubmissionReceipt, error)
}

// OrderFacade encapsulates administrative order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, customerID uuid.UUID, customerEmail string, items []usecase.NewOrderItem) (*model.Order, error)
	Order(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, target model.OrderStatus, deliveryDate *time.Time, version int64) (*model.Order, error)
	SetDeliveryPrice(ctx context.Context, orderID uuid.UUID, price decimal.Decimal, version int64) (*model.Order, error)
	UpdateItemPrice(ctx context.Context, itemID uuid.UUID, price decimal.Decimal, version int64) (*usecase.PriceChange, error)
}

// PortalFacade aggregates the full set of operations used across handlers.
type PortalFacade interface {
	IntakeFacade
	OrderFacade
}
