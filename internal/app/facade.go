package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/usecase"
)

// PortalFacade aggregates the application use cases behind one surface for
// the HTTP handlers.
type PortalFacade struct {
	intake *usecase.IntakeUseCase
	orders *usecase.OrderUseCase
}

func NewPortalFacade(intake *usecase.IntakeUseCase, orders *usecase.OrderUseCase) *PortalFacade {
	return &PortalFacade{intake: intake, orders: orders}
}

func (f *PortalFacade) SubmitContact(ctx context.Context, req usecase.ContactRequest) (*usecase.SubmissionReceipt, error) {
	return f.intake.SubmitContact(ctx, req)
}

func (f *PortalFacade) SubmitQuote(ctx context.Context, req usecase.QuoteRequest) (*usecase.SubmissionReceipt, error) {
	return f.intake.SubmitQuote(ctx, req)
}

func (f *PortalFacade) SubmitPickup(ctx context.Context, req usecase.PickupRequest) (*usecase.SubmissionReceipt, error) {
	return f.intake.SubmitPickup(ctx, req)
}

func (f *PortalFacade) CreateOrder(ctx context.Context, customerID uuid.UUID, customerEmail string, items []usecase.NewOrderItem) (*model.Order, error) {
	return f.orders.Create(ctx, customerID, customerEmail, items)
}

func (f *PortalFacade) Order(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *PortalFacade) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, target model.OrderStatus, deliveryDate *time.Time, version int64) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, target, deliveryDate, version)
}

func (f *PortalFacade) SetDeliveryPrice(ctx context.Context, orderID uuid.UUID, price decimal.Decimal, version int64) (*model.Order, error) {
	return f.orders.SetDeliveryPrice(ctx, orderID, price, version)
}

func (f *PortalFacade) UpdateItemPrice(ctx context.Context, itemID uuid.UUID, price decimal.Decimal, version int64) (*usecase.PriceChange, error) {
	return f.orders.UpdateItemPrice(ctx, itemID, price, version)
}
