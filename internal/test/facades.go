package test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/usecase"
)

// IntakeFacadeStub provides controllable behaviour for intake endpoints.
type IntakeFacadeStub struct {
	ContactFn func(context.Context, usecase.ContactRequest) (*usecase.SubmissionReceipt, error)
	QuoteFn   func(context.Context, usecase.QuoteRequest) (*usecase.SubmissionReceipt, error)
	PickupFn  func(context.Context, usecase.PickupRequest) (*usecase.SubmissionReceipt, error)
}

func (s IntakeFacadeStub) SubmitContact(ctx context.Context, req usecase.ContactRequest) (*usecase.SubmissionReceipt, error) {
	if s.ContactFn != nil {
		return s.ContactFn(ctx, req)
	}
	return &usecase.SubmissionReceipt{SubmissionID: uuid.New(), Upstream: 200}, nil
}

func (s IntakeFacadeStub) SubmitQuote(ctx context.Context, req usecase.QuoteRequest) (*usecase.SubmissionReceipt, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, req)
	}
	return &usecase.SubmissionReceipt{SubmissionID: uuid.New(), Upstream: 200}, nil
}

func (s IntakeFacadeStub) SubmitPickup(ctx context.Context, req usecase.PickupRequest) (*usecase.SubmissionReceipt, error) {
	if s.PickupFn != nil {
		return s.PickupFn(ctx, req)
	}
	return &usecase.SubmissionReceipt{SubmissionID: uuid.New(), Upstream: 200}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn          func(context.Context, uuid.UUID, string, []usecase.NewOrderItem) (*model.Order, error)
	OrderFn           func(context.Context, uuid.UUID) (*model.Order, error)
	UpdateStatusFn    func(context.Context, uuid.UUID, model.OrderStatus, *time.Time, int64) (*model.Order, error)
	SetDeliveryFn     func(context.Context, uuid.UUID, decimal.Decimal, int64) (*model.Order, error)
	UpdateItemPriceFn func(context.Context, uuid.UUID, decimal.Decimal, int64) (*usecase.PriceChange, error)
}

func defaultOrder() *model.Order {
	return &model.Order{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		CustomerEmail: "buyer@example.com",
		Status:        model.OrderStatusPending,
		Total:         decimal.NewFromInt(85),
		Version:       1,
	}
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, customerID uuid.UUID, customerEmail string, items []usecase.NewOrderItem) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, customerID, customerEmail, items)
	}
	return defaultOrder(), nil
}

func (s OrderFacadeStub) Order(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return defaultOrder(), nil
}

func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, target model.OrderStatus, deliveryDate *time.Time, version int64) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, target, deliveryDate, version)
	}
	order := defaultOrder()
	order.Status = target
	return order, nil
}

func (s OrderFacadeStub) SetDeliveryPrice(ctx context.Context, orderID uuid.UUID, price decimal.Decimal, version int64) (*model.Order, error) {
	if s.SetDeliveryFn != nil {
		return s.SetDeliveryFn(ctx, orderID, price, version)
	}
	order := defaultOrder()
	order.DeliveryPrice = &price
	return order, nil
}

func (s OrderFacadeStub) UpdateItemPrice(ctx context.Context, itemID uuid.UUID, price decimal.Decimal, version int64) (*usecase.PriceChange, error) {
	if s.UpdateItemPriceFn != nil {
		return s.UpdateItemPriceFn(ctx, itemID, price, version)
	}
	return &usecase.PriceChange{
		Item:       &model.OrderItem{ID: itemID, ProductName: "Custom pallet", Quantity: 5, UnitPrice: price, IsCustom: true},
		OrderTotal: decimal.NewFromInt(135),
	}, nil
}

// PortalFacadeStub aggregates both facade stubs.
type PortalFacadeStub struct {
	IntakeFacadeStub
	OrderFacadeStub
}
