package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerrors "github.com/palletworks/portal/internal/domain/errors"
	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/domain/repository"
	"github.com/palletworks/portal/internal/notify"
	"github.com/palletworks/portal/internal/pricing"
)

// Notifier accepts customer notifications without blocking the caller.
type Notifier interface {
	Enqueue(msg notify.Message)
}

// NewOrderItem describes one line of an order being created.
type NewOrderItem struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	IsCustom    bool
	CustomSpecs []byte
}

// PriceChange reports the outcome of an item price update.
type PriceChange struct {
	Item       *model.OrderItem
	OrderTotal decimal.Decimal
}

// OrderUseCase orchestrates administrative order mutations: status moves,
// delivery pricing, and custom item quoting. Mutations notify the customer
// through the Notifier, and notification failures never fail the mutation.
type OrderUseCase struct {
	orders   repository.OrderRepository
	policy   pricing.Policy
	notifier Notifier
}

func NewOrderUseCase(orders repository.OrderRepository, policy pricing.Policy, notifier Notifier) *OrderUseCase {
	return &OrderUseCase{orders: orders, policy: policy, notifier: notifier}
}

// Create validates and persists a new pending order.
func (uc *OrderUseCase) Create(ctx context.Context, customerID uuid.UUID, customerEmail string, items []NewOrderItem) (*model.Order, error) {
	verr := &domainerrors.ValidationError{}
	if customerID == uuid.Nil {
		verr.Add("customerId", "must be provided")
	}
	if !ValidEmail(customerEmail) {
		verr.Add("customerEmail", "must be a valid email address")
	}
	if len(items) == 0 {
		verr.Add("items", "must not be empty")
	}
	for i, item := range items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.ProductName) == "" {
			verr.Add(field+".productName", "must not be empty")
		}
		if item.Quantity <= 0 {
			verr.Add(field+".quantity", "must be positive")
		}
		if item.UnitPrice.IsNegative() {
			verr.Add(field+".unitPrice", "must not be negative")
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	order := &model.Order{
		CustomerID:    customerID,
		CustomerEmail: customerEmail,
		Status:        model.OrderStatusPending,
	}
	for _, item := range items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			IsCustom:    item.IsCustom,
			CustomSpecs: item.CustomSpecs,
		})
	}
	order.Total = pricing.StoredTotal(order.Items, nil)

	return uc.orders.Create(ctx, order)
}

// Get loads an order with its items.
func (uc *OrderUseCase) Get(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return uc.orders.GetByID(ctx, orderID)
}

// UpdateStatus moves an order one step along the fulfillment sequence or
// cancels it. Shipping requires a delivery date. Leaving pending toward
// fulfillment additionally requires delivery pricing and all custom items
// quoted; the returned PreconditionError names everything still missing.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID uuid.UUID, target model.OrderStatus, deliveryDate *time.Time, version int64) (*model.Order, error) {
	if !target.IsValid() {
		return nil, domainerrors.NewValidationError("status", "unknown status")
	}

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Version != version {
		return nil, domainerrors.ErrVersionConflict
	}

	if err := validateTransition(order, target, deliveryDate); err != nil {
		return nil, err
	}

	if target == model.OrderStatusShipped && deliveryDate == nil && order.DeliveryDate == nil {
		return nil, domainerrors.NewValidationError("deliveryDate", "must be set when shipping")
	}
	if deliveryDate == nil {
		deliveryDate = order.DeliveryDate
	}

	total := pricing.StoredTotal(order.Items, order.DeliveryPrice)

	updated, err := uc.orders.UpdateStatus(ctx, orderID, target, deliveryDate, total, version)
	if err != nil {
		return nil, err
	}

	uc.notifier.Enqueue(notify.Message{
		Kind:      notify.KindStatusChanged,
		Recipient: updated.CustomerEmail,
		Status:    updated.Status,
		Breakdown: breakdown(updated),
	})

	return updated, nil
}

// validateTransition enforces the status machine plus the pending exit gate.
// A delivery date supplied alongside the transition satisfies the gate just
// like a stored one.
func validateTransition(order *model.Order, target model.OrderStatus, suppliedDate *time.Time) error {
	if !order.Status.CanTransitionTo(target) {
		return &domainerrors.TransitionError{From: string(order.Status), To: string(target)}
	}

	if order.Status == model.OrderStatusPending && target != model.OrderStatusCancelled {
		perr := &domainerrors.PreconditionError{
			MissingDeliveryPrice: order.DeliveryPrice == nil,
			MissingDeliveryDate:  order.DeliveryDate == nil && suppliedDate == nil,
			UnpricedItemIDs:      order.UnpricedItemIDs(),
		}
		if perr.Failed() {
			return perr
		}
	}
	return nil
}

// SetDeliveryPrice stores an explicit delivery price and recomputes the total.
func (uc *OrderUseCase) SetDeliveryPrice(ctx context.Context, orderID uuid.UUID, price decimal.Decimal, version int64) (*model.Order, error) {
	if price.IsNegative() {
		return nil, domainerrors.ErrInvalidAmount
	}

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Version != version {
		return nil, domainerrors.ErrVersionConflict
	}

	total := pricing.StoredTotal(order.Items, &price)
	return uc.orders.UpdateDeliveryPrice(ctx, orderID, price, total, version)
}

// UpdateItemPrice sets a quoted price on an item, recomputes the owning
// order's total, and notifies the customer with the old and new price.
func (uc *OrderUseCase) UpdateItemPrice(ctx context.Context, itemID uuid.UUID, newPrice decimal.Decimal, version int64) (*PriceChange, error) {
	if newPrice.IsNegative() {
		return nil, domainerrors.ErrInvalidAmount
	}

	order, err := uc.orders.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if order.Version != version {
		return nil, domainerrors.ErrVersionConflict
	}

	var target *model.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			target = &order.Items[i]
			break
		}
	}
	if target == nil {
		return nil, domainerrors.ErrNotFound
	}
	oldPrice := target.UnitPrice
	target.UnitPrice = newPrice

	total := pricing.StoredTotal(order.Items, order.DeliveryPrice)

	updated, err := uc.orders.UpdateItemPrice(ctx, itemID, newPrice, total, version)
	if err != nil {
		return nil, err
	}

	var updatedItem *model.OrderItem
	for i := range updated.Items {
		if updated.Items[i].ID == itemID {
			updatedItem = &updated.Items[i]
			break
		}
	}
	if updatedItem == nil {
		return nil, domainerrors.ErrNotFound
	}

	uc.notifier.Enqueue(notify.Message{
		Kind:      notify.KindPriceChanged,
		Recipient: updated.CustomerEmail,
		ItemName:  updatedItem.ProductName,
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
		Breakdown: breakdown(updated),
	})

	return &PriceChange{Item: updatedItem, OrderTotal: updated.Total}, nil
}

func breakdown(order *model.Order) *notify.Breakdown {
	bd := &notify.Breakdown{
		OrderID:       order.ID.String(),
		DeliveryPrice: order.DeliveryPrice,
		DeliveryDate:  order.DeliveryDate,
		Total:         order.Total,
	}
	for _, item := range order.Items {
		bd.Items = append(bd.Items, notify.ItemLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			IsCustom:  item.IsCustom,
		})
	}
	return bd
}
