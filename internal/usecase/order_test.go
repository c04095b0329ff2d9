package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/palletworks/portal/internal/domain/errors"
	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/notify"
	"github.com/palletworks/portal/internal/pricing"
	"github.com/palletworks/portal/internal/test"
	"github.com/palletworks/portal/internal/usecase"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func timePtr(t time.Time) *time.Time { return &t }

// readyOrder is fully priced and may leave pending.
func readyOrder() *model.Order {
	orderID := uuid.New()
	return &model.Order{
		ID:            orderID,
		CustomerID:    uuid.New(),
		CustomerEmail: "buyer@example.com",
		Status:        model.OrderStatusPending,
		DeliveryPrice: decimalPtr(decimal.NewFromInt(50)),
		DeliveryDate:  timePtr(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)),
		Version:       1,
		Items: []model.OrderItem{
			{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductName: "Euro pallet",
				Quantity:    10,
				UnitPrice:   decimal.NewFromFloat(8.5),
			},
			{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductName: "Custom pallet 120x120",
				Quantity:    5,
				UnitPrice:   decimal.NewFromInt(4),
				IsCustom:    true,
			},
		},
	}
}

func newOrderUC(repo test.OrderRepositoryStub) (*usecase.OrderUseCase, *test.NotifierStub) {
	notifier := &test.NotifierStub{}
	return usecase.NewOrderUseCase(repo, pricing.DefaultPolicy(), notifier), notifier
}

func TestCreateOrder(t *testing.T) {
	var created *model.Order
	repo := test.OrderRepositoryStub{
		CreateFn: func(_ context.Context, order *model.Order) (*model.Order, error) {
			created = order
			stored := *order
			stored.ID = uuid.New()
			stored.Version = 1
			return &stored, nil
		},
	}
	uc, _ := newOrderUC(repo)

	items := []usecase.NewOrderItem{
		{ProductID: uuid.New(), ProductName: "Euro pallet", Quantity: 10, UnitPrice: decimal.NewFromFloat(8.5)},
		{ProductID: uuid.New(), ProductName: "Custom pallet", Quantity: 5, IsCustom: true},
	}
	order, err := uc.Create(context.Background(), uuid.New(), "buyer@example.com", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Status != model.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	// Unpriced custom item contributes nothing and no delivery price exists yet.
	if !created.Total.Equal(decimal.NewFromInt(85)) {
		t.Errorf("expected initial total 85, got %s", created.Total)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	uc, _ := newOrderUC(test.OrderRepositoryStub{})

	cases := []struct {
		name       string
		customerID uuid.UUID
		email      string
		items      []usecase.NewOrderItem
	}{
		{"missing customer", uuid.Nil, "buyer@example.com", []usecase.NewOrderItem{{ProductName: "p", Quantity: 1}}},
		{"bad email", uuid.New(), "nope", []usecase.NewOrderItem{{ProductName: "p", Quantity: 1}}},
		{"no items", uuid.New(), "buyer@example.com", nil},
		{"zero quantity", uuid.New(), "buyer@example.com", []usecase.NewOrderItem{{ProductName: "p", Quantity: 0}}},
		{"negative price", uuid.New(), "buyer@example.com", []usecase.NewOrderItem{{ProductName: "p", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.customerID, tc.email, tc.items)
			var verr *domainErrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestUpdateStatusHappyPath(t *testing.T) {
	order := readyOrder()
	var gotTotal decimal.Decimal
	repo := test.OrderRepositoryStub{
		GetByIDFn: func(_ context.Context, id uuid.UUID) (*model.Order, error) {
			return order, nil
		},
		UpdateStatusFn: func(_ context.Context, id uuid.UUID, status model.OrderStatus, deliveryDate *time.Time, total decimal.Decimal, version int64) (*model.Order, error) {
			gotTotal = total
			updated := *order
			updated.Status = status
			updated.Total = total
			updated.Version = version + 1
			return &updated, nil
		},
	}
	uc, notifier := newOrderUC(repo)

	updated, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusConfirmed, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != model.OrderStatusConfirmed {
		t.Errorf("expected confirmed, got %s", updated.Status)
	}
	// 10*8.50 + 5*4 + 50 delivery.
	if !gotTotal.Equal(decimal.NewFromInt(155)) {
		t.Errorf("expected recomputed total 155, got %s", gotTotal)
	}

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(sent))
	}
	if sent[0].Kind != notify.KindStatusChanged || sent[0].Recipient != "buyer@example.com" {
		t.Errorf("unexpected notification: %+v", sent[0])
	}
	if sent[0].Breakdown == nil || len(sent[0].Breakdown.Items) != 2 {
		t.Errorf("expected breakdown with items, got %+v", sent[0].Breakdown)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	uc, _ := newOrderUC(test.OrderRepositoryStub{})

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), model.OrderStatus("LOST"), nil, 1)
	var verr *domainErrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateStatusVersionConflict(t *testing.T) {
	order := readyOrder()
	order.Version = 3
	repo := test.OrderRepositoryStub{
		GetByIDFn: func(context.Context, uuid.UUID) (*model.Order, error) { return order, nil },
	}
	uc, notifier := newOrderUC(repo)

	_, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusConfirmed, nil, 1)
	if !errors.Is(err, domainErrors.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
	if len(notifier.Sent()) != 0 {
		t.Error("no notification may be sent on conflict")
	}
}

func TestUpdateStatusIllegalTransitions(t *testing.T) {
	cases := []struct {
		name   string
		from   model.OrderStatus
		target model.OrderStatus
	}{
		{"skip a step", model.OrderStatusPending, model.OrderStatusProcessing},
		{"backwards", model.OrderStatusShipped, model.OrderStatusProcessing},
		{"leave delivered", model.OrderStatusDelivered, model.OrderStatusCancelled},
		{"leave cancelled", model.OrderStatusCancelled, model.OrderStatusPending},
		{"self transition", model.OrderStatusConfirmed, model.OrderStatusConfirmed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := readyOrder()
			order.Status = tc.from
			repo := test.OrderRepositoryStub{
				GetByIDFn: func(context.Context, uuid.UUID) (*model.Order, error) { return order, nil },
			}
			uc, notifier := newOrderUC(repo)

			_, err := uc.UpdateStatus(context.Background(), order.ID, tc.target, nil, 1)
			var terr *domainErrors.TransitionError
			if !errors.As(err, &terr) {
				t.Fatalf("expected TransitionError, got %v", err)
			}
			if len(notifier.Sent()) != 0 {
				t.Error("no notification may be sent on a rejected transition")
			}
		})
	}
}

func TestUpdateStatusCancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
	} {
		t.Run(string(from), func(t *testing.T) {
			order := readyOrder()
			order.Status = from
			// Cancellation must work even for an unpriced pending order.
			order.DeliveryPrice = nil
			order.DeliveryDate = nil
			order.Items[1].UnitPrice = decimal.Zero

			repo := test.OrderRepositoryStub{
				GetByIDFn: func(context.Context, uuid.UUID) (*model.Order, error) { return order, nil },
				UpdateStatusFn: func(_ context.Context, _ uuid.UUID, status model.OrderStatus, _ *time.Time, total decimal.Decimal, version int64) (*model.Order, error) {
					updated := *order
					updated.Status = status
					updated.Version = version + 1
					return &updated, nil
				},
			}
			uc, _ := newOrderUC(repo)

			updated, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusCancelled, nil, 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.Status != model.OrderStatusCancelled {
				t.Errorf("expected cancelled, got %s", updated.Status)
			}
		})
	}
}

func TestUpdateStatusPendingExitGate(t *testing.T) {
	order := readyOrder()
	order.DeliveryPrice = nil
	order.DeliveryDate = nil
	order.Items[1].UnitPrice = decimal.Zero
	unpricedID := order.Items[1].ID

	repo := test.OrderRepositoryStub{
		GetByIDFn: func(context.Context, uuid.UUID) (*model.Order, error) { return order, nil },
	}
	uc, _ := newOrderUC(repo)

	_, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusConfirmed, nil, 1)
	var perr *domainErrors.PreconditionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
	if !perr.MissingDeliveryPrice || !perr.MissingDeliveryDate {
		t.Errorf("expected both delivery gaps reported: %+v", perr)
	}
	if len(perr.UnpricedItemIDs) != 1 || perr.UnpricedItemIDs[0] != unpricedID {
		t.Errorf("expected unpriced item %s reported, got %v", unpricedID, perr.UnpricedItemIDs)
	}
}

func TestUpdateStatusPendingExitWithSuppliedDate(t *testing.T) {
	order := readyOrder()
	order.DeliveryDate = nil

	var gotDate *time.Time
	repo := test.OrderRepositoryStub{
		GetByIDFn: func(context.Context, uuid.UUID) (*model.Order, error) { return order, nil },
		UpdateStatusFn: func(_ context.Context, _ uuid.UUID, status model.OrderStatus, deliveryDate *time.Time, total decimal.Decimal, version int64) (*model.Order, error) {
			gotDate = deliveryDate
			updated := *order
			updated.Status = status
			updated.DeliveryDate = deliveryDate
			updated.Total = total
			updated.Version = version + 1
			return &updated, nil
		},
	}
	uc, _ := newOrderUC(repo)

	date := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	updated, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusConfirmed, &date, 1)
	if err != nil {
		t.Fatalf("date supplied with the transition must satisfy the gate: %v", err)
	}
	if updated.Status != model.OrderStatusConfirmed {
		t.Errorf("expected confirmed, got %s", updated.Status)
	}
	if gotDate == nil || !gotDate.Equal(date) {
		t.Errorf("expected supplied date %s persisted, got %v", date, gotDate)
	}
}

func TestUpdateStatusShippingRequiresDate(t *testing.T) {
	order := readyOrder()
	order.Status = model.OrderStatusProcessing
	order.DeliveryDate = nil
	repo := test.OrderRepositoryStub{
		GetByIDFn: func(context.Context, uuid.UUID) (*model.Order, error) { return order, nil },
	}
	uc, _ := newOrderUC(repo)

	_, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusShipped, nil, 1)
	var verr *domainErrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for missing delivery date, got %v", err)
	}
}

func TestSetDeliveryPrice(t *testing.T) {
	order := readyOrder()
	order.DeliveryPrice = nil
	var gotPrice, gotTotal decimal.Decimal
	repo := test.OrderRepositoryStub{
		GetByIDFn: func(context.Context, uuid.UUID) (*model.Order, error) { return order, nil },
		UpdateDeliveryPriceFn: func(_ context.Context, _ uuid.UUID, price, total decimal.Decimal, version int64) (*model.Order, error) {
			gotPrice, gotTotal = price, total
			updated := *order
			updated.DeliveryPrice = &price
			updated.Total = total
			updated.Version = version + 1
			return &updated, nil
		},
	}
	uc, _ := newOrderUC(repo)

	price := decimal.NewFromFloat(32.5)
	updated, err := uc.SetDeliveryPrice(context.Background(), order.ID, price, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotPrice.Equal(price) {
		t.Errorf("expected price %s, got %s", price, gotPrice)
	}
	// 10*8.50 + 5*4 + 32.50.
	if !gotTotal.Equal(decimal.NewFromFloat(137.5)) {
		t.Errorf("expected total 137.50, got %s", gotTotal)
	}
	if updated.Version != 2 {
		t.Errorf("expected bumped version, got %d", updated.Version)
	}
}

func TestSetDeliveryPriceRejectsNegative(t *testing.T) {
	uc, _ := newOrderUC(test.OrderRepositoryStub{})

	_, err := uc.SetDeliveryPrice(context.Background(), uuid.New(), decimal.NewFromInt(-1), 1)
	if !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestUpdateItemPrice(t *testing.T) {
	order := readyOrder()
	order.Items[1].UnitPrice = decimal.Zero
	itemID := order.Items[1].ID

	repo := test.OrderRepositoryStub{
		GetByItemIDFn: func(context.Context, uuid.UUID) (*model.Order, error) { return order, nil },
		UpdateItemPriceFn: func(_ context.Context, id uuid.UUID, price, total decimal.Decimal, version int64) (*model.Order, error) {
			updated := *order
			updated.Items = append([]model.OrderItem(nil), order.Items...)
			for i := range updated.Items {
				if updated.Items[i].ID == id {
					updated.Items[i].UnitPrice = price
				}
			}
			updated.Total = total
			updated.Version = version + 1
			return &updated, nil
		},
	}
	uc, notifier := newOrderUC(repo)

	newPrice := decimal.NewFromInt(12)
	change, err := uc.UpdateItemPrice(context.Background(), itemID, newPrice, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !change.Item.UnitPrice.Equal(newPrice) {
		t.Errorf("expected item price %s, got %s", newPrice, change.Item.UnitPrice)
	}
	// 10*8.50 + 5*12 + 50 delivery.
	if !change.OrderTotal.Equal(decimal.NewFromInt(195)) {
		t.Errorf("expected total 195, got %s", change.OrderTotal)
	}

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(sent))
	}
	msg := sent[0]
	if msg.Kind != notify.KindPriceChanged {
		t.Errorf("unexpected kind %s", msg.Kind)
	}
	if !msg.OldPrice.Equal(decimal.Zero) || !msg.NewPrice.Equal(newPrice) {
		t.Errorf("expected old 0 and new %s, got %s and %s", newPrice, msg.OldPrice, msg.NewPrice)
	}
	if msg.ItemName != "Custom pallet 120x120" {
		t.Errorf("unexpected item name %q", msg.ItemName)
	}
}

func TestUpdateItemPriceErrors(t *testing.T) {
	order := readyOrder()

	t.Run("negative price", func(t *testing.T) {
		uc, _ := newOrderUC(test.OrderRepositoryStub{})
		_, err := uc.UpdateItemPrice(context.Background(), uuid.New(), decimal.NewFromInt(-5), 1)
		if !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		uc, _ := newOrderUC(test.OrderRepositoryStub{})
		_, err := uc.UpdateItemPrice(context.Background(), uuid.New(), decimal.NewFromInt(5), 1)
		if !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("stale version", func(t *testing.T) {
		repo := test.OrderRepositoryStub{
			GetByItemIDFn: func(context.Context, uuid.UUID) (*model.Order, error) { return order, nil },
		}
		uc, notifier := newOrderUC(repo)
		_, err := uc.UpdateItemPrice(context.Background(), order.Items[0].ID, decimal.NewFromInt(5), 99)
		if !errors.Is(err, domainErrors.ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}
		if len(notifier.Sent()) != 0 {
			t.Error("no notification may be sent on conflict")
		}
	})
}
