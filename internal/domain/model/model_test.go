package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	} {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if OrderStatus("LOST").IsValid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
		OrderStatusDelivered:  {},
		OrderStatusCancelled:  {},
	}

	all := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	}

	for from, targets := range allowed {
		want := map[OrderStatus]bool{}
		for _, target := range targets {
			want[target] = true
		}
		for _, to := range all {
			if got := from.CanTransitionTo(to); got != want[to] {
				t.Errorf("%s -> %s: expected %v, got %v", from, to, want[to], got)
			}
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Error("delivered and cancelled must be terminal")
	}
	if OrderStatusPending.IsTerminal() || OrderStatusShipped.IsTerminal() {
		t.Error("pending and shipped must not be terminal")
	}
}

func TestOrderItemPriced(t *testing.T) {
	catalog := OrderItem{IsCustom: false, UnitPrice: decimal.Zero}
	if !catalog.Priced() {
		t.Error("catalog items are always priced, even at zero")
	}

	custom := OrderItem{IsCustom: true, UnitPrice: decimal.Zero}
	if custom.Priced() {
		t.Error("zero-priced custom item is a pending quote")
	}

	custom.UnitPrice = decimal.NewFromFloat(0.01)
	if !custom.Priced() {
		t.Error("positive-priced custom item is quoted")
	}
}

func TestOrderUnpricedItemIDs(t *testing.T) {
	pending := uuid.New()
	order := Order{Items: []OrderItem{
		{ID: uuid.New(), IsCustom: false},
		{ID: pending, IsCustom: true, UnitPrice: decimal.Zero},
		{ID: uuid.New(), IsCustom: true, UnitPrice: decimal.NewFromInt(4)},
	}}

	ids := order.UnpricedItemIDs()
	if len(ids) != 1 || ids[0] != pending {
		t.Fatalf("expected only the pending custom item, got %v", ids)
	}
}

func TestOrderItemLineAmount(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: decimal.NewFromFloat(8.5)}
	if !item.LineAmount().Equal(decimal.NewFromFloat(25.5)) {
		t.Fatalf("expected 25.5, got %s", item.LineAmount())
	}
}
