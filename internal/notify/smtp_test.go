package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/palletworks/portal/internal/domain/model"
)

func TestNewSMTPSenderRequiresHost(t *testing.T) {
	if _, err := NewSMTPSender("", 587, "", "", "orders@example.com"); err == nil {
		t.Fatal("expected error for empty host")
	}
}

func TestSubject(t *testing.T) {
	statusMsg := Message{Kind: KindStatusChanged, Status: model.OrderStatusShipped}
	if got := subject(statusMsg); got != "Your order is now shipped" {
		t.Errorf("unexpected status subject: %q", got)
	}

	priceMsg := Message{Kind: KindPriceChanged}
	if got := subject(priceMsg); got != "Updated pricing for your order" {
		t.Errorf("unexpected price subject: %q", got)
	}

	if got := subject(Message{Kind: Kind("other")}); got != "Order update" {
		t.Errorf("unexpected fallback subject: %q", got)
	}
}

func TestBodyStatusChanged(t *testing.T) {
	got := body(Message{Kind: KindStatusChanged, Status: model.OrderStatusConfirmed})
	if !strings.Contains(got, "status changed to CONFIRMED") {
		t.Errorf("expected status line, got:\n%s", got)
	}
}

func TestBodyPriceChangedWithBreakdown(t *testing.T) {
	delivery := decimal.NewFromInt(50)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	msg := Message{
		Kind:     KindPriceChanged,
		ItemName: "Custom pallet 120x120",
		OldPrice: decimal.NewFromFloat(12.5),
		NewPrice: decimal.NewFromFloat(14.75),
		Breakdown: &Breakdown{
			OrderID: "6d5f2f9e-9a3a-4a2f-9c71-0d6b9f1e8a11",
			Items: []ItemLine{
				{Name: "Euro pallet", Quantity: 10, UnitPrice: decimal.NewFromFloat(8.5)},
				{Name: "Custom pallet 120x120", Quantity: 5, UnitPrice: decimal.Zero, IsCustom: true},
			},
			DeliveryPrice: &delivery,
			DeliveryDate:  &date,
			Total:         decimal.NewFromInt(135),
		},
	}

	got := body(msg)
	for _, want := range []string{
		"from 12.50 to 14.75",
		"Euro pallet x10 @ 8.50",
		"Custom pallet 120x120 x5 @ pending",
		"Delivery: 50.00",
		"Delivery date: 2026-09-14",
		"Total: 135.00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected body to contain %q, got:\n%s", want, got)
		}
	}
}
