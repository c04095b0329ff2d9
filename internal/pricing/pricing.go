// Package pricing computes order money amounts. All arithmetic stays in
// decimals and intermediate sums are never rounded; callers round to two
// digits for display only.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/palletworks/portal/internal/domain/model"
)

// Policy configures delivery fee computation. The threshold/fee pair is not a
// universal constant: checkout and admin-set delivery pricing use different
// values, so the policy travels explicitly with every call site.
type Policy struct {
	FreeDeliveryThreshold decimal.Decimal
	FlatFee               decimal.Decimal
}

// DefaultPolicy mirrors storefront checkout: free delivery from 500, flat 50
// below the threshold.
func DefaultPolicy() Policy {
	return Policy{
		FreeDeliveryThreshold: decimal.NewFromInt(500),
		FlatFee:               decimal.NewFromInt(50),
	}
}

// Subtotal sums quantity * unitPrice over all items. Custom items still
// waiting for a quote carry a zero price and contribute nothing.
func Subtotal(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineAmount())
	}
	return total
}

// DeliveryFee returns the flat fee, waived once the subtotal reaches the
// free-delivery threshold.
func (p Policy) DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return p.FlatFee
}

// Total computes subtotal plus the delivery contribution. An explicit
// delivery price wins; nil falls back to the policy fee.
func Total(items []model.OrderItem, deliveryPrice *decimal.Decimal, p Policy) decimal.Decimal {
	subtotal := Subtotal(items)
	if deliveryPrice != nil {
		return subtotal.Add(*deliveryPrice)
	}
	return subtotal.Add(p.DeliveryFee(subtotal))
}

// StoredTotal recomputes a persisted order's total: subtotal plus the stored
// delivery price, counting an unset price as zero.
func StoredTotal(items []model.OrderItem, deliveryPrice *decimal.Decimal) decimal.Decimal {
	subtotal := Subtotal(items)
	if deliveryPrice == nil {
		return subtotal
	}
	return subtotal.Add(*deliveryPrice)
}

// Display renders an amount with two-digit rounding. This is the only place
// monetary values are rounded.
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
