package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/palletworks/portal/internal/domain/model"
)

// Kind distinguishes the customer notifications the portal sends.
type Kind string

const (
	KindStatusChanged Kind = "order_status_changed"
	KindPriceChanged  Kind = "item_price_changed"
)

// ItemLine is one order line as it appears in a notification.
type ItemLine struct {
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
	IsCustom  bool
}

// Breakdown carries the order totals attached to price notifications.
type Breakdown struct {
	OrderID       string
	Items         []ItemLine
	DeliveryPrice *decimal.Decimal
	DeliveryDate  *time.Time
	Total         decimal.Decimal
}

// Message is a single notification to deliver to a customer.
type Message struct {
	Kind      Kind
	Recipient string
	Status    model.OrderStatus
	ItemName  string
	OldPrice  decimal.Decimal
	NewPrice  decimal.Decimal
	Breakdown *Breakdown
}

// Sender delivers a notification. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
