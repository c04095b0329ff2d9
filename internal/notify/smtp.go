package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/palletworks/portal/internal/pricing"
)

// SMTPSender delivers notifications as plain-text email.
type SMTPSender struct {
	client *mail.Client
	from   string
}

// NewSMTPSender dials nothing up front; connections are established per send.
func NewSMTPSender(host string, port int, username, password, from string) (*SMTPSender, error) {
	if host == "" {
		return nil, fmt.Errorf("smtp host must be provided")
	}

	opts := []mail.Option{mail.WithPort(port)}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: from}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(msg.Recipient); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	m.Subject(subject(msg))
	m.SetBodyString(mail.TypeTextPlain, body(msg))

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func subject(msg Message) string {
	switch msg.Kind {
	case KindStatusChanged:
		return fmt.Sprintf("Your order is now %s", strings.ToLower(string(msg.Status)))
	case KindPriceChanged:
		return "Updated pricing for your order"
	default:
		return "Order update"
	}
}

func body(msg Message) string {
	var b strings.Builder

	switch msg.Kind {
	case KindStatusChanged:
		fmt.Fprintf(&b, "Hello,\n\nYour order status changed to %s.\n", msg.Status)
	case KindPriceChanged:
		fmt.Fprintf(&b, "Hello,\n\nThe price of %q was updated from %s to %s.\n",
			msg.ItemName, pricing.Display(msg.OldPrice), pricing.Display(msg.NewPrice))
	}

	if bd := msg.Breakdown; bd != nil {
		fmt.Fprintf(&b, "\nOrder %s\n", bd.OrderID)
		for _, line := range bd.Items {
			price := pricing.Display(line.UnitPrice)
			if line.IsCustom && line.UnitPrice.IsZero() {
				price = "pending"
			}
			fmt.Fprintf(&b, "  %s x%d @ %s\n", line.Name, line.Quantity, price)
		}
		if bd.DeliveryPrice != nil {
			fmt.Fprintf(&b, "  Delivery: %s\n", pricing.Display(*bd.DeliveryPrice))
		}
		if bd.DeliveryDate != nil {
			fmt.Fprintf(&b, "  Delivery date: %s\n", bd.DeliveryDate.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, "  Total: %s\n", pricing.Display(bd.Total))
	}

	b.WriteString("\nThank you,\nPallet Works\n")
	return b.String()
}
