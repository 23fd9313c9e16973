// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	orderdom "storefront/internal/domain/order"
)

// OrderMailer sends the order confirmation through an EmailClient.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
	storeName   string
}

func NewOrderMailer(client EmailClient, fromAddress, storeName string) *OrderMailer {
	if strings.TrimSpace(storeName) == "" {
		storeName = "Storefront"
	}
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		storeName:   strings.TrimSpace(storeName),
	}
}

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order) error {
	if m == nil || m.client == nil {
		return errors.New("mail: client is nil")
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return errors.New("mail: recipient is empty")
	}
	subject := fmt.Sprintf("[%s] Order %s received", m.storeName, o.ID)
	return m.client.Send(ctx, m.fromAddress, to, subject, renderOrderBody(m.storeName, o))
}

func renderOrderBody(storeName string, o orderdom.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order at %s.\n\n", storeName)
	fmt.Fprintf(&b, "Order:  %s\n", o.ID)
	fmt.Fprintf(&b, "Status: %s\n", o.Status)
	if o.CreatedAt > 0 {
		fmt.Fprintf(&b, "Placed: %s\n", time.UnixMilli(o.CreatedAt).UTC().Format(time.RFC3339))
	}
	b.WriteString("\n")
	for _, l := range o.Items {
		fmt.Fprintf(&b, "- %s x%d  %s\n", l.Name, l.Quantity, l.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", o.Total.StringFixed(2))
	return b.String()
}
