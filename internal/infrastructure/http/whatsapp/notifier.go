package whatsapp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"giftshop/internal/config"
	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

// LinkOpener hands a wa.me deep link to whatever surface can open it.
// There is no delivery confirmation on this channel; opening the link
// is all the application can do.
type LinkOpener func(ctx context.Context, link string) error

// Notifier is the best-effort notify sink: it renders the order as a
// WhatsApp message and opens the deep link.
type Notifier struct {
	number string
	open   LinkOpener
	log    logger.Logger
}

func NewNotifier(cfg config.WhatsAppConfig, open LinkOpener, log logger.Logger) *Notifier {
	return &Notifier{number: cfg.Number, open: open, log: log}
}

func (n *Notifier) Name() string { return "whatsapp" }
func (n *Notifier) Kind() string { return "remote" }

func (n *Notifier) Deliver(ctx context.Context, rec *order.Record) error {
	if n.number == "" {
		return fmt.Errorf("whatsapp number is not configured")
	}
	if n.open == nil {
		return fmt.Errorf("no link opener configured")
	}

	link := n.Link(rec)
	if err := n.open(ctx, link); err != nil {
		return fmt.Errorf("open whatsapp link: %w", err)
	}

	n.log.Info("whatsapp notification opened", logger.String("order_id", rec.OrderID))
	return nil
}

// Link builds the wa.me deep link carrying the URL-encoded order
// summary.
func (n *Notifier) Link(rec *order.Record) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", n.number, url.QueryEscape(Message(rec)))
}

// Message renders the order summary: customer details, itemized lines
// with quantities and line totals, and the grand total.
func Message(rec *order.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New Order %s\n\n", rec.OrderID)
	fmt.Fprintf(&b, "Name: %s\n", rec.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", rec.Customer.Phone)
	fmt.Fprintf(&b, "Address: %s\n", rec.Customer.Address)
	if rec.Customer.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", rec.Customer.Notes)
	}

	b.WriteString("\nItems:\n")
	for _, item := range rec.Items {
		fmt.Fprintf(&b, "- %s x%d = %.2f AED\n", item.Title, item.Quantity, item.Subtotal())
	}

	fmt.Fprintf(&b, "\nTotal: %.2f AED", rec.Total)
	return b.String()
}
