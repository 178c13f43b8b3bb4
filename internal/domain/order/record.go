package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"giftshop/internal/domain/cart"
)

// DispatchStatus tracks which sinks received an order.
type DispatchStatus string

const (
	StatusPending    DispatchStatus = "pending"
	StatusSentLocal  DispatchStatus = "sent-local"
	StatusSentRemote DispatchStatus = "sent-remote"
	StatusFailed     DispatchStatus = "failed"
)

// Record is an immutable snapshot of cart contents plus customer data
// created once per checkout submission. Items are copied so later cart
// mutations never retroactively alter a historical order.
type Record struct {
	OrderID     string         `json:"orderId"`
	Customer    Customer       `json:"customer"`
	Items       []cart.Line    `json:"items"`
	Total       float64        `json:"total"`
	SubmittedAt time.Time      `json:"submittedAt"`
	Status      DispatchStatus `json:"dispatchStatus"`
}

// NewRecord freezes the given lines into a pending order. The total is
// computed here from the copied items, not taken from any cached value.
func NewRecord(customer Customer, lines []cart.Line) (*Record, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]cart.Line, len(lines))
	copy(items, lines)

	return &Record{
		OrderID:     NewOrderID(time.Now().UTC()),
		Customer:    customer,
		Items:       items,
		Total:       cart.Cart{Lines: items}.Total(),
		SubmittedAt: time.Now().UTC(),
		Status:      StatusPending,
	}, nil
}

// NewOrderID generates an order identifier of the form EG-2026-9F3A21:
// current year plus a random suffix, unique per order.
func NewOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("EG-%d-%s", now.Year(), suffix)
}
