package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftshop/internal/domain/cart"
)

func TestNewRecord_FreezesItems(t *testing.T) {
	lines := []cart.Line{{ID: "watch_1", Title: "Rolex Classic", UnitPrice: 325, Quantity: 1}}

	rec, err := NewRecord(Customer{Name: "Ahmed Ali"}, lines)
	require.NoError(t, err)

	// Mutating the source slice must not change the record.
	lines[0].Quantity = 10

	assert.Equal(t, 1, rec.Items[0].Quantity)
	assert.Equal(t, float64(325), rec.Total)
	assert.Equal(t, StatusPending, rec.Status)
	assert.WithinDuration(t, time.Now().UTC(), rec.SubmittedAt, time.Minute)
}

func TestNewRecord_EmptyCart(t *testing.T) {
	rec, err := NewRecord(Customer{Name: "Ahmed Ali"}, nil)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, rec)
}

func TestNewOrderID_Format(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	id := NewOrderID(now)

	assert.Regexp(t, regexp.MustCompile(`^EG-2026-[0-9A-F]{6}$`), id)
}

func TestNewOrderID_Unique(t *testing.T) {
	seen := map[string]bool{}
	now := time.Now()
	for i := 0; i < 100; i++ {
		id := NewOrderID(now)
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
}
