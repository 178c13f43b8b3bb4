package avro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftshop/internal/domain/cart"
	"giftshop/internal/domain/order"
)

func testRecord() *order.Record {
	return &order.Record{
		OrderID: "EG-2026-ABCDEF",
		Customer: order.Customer{
			Name:    "Ahmed Ali",
			Phone:   "0501234567",
			Address: "Dubai, Al Barsha",
			Notes:   "gift wrap please",
		},
		Items: []cart.Line{
			{ID: "watch_1", Title: "Rolex Classic", UnitPrice: 325, Quantity: 2, Category: "watches"},
			{ID: "perfume_2", Title: "Oud Royale", UnitPrice: 150, Quantity: 1, Category: "perfumes"},
		},
		Total:       800,
		SubmittedAt: time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		Status:      order.StatusPending,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)

	original := testRecord()

	binary, err := codec.EncodeOrder(original)
	require.NoError(t, err)
	require.NotEmpty(t, binary)

	decoded, err := codec.DecodeOrder(binary)
	require.NoError(t, err)

	assert.Equal(t, original.OrderID, decoded.OrderID)
	assert.Equal(t, original.Customer, decoded.Customer)
	assert.Equal(t, original.Total, decoded.Total)
	assert.True(t, original.SubmittedAt.Equal(decoded.SubmittedAt))
	assert.Equal(t, original.Status, decoded.Status)
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, original.Items[0], decoded.Items[0])
	assert.Equal(t, original.Items[1], decoded.Items[1])
}

func TestCodec_EncodeOrder_OptionalFieldsEmpty(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)

	rec := &order.Record{
		OrderID:     "EG-2026-000001",
		Items:       []cart.Line{{ID: "gift_1", Quantity: 1, UnitPrice: 10}},
		Total:       10,
		SubmittedAt: time.Now().UTC(),
	}

	binary, err := codec.EncodeOrder(rec)
	require.NoError(t, err)

	decoded, err := codec.DecodeOrder(binary)
	require.NoError(t, err)
	assert.Empty(t, decoded.Customer.Name)
	assert.Empty(t, decoded.Customer.Notes)
}

func TestCodec_EncodeOrder_NilRecord(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)

	_, err = codec.EncodeOrder(nil)
	assert.Error(t, err)
}

func TestCodec_DecodeOrder_Garbage(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)

	_, err = codec.DecodeOrder([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.Error(t, err)
}
