package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftshop/internal/config"
	"giftshop/internal/domain/cart"
	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

func testRecord() *order.Record {
	return &order.Record{
		OrderID: "EG-2026-ABCDEF",
		Customer: order.Customer{
			Name:    "Ahmed Ali",
			Phone:   "0501234567",
			Address: "Dubai, Al Barsha",
		},
		Items: []cart.Line{
			{ID: "watch_1", Title: "Rolex Classic", UnitPrice: 325, Quantity: 2},
		},
		Total:       650,
		SubmittedAt: time.Now().UTC(),
		Status:      order.StatusPending,
	}
}

func TestClient_Deliver_Success(t *testing.T) {
	var received envelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "orderId": "EG-2026-ABCDEF"})
	}))
	defer server.Close()

	client := NewClient(config.WebhookConfig{URL: server.URL, Timeout: time.Second}, logger.NewNop())

	err := client.Deliver(context.Background(), testRecord())

	require.NoError(t, err)
	assert.Equal(t, "EG-2026-ABCDEF", received.Order.OrderID)
	assert.Equal(t, "Ahmed Ali", received.Order.CustomerName)
	require.Len(t, received.Order.Items, 1)
	assert.Equal(t, float64(650), received.Order.Items[0].LineTotal)
	assert.Equal(t, float64(650), received.Order.Total)
}

func TestClient_Deliver_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "storage unavailable"}`))
	}))
	defer server.Close()

	client := NewClient(config.WebhookConfig{URL: server.URL, Timeout: time.Second}, logger.NewNop())

	err := client.Deliver(context.Background(), testRecord())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "storage unavailable")
}

func TestClient_Deliver_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(config.WebhookConfig{URL: server.URL, Timeout: time.Second}, logger.NewNop())

	err := client.Deliver(context.Background(), testRecord())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Deliver_RejectedOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "duplicate order"})
	}))
	defer server.Close()

	client := NewClient(config.WebhookConfig{URL: server.URL, Timeout: time.Second}, logger.NewNop())

	err := client.Deliver(context.Background(), testRecord())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate order")
}

func TestClient_Deliver_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(config.WebhookConfig{URL: server.URL, Timeout: 50 * time.Millisecond}, logger.NewNop())

	err := client.Deliver(context.Background(), testRecord())

	assert.Error(t, err)
}

func TestClient_Deliver_UnconfiguredURL(t *testing.T) {
	client := NewClient(config.WebhookConfig{}, logger.NewNop())

	err := client.Deliver(context.Background(), testRecord())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
