package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"giftshop/internal/application/intake"
	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrder(ctx context.Context, payload []byte) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type stubEncoder struct{}

func (stubEncoder) EncodeOrder(rec *order.Record) ([]byte, error) {
	return []byte(rec.OrderID), nil
}

func newTestRouter(publisher intake.Publisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := intake.NewService(nil, nil, publisher, stubEncoder{}, logger.NewNop())
	h := NewOrderHandler(svc)

	r := gin.New()
	r.POST("/api/orders", h.CreateOrder)
	return r
}

func postOrder(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrder_Success(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishOrder", mock.Anything, mock.Anything).Return(nil)

	r := newTestRouter(publisher)

	body := `{"order": {
		"orderId": "EG-2026-ABCDEF",
		"customerName": "Ahmed Ali",
		"phone": "0501234567",
		"address": "Dubai, Al Barsha",
		"items": [{"id": "watch_1", "title": "Rolex Classic", "quantity": 2, "unitPrice": 325}],
		"total": 650
	}}`

	res := postOrder(t, r, body)

	require.Equal(t, http.StatusOK, res.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "EG-2026-ABCDEF", got["orderId"])
	publisher.AssertExpectations(t)
}

func TestCreateOrder_MissingEnvelope(t *testing.T) {
	r := newTestRouter(new(MockPublisher))

	res := postOrder(t, r, `{"orderId": "EG-2026-ABCDEF"}`)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "error")
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	r := newTestRouter(new(MockPublisher))

	res := postOrder(t, r, `{"order": {"customerName": "Ahmed Ali", "items": []}}`)

	require.Equal(t, http.StatusBadRequest, res.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
	assert.NotEmpty(t, got["error"])
	assert.Nil(t, got["success"])
}

func TestCreateOrder_MalformedJSON(t *testing.T) {
	r := newTestRouter(new(MockPublisher))

	res := postOrder(t, r, `{"order": `)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}
