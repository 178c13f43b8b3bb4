package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giftshop/internal/application/intake"
)

// orderEnvelope is the request body shape: the order sits under an
// "order" key.
type orderEnvelope struct {
	Order intake.SubmitCommand `json:"order" binding:"required"`
}

type OrderHandler struct {
	svc *intake.Service
}

func NewOrderHandler(svc *intake.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// CreateOrder accepts a storefront order. On success the response is
// {"success": true, "orderId": ...}; on failure {"error": ...} so the
// dispatcher on the client side can tell the two apart.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var env orderEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.svc.SubmitOrder(c.Request.Context(), env.Order)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orderId": rec.OrderID,
	})
}

// GetOrder returns a stored order by ID.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	rec, err := h.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": rec})
}
