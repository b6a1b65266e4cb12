package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService *order.PaymentService
	config         *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{
		paymentService: order.NewPaymentService(db, cfg),
		config:         cfg,
	}
}

// ProcessPayment handles POST /orders/payments/process
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req order.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.paymentService.Process(userID, &req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "Payment processed successfully", gin.H{
		"orderId":       result.OrderID,
		"orderNumber":   result.OrderNumber,
		"transactionId": result.TransactionID,
		"amount":        result.Amount,
		"status":        result.Status,
	})
}
