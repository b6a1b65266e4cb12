package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService: order.NewService(db, cfg),
		config:       cfg,
	}
}

// CreateOrder handles POST /orders/create
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req order.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.orderService.Create(userID, &req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusCreated, "Order placed successfully", gin.H{
		"orderId":     result.OrderID,
		"orderNumber": result.OrderNumber,
		"totalAmount": result.TotalAmount,
		"status":      result.Status,
	})
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.orderService.List(userID, &req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"orders":      result.Orders,
		"currentPage": result.CurrentPage,
		"totalPages":  result.TotalPages,
		"totalOrders": result.TotalOrders,
	})
}

// GetOrder handles GET /orders/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid order ID",
		})
		return
	}

	detail, err := h.orderService.Get(userID, uint(orderID))
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"order": detail,
	})
}

// CancelOrder handles PUT /orders/:orderId/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid order ID",
		})
		return
	}

	if err := h.orderService.Cancel(userID, uint(orderID)); err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "Order cancelled successfully", nil)
}
