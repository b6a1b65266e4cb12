package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db, cfg),
		config:      cfg,
	}
}

// AddToCart handles POST /cart/add
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req cart.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.cartService.Add(userID, &req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "Item added to cart", gin.H{
		"items":     view.Items,
		"cartTotal": view.CartTotal,
		"itemCount": view.ItemCount,
	})
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	view, err := h.cartService.Get(userID)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"items":     view.Items,
		"cartTotal": view.CartTotal,
		"itemCount": view.ItemCount,
	})
}

// UpdateCartItem handles PUT /cart/update/:itemId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid cart item ID",
		})
		return
	}

	var req cart.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.cartService.UpdateItem(userID, uint(itemID), &req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "Cart item updated", gin.H{
		"items":     view.Items,
		"cartTotal": view.CartTotal,
		"itemCount": view.ItemCount,
	})
}

// RemoveCartItem handles DELETE /cart/remove/:itemId
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid cart item ID",
		})
		return
	}

	view, err := h.cartService.RemoveItem(userID, uint(itemID))
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "Item removed from cart", gin.H{
		"items":     view.Items,
		"cartTotal": view.CartTotal,
		"itemCount": view.ItemCount,
	})
}

// ClearCart handles DELETE /cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	if err := h.cartService.Clear(userID); err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "Cart cleared", nil)
}
