package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/product"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req product.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.productService.List(&req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"products":      result.Products,
		"currentPage":   result.CurrentPage,
		"totalPages":    result.TotalPages,
		"totalProducts": result.TotalProducts,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid product ID",
		})
		return
	}

	detail, err := h.productService.Get(uint(productID))
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"product": detail,
	})
}

// GetCategories handles GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.GetCategories()
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"categories": categories,
	})
}
