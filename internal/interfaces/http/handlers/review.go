package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	reviewService *product.ReviewService
	config        *config.Config
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{
		reviewService: product.NewReviewService(db, cfg),
		config:        cfg,
	}
}

// CreateReview handles POST /products/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req product.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reviewID, err := h.reviewService.Create(userID, &req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusCreated, "Review submitted successfully", gin.H{
		"reviewId": reviewID,
	})
}

// GetReviews handles GET /products/:id/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid product ID",
		})
		return
	}

	var req product.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.reviewService.List(uint(productID), &req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"reviews":     page.Reviews,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"total":       page.Total,
	})
}
