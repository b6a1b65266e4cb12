package product

import (
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// reviewableStatuses are the order statuses that count as a completed purchase
var reviewableStatuses = []string{"confirmed", "shipped", "delivered"}

// ReviewService handles review business logic
type ReviewService struct {
	db     *gorm.DB
	config *config.Config
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, cfg *config.Config) *ReviewService {
	return &ReviewService{
		db:     db,
		config: cfg,
	}
}

// CreateReviewRequest carries a new review submission
type CreateReviewRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Title     string `json:"title" binding:"max=200"`
	Comment   string `json:"comment" binding:"max=1000"`
}

// ListReviewsRequest carries review pagination parameters
type ListReviewsRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// ReviewItem is a review row enriched with the reviewer's name
type ReviewItem struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"userId"`
	Reviewer  string `json:"reviewer"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// ReviewPage is one page of reviews plus pagination metadata
type ReviewPage struct {
	Reviews     []ReviewItem `json:"reviews"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
	Total       int64        `json:"total"`
}

// Create records a review. The reviewer must have a completed order that
// contains the product, and may review each product only once.
func (s *ReviewService) Create(userID uint, req *CreateReviewRequest) (uint, error) {
	var product Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, apperrors.New(apperrors.CodeNotFound, "Product not found")
		}
		return 0, apperrors.FromStore(err, "Failed to load product")
	}

	var purchased int64
	err := s.db.Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", userID).
		Where("order_items.product_id = ?", req.ProductID).
		Where("orders.status IN ?", reviewableStatuses).
		Count(&purchased).Error
	if err != nil {
		return 0, apperrors.FromStore(err, "Failed to verify purchase")
	}
	if purchased == 0 {
		return 0, apperrors.New(apperrors.CodeForbidden, "You can only review products you have purchased")
	}

	var existing int64
	err = s.db.Model(&Review{}).
		Where("user_id = ? AND product_id = ?", userID, req.ProductID).
		Count(&existing).Error
	if err != nil {
		return 0, apperrors.FromStore(err, "Failed to check existing review")
	}
	if existing > 0 {
		return 0, apperrors.New(apperrors.CodeConflict, "You have already reviewed this product")
	}

	review := Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return 0, apperrors.FromStore(err, "Failed to create review")
	}
	return review.ID, nil
}

// List returns a page of a product's reviews, newest first
func (s *ReviewService) List(productID uint, req *ListReviewsRequest) (*ReviewPage, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 10
	}
	if req.Limit > MaxPageSize {
		req.Limit = MaxPageSize
	}

	var product Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.CodeNotFound, "Product not found")
		}
		return nil, apperrors.FromStore(err, "Failed to load product")
	}

	var total int64
	if err := s.db.Model(&Review{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return nil, apperrors.FromStore(err, "Failed to count reviews")
	}

	type reviewRow struct {
		ID        uint
		UserID    uint
		Reviewer  string
		Rating    int
		Title     string
		Comment   string
		CreatedAt string
	}
	var rows []reviewRow
	offset := (req.Page - 1) * req.Limit
	err := s.db.Model(&Review{}).
		Select("reviews.id, reviews.user_id, users.name AS reviewer, reviews.rating, reviews.title, reviews.comment, reviews.created_at").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Limit(req.Limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.FromStore(err, "Failed to list reviews")
	}

	items := make([]ReviewItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ReviewItem{
			ID:        row.ID,
			UserID:    row.UserID,
			Reviewer:  row.Reviewer,
			Rating:    row.Rating,
			Title:     row.Title,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt,
		})
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ReviewPage{
		Reviews:     items,
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		Total:       total,
	}, nil
}
