package product

import (
	"strings"

	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

const (
	// DefaultPageSize is the catalog page size when none is requested
	DefaultPageSize = 20
	// MaxPageSize caps the catalog page size
	MaxPageSize = 100
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest carries catalog filter, sort and pagination parameters
type ListRequest struct {
	Category string `form:"category"`
	MinPrice *int64 `form:"minPrice"`
	MaxPrice *int64 `form:"maxPrice"`
	Search   string `form:"search"`
	SortBy   string `form:"sortBy"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// ListItem is a catalog row enriched with joined and aggregated fields
type ListItem struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        int64    `json:"price"`
	Stock        int      `json:"stock"`
	CategoryName string   `json:"category"`
	SellerName   string   `json:"seller"`
	Images       []string `json:"images"`
	AvgRating    float64  `json:"avgRating"`
	ReviewCount  int64    `json:"reviewCount"`
}

// listRow is the raw scan target for the catalog query
type listRow struct {
	ID           uint
	Name         string
	Description  string
	Price        int64
	Stock        int
	CategoryName string
	SellerName   string
	Images       string
	AvgRating    *float64
	ReviewCount  int64
}

// ListResult is a catalog page plus pagination metadata
type ListResult struct {
	Products      []ListItem `json:"products"`
	CurrentPage   int        `json:"currentPage"`
	TotalPages    int        `json:"totalPages"`
	TotalProducts int64      `json:"totalProducts"`
}

// Detail is a single product enriched with joined and aggregated fields
type Detail struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Price        int64             `json:"price"`
	Stock        int               `json:"stock"`
	CategoryName string            `json:"category"`
	SellerName   string            `json:"seller"`
	Images       []string          `json:"images"`
	Variations   map[string]string `json:"variations"`
	AvgRating    float64           `json:"avgRating"`
	ReviewCount  int64             `json:"reviewCount"`
}

// List returns a filtered, sorted page of the catalog
func (s *Service) List(req *ListRequest) (*ListResult, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = DefaultPageSize
	}
	if req.Limit > MaxPageSize {
		req.Limit = MaxPageSize
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, apperrors.New(apperrors.CodeValidation, "minPrice cannot exceed maxPrice")
	}

	base := s.db.Model(&Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN sellers ON sellers.id = products.seller_id")
	base = applyFilters(base, req)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("products.id").Count(&total).Error; err != nil {
		return nil, apperrors.FromStore(err, "Failed to count products")
	}

	query := base.Session(&gorm.Session{}).
		Select("products.id, products.name, products.description, products.price, products.stock, products.images, " +
			"categories.name AS category_name, sellers.business_name AS seller_name, " +
			"COALESCE(AVG(reviews.rating), 0) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.product_id = products.id").
		Group("products.id")
	query = applySort(query, req.SortBy)

	var rows []listRow
	offset := (req.Page - 1) * req.Limit
	if err := query.Limit(req.Limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, apperrors.FromStore(err, "Failed to list products")
	}

	items := make([]ListItem, 0, len(rows))
	for _, row := range rows {
		avg := 0.0
		if row.AvgRating != nil {
			avg = *row.AvgRating
		}
		items = append(items, ListItem{
			ID:           row.ID,
			Name:         row.Name,
			Description:  row.Description,
			Price:        row.Price,
			Stock:        row.Stock,
			CategoryName: row.CategoryName,
			SellerName:   row.SellerName,
			Images:       SplitImages(row.Images),
			AvgRating:    avg,
			ReviewCount:  row.ReviewCount,
		})
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResult{
		Products:      items,
		CurrentPage:   req.Page,
		TotalPages:    totalPages,
		TotalProducts: total,
	}, nil
}

// applyFilters narrows the catalog query by the requested filters
func applyFilters(query *gorm.DB, req *ListRequest) *gorm.DB {
	if req.Category != "" {
		query = query.Where("categories.name = ?", req.Category)
	}
	if req.MinPrice != nil {
		query = query.Where("products.price >= ?", *req.MinPrice)
	}
	if req.MaxPrice != nil {
		query = query.Where("products.price <= ?", *req.MaxPrice)
	}
	if search := strings.TrimSpace(req.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", pattern, pattern)
	}
	return query
}

// applySort orders the catalog query. Unknown sort keys fall back to newest.
func applySort(query *gorm.DB, sortBy string) *gorm.DB {
	switch sortBy {
	case "price_asc":
		return query.Order("products.price ASC, products.id ASC")
	case "price_desc":
		return query.Order("products.price DESC, products.id ASC")
	case "rating":
		return query.Order("avg_rating DESC, products.id ASC")
	default:
		return query.Order("products.created_at DESC, products.id DESC")
	}
}

// Get returns a single product with its aggregates
func (s *Service) Get(productID uint) (*Detail, error) {
	var product Product
	if err := s.db.Preload("Category").Preload("Seller").First(&product, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.CodeNotFound, "Product not found")
		}
		return nil, apperrors.FromStore(err, "Failed to load product")
	}

	var agg struct {
		AvgRating   *float64
		ReviewCount int64
	}
	err := s.db.Model(&Review{}).
		Select("AVG(rating) AS avg_rating, COUNT(id) AS review_count").
		Where("product_id = ?", product.ID).
		Scan(&agg).Error
	if err != nil {
		return nil, apperrors.FromStore(err, "Failed to load product ratings")
	}

	avg := 0.0
	if agg.AvgRating != nil {
		avg = *agg.AvgRating
	}
	return &Detail{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		Stock:        product.Stock,
		CategoryName: product.Category.Name,
		SellerName:   product.Seller.BusinessName,
		Images:       product.ImageList(),
		Variations:   product.VariationMap(),
		AvgRating:    avg,
		ReviewCount:  agg.ReviewCount,
	}, nil
}

// GetCategories returns every category ordered by name
func (s *Service) GetCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.FromStore(err, "Failed to list categories")
	}
	return categories, nil
}
