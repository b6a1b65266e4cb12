package order

import (
	"time"

	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ShippingAddress is the address payload captured with every order
type ShippingAddress struct {
	FullName     string `json:"fullName" binding:"required,min=2,max=100"`
	Phone        string `json:"phone" binding:"max=20"`
	AddressLine1 string `json:"addressLine1" binding:"required,max=255"`
	AddressLine2 string `json:"addressLine2" binding:"max=255"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"max=100"`
	ZipCode      string `json:"zipCode" binding:"required,max=20"`
	Country      string `json:"country" binding:"required,max=100"`
}

// CreateRequest carries an order placement submission
type CreateRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof=card upi netbanking cod wallet"`
}

// CreateResult summarizes a freshly placed order
type CreateResult struct {
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	TotalAmount int64  `json:"totalAmount"`
	Status      Status `json:"status"`
}

// ListRequest carries order history pagination parameters
type ListRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// ListItem is one row of the user's order history
type ListItem struct {
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      Status `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
	ItemCount   int64  `json:"itemCount"`
	CreatedAt   string `json:"createdAt"`
}

// ListResult is one page of order history plus pagination metadata
type ListResult struct {
	Orders      []ListItem `json:"orders"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	TotalOrders int64      `json:"totalOrders"`
}

// ItemView is one frozen order line joined with its product name
type ItemView struct {
	ProductID       uint   `json:"productId"`
	ProductName     string `json:"productName"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase int64  `json:"priceAtPurchase"`
	Subtotal        int64  `json:"subtotal"`
}

// Detail is a single order with its lines and shipping address
type Detail struct {
	OrderID         uint            `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	Status          Status          `json:"status"`
	TotalAmount     int64           `json:"totalAmount"`
	Items           []ItemView      `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       string          `json:"createdAt"`
}

// Create places an order from the user's cart. The address insert, order
// insert, item inserts, stock decrements and cart clear commit together or
// not at all.
func (s *Service) Create(userID uint, req *CreateRequest) (*CreateResult, error) {
	var result *CreateResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lines []cart.Item
		err := tx.Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at DESC, id DESC").
			Find(&lines).Error
		if err != nil {
			return apperrors.FromStore(err, "Failed to load cart")
		}
		if len(lines) == 0 {
			return apperrors.New(apperrors.CodeValidation, "Cart is empty")
		}

		var total int64
		for _, line := range lines {
			if line.Quantity > line.Product.Stock {
				return apperrors.Newf(apperrors.CodeConflict, "Insufficient stock for %s", line.Product.Name)
			}
			total += line.Product.Price * int64(line.Quantity)
		}

		address := user.Address{
			UserID:       userID,
			FullName:     req.ShippingAddress.FullName,
			Phone:        req.ShippingAddress.Phone,
			AddressLine1: req.ShippingAddress.AddressLine1,
			AddressLine2: req.ShippingAddress.AddressLine2,
			City:         req.ShippingAddress.City,
			State:        req.ShippingAddress.State,
			ZipCode:      req.ShippingAddress.ZipCode,
			Country:      req.ShippingAddress.Country,
		}
		if err := tx.Create(&address).Error; err != nil {
			return apperrors.FromStore(err, "Failed to save shipping address")
		}

		placed := Order{
			UserID:            userID,
			Status:            StatusPendingPayment,
			TotalAmount:       total,
			ShippingAddressID: address.ID,
		}
		if err := tx.Create(&placed).Error; err != nil {
			return apperrors.FromStore(err, "Failed to create order")
		}

		items := make([]Item, 0, len(lines))
		for _, line := range lines {
			items = append(items, Item{
				OrderID:         placed.ID,
				ProductID:       line.ProductID,
				Quantity:        line.Quantity,
				PriceAtPurchase: line.Product.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return apperrors.FromStore(err, "Failed to create order items")
		}

		for _, line := range lines {
			res := tx.Model(&product.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return apperrors.FromStore(res.Error, "Failed to reserve stock")
			}
			if res.RowsAffected == 0 {
				return apperrors.Newf(apperrors.CodeConflict, "Insufficient stock for %s", line.Product.Name)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&cart.Item{}).Error; err != nil {
			return apperrors.FromStore(err, "Failed to clear cart")
		}

		result = &CreateResult{
			OrderID:     placed.ID,
			OrderNumber: placed.OrderNumber(),
			TotalAmount: total,
			Status:      placed.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List returns a page of the user's orders, newest first
func (s *Service) List(userID uint, req *ListRequest) (*ListResult, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	var total int64
	if err := s.db.Model(&Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.FromStore(err, "Failed to count orders")
	}

	type orderRow struct {
		ID          uint
		Status      Status
		TotalAmount int64
		ItemCount   int64
		CreatedAt   time.Time
	}
	var rows []orderRow
	offset := (req.Page - 1) * req.Limit
	err := s.db.Model(&Order{}).
		Select("orders.id, orders.status, orders.total_amount, orders.created_at, COUNT(order_items.id) AS item_count").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ?", userID).
		Group("orders.id").
		Order("orders.created_at DESC, orders.id DESC").
		Limit(req.Limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.FromStore(err, "Failed to list orders")
	}

	items := make([]ListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ListItem{
			OrderID:     row.ID,
			OrderNumber: FormatOrderNumber(row.ID),
			Status:      row.Status,
			TotalAmount: row.TotalAmount,
			ItemCount:   row.ItemCount,
			CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		})
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResult{
		Orders:      items,
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalOrders: total,
	}, nil
}

// Get returns one of the user's orders with its lines and shipping address
func (s *Service) Get(userID, orderID uint) (*Detail, error) {
	placed, err := s.loadOwned(s.db, userID, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]ItemView, 0, len(placed.Items))
	for _, item := range placed.Items {
		items = append(items, ItemView{
			ProductID:       item.ProductID,
			ProductName:     item.Product.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
			Subtotal:        item.PriceAtPurchase * int64(item.Quantity),
		})
	}
	return &Detail{
		OrderID:     placed.ID,
		OrderNumber: placed.OrderNumber(),
		Status:      placed.Status,
		TotalAmount: placed.TotalAmount,
		Items:       items,
		ShippingAddress: ShippingAddress{
			FullName:     placed.ShippingAddress.FullName,
			Phone:        placed.ShippingAddress.Phone,
			AddressLine1: placed.ShippingAddress.AddressLine1,
			AddressLine2: placed.ShippingAddress.AddressLine2,
			City:         placed.ShippingAddress.City,
			State:        placed.ShippingAddress.State,
			ZipCode:      placed.ShippingAddress.ZipCode,
			Country:      placed.ShippingAddress.Country,
		},
		CreatedAt: placed.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Cancel cancels a pending order and restores each line's quantity back onto
// product stock. Only pending_payment orders may be cancelled.
func (s *Service) Cancel(userID, orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		placed, err := s.loadOwned(tx, userID, orderID)
		if err != nil {
			return err
		}
		if !placed.Status.Cancellable() {
			return apperrors.Newf(apperrors.CodeInvalidState, "Order in status %s cannot be cancelled", placed.Status)
		}

		for _, item := range placed.Items {
			err := tx.Model(&product.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
			if err != nil {
				return apperrors.FromStore(err, "Failed to restore stock")
			}
		}

		if err := tx.Model(placed).Update("status", StatusCancelled).Error; err != nil {
			return apperrors.FromStore(err, "Failed to cancel order")
		}
		return nil
	})
}

// loadOwned fetches an order with items and address, scoped to its owner
func (s *Service) loadOwned(tx *gorm.DB, userID, orderID uint) (*Order, error) {
	var placed Order
	err := tx.Preload("Items").Preload("Items.Product").Preload("ShippingAddress").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&placed).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.CodeNotFound, "Order not found")
		}
		return nil, apperrors.FromStore(err, "Failed to load order")
	}
	return &placed, nil
}
