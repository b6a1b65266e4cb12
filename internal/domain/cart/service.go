package cart

import (
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// Service handles shopping cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddRequest carries an add-to-cart submission
type AddRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateRequest carries a cart line quantity change
type UpdateRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// LineView is one cart line joined with its product
type LineView struct {
	ItemID      uint   `json:"itemId"`
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
	Stock       int    `json:"stock"`
	Image       string `json:"image"`
}

// View is the full cart with its running total
type View struct {
	Items     []LineView `json:"items"`
	CartTotal int64      `json:"cartTotal"`
	ItemCount int        `json:"itemCount"`
}

// Add puts a product in the cart, merging with an existing line for the same
// product. Only the requested quantity is checked against stock; the merged
// line may exceed it, and order placement re-validates every line.
func (s *Service) Add(userID uint, req *AddRequest) (*View, error) {
	var prod product.Product
	if err := s.db.First(&prod, req.ProductID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.CodeNotFound, "Product not found")
		}
		return nil, apperrors.FromStore(err, "Failed to load product")
	}
	if req.Quantity > prod.Stock {
		return nil, apperrors.Newf(apperrors.CodeConflict, "Insufficient stock for %s", prod.Name)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item Item
		err := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			item = Item{
				UserID:    userID,
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return apperrors.FromStore(err, "Failed to add to cart")
			}
			return nil
		case err != nil:
			return apperrors.FromStore(err, "Failed to load cart")
		}

		merged := item.Quantity + req.Quantity
		if err := tx.Model(&item).Update("quantity", merged).Error; err != nil {
			return apperrors.FromStore(err, "Failed to update cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// Get returns the user's cart with product details, newest lines first
func (s *Service) Get(userID uint) (*View, error) {
	var items []Item
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.FromStore(err, "Failed to load cart")
	}

	view := &View{
		Items:     make([]LineView, 0, len(items)),
		ItemCount: len(items),
	}
	for _, item := range items {
		image := ""
		if urls := item.Product.ImageList(); len(urls) > 0 {
			image = urls[0]
		}
		line := LineView{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Price:       item.Product.Price,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal(),
			Stock:       item.Product.Stock,
			Image:       image,
		}
		view.CartTotal += line.Subtotal
		view.Items = append(view.Items, line)
	}
	return view, nil
}

// UpdateItem changes a cart line's quantity. The line must belong to the
// user, and the new quantity must not exceed available stock.
func (s *Service) UpdateItem(userID, itemID uint, req *UpdateRequest) (*View, error) {
	var item Item
	err := s.db.Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.CodeNotFound, "Cart item not found")
		}
		return nil, apperrors.FromStore(err, "Failed to load cart item")
	}

	if req.Quantity > item.Product.Stock {
		return nil, apperrors.Newf(apperrors.CodeConflict, "Insufficient stock for %s", item.Product.Name)
	}
	if err := s.db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, apperrors.FromStore(err, "Failed to update cart item")
	}
	return s.Get(userID)
}

// RemoveItem deletes a cart line owned by the user
func (s *Service) RemoveItem(userID, itemID uint) (*View, error) {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&Item{})
	if result.Error != nil {
		return nil, apperrors.FromStore(result.Error, "Failed to remove cart item")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "Cart item not found")
	}
	return s.Get(userID)
}

// Clear removes every line from the user's cart. Clearing an empty cart
// succeeds.
func (s *Service) Clear(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&Item{}).Error; err != nil {
		return apperrors.FromStore(err, "Failed to clear cart")
	}
	return nil
}
