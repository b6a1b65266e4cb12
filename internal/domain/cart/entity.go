package cart

import (
	"time"

	"github.com/your-org/storefront-api/internal/domain/product"
)

// Item represents one product line in a user's cart
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName overrides the table name
func (Item) TableName() string {
	return "cart_items"
}

// Subtotal is the line total at the product's current price
func (i *Item) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}
