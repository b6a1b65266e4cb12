package product

import (
	"encoding/json"
	"strings"
	"time"
)

// Product represents the product entity
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null;check:price >= 0" json:"price"` // Price in cents
	Stock       int       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	SellerID    uint      `gorm:"not null;index" json:"seller_id"`
	Images      string    `gorm:"type:text" json:"-"` // Comma-separated ordered URLs
	Variations  string    `gorm:"type:text" json:"-"` // JSON object of option name -> value
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Seller   Seller   `gorm:"foreignKey:SellerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Reviews  []Review `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Category represents a product category
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Seller represents a merchant selling through the storefront
type Seller struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       *uint     `gorm:"index" json:"user_id,omitempty"`
	BusinessName string    `gorm:"not null;size:255" json:"business_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Review represents a customer review of a purchased product
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index;uniqueIndex:idx_reviews_user_product" json:"product_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_reviews_user_product" json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title     string    `gorm:"size:200" json:"title"`
	Comment   string    `gorm:"size:1000" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }
func (Seller) TableName() string   { return "sellers" }
func (Review) TableName() string   { return "reviews" }

// ImageList splits the stored image column into its ordered URL list
func (p *Product) ImageList() []string {
	return SplitImages(p.Images)
}

// VariationMap decodes the stored variations column. Malformed or empty data
// yields an empty map.
func (p *Product) VariationMap() map[string]string {
	variations := map[string]string{}
	if p.Variations == "" {
		return variations
	}
	if err := json.Unmarshal([]byte(p.Variations), &variations); err != nil {
		return map[string]string{}
	}
	return variations
}

// SplitImages splits a comma-separated image column into an ordered URL list
func SplitImages(images string) []string {
	if images == "" {
		return []string{}
	}
	parts := strings.Split(images, ",")
	urls := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

// JoinImages encodes an ordered URL list into the stored column format
func JoinImages(urls []string) string {
	return strings.Join(urls, ",")
}
