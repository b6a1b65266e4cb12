package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/user"
)

// Status represents the order lifecycle state
type Status string

// Order statuses
const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// Valid reports whether the status is a known lifecycle state
func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an order in this status may be cancelled
func (s Status) Cancellable() bool {
	return s == StatusPendingPayment
}

// PaymentStatus represents the payment outcome
type PaymentStatus string

// Payment statuses
const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Order represents a placed order
type Order struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	Status            Status    `gorm:"not null;size:32;default:'pending_payment'" json:"status"`
	TotalAmount       int64     `gorm:"not null" json:"total_amount"`
	ShippingAddressID uint      `gorm:"not null" json:"shipping_address_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships
	ShippingAddress user.Address `gorm:"foreignKey:ShippingAddressID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Items           []Item       `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Payments        []Payment    `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Item represents one product line frozen at purchase time
type Item struct {
	ID              uint  `gorm:"primaryKey" json:"id"`
	OrderID         uint  `gorm:"not null;index" json:"order_id"`
	ProductID       uint  `gorm:"not null;index" json:"product_id"`
	Quantity        int   `gorm:"not null;check:quantity > 0" json:"quantity"`
	PriceAtPurchase int64 `gorm:"not null" json:"price_at_purchase"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// Payment represents a recorded payment attempt against an order
type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderID       uint          `gorm:"not null;index" json:"order_id"`
	TransactionID string        `gorm:"uniqueIndex;not null;size:64" json:"transaction_id"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Method        string        `gorm:"not null;size:32" json:"method"`
	Status        PaymentStatus `gorm:"not null;size:16" json:"status"`
	PaidAt        time.Time     `json:"paid_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string   { return "orders" }
func (Item) TableName() string    { return "order_items" }
func (Payment) TableName() string { return "payments" }

// FormatOrderNumber renders an order's public number from its row ID
func FormatOrderNumber(id uint) string {
	return fmt.Sprintf("ORD%06d", id)
}

// ParseOrderNumber extracts the row ID from a public order number
func ParseOrderNumber(number string) (uint, error) {
	trimmed := strings.TrimPrefix(number, "ORD")
	if trimmed == number || trimmed == "" {
		return 0, fmt.Errorf("invalid order number %q", number)
	}
	id, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid order number %q", number)
	}
	return uint(id), nil
}

// OrderNumber is the order's public identifier
func (o *Order) OrderNumber() string {
	return FormatOrderNumber(o.ID)
}
