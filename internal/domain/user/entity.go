package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known variants
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants administrative access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanSell reports whether the role may list products for sale
func (r Role) CanSell() bool {
	return r == RoleSeller || r == RoleAdmin
}

// User represents the user entity
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password  string    `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	Phone     string    `gorm:"size:20" json:"phone"`
	Role      Role      `gorm:"not null;size:20;default:'customer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addresses,omitempty"`
}

// Address represents a shipping address owned by a user. Order placement
// always creates a fresh row, so rows are never shared between orders.
type Address struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	FullName     string    `gorm:"not null;size:100" json:"full_name"`
	Phone        string    `gorm:"not null;size:20" json:"phone"`
	AddressLine1 string    `gorm:"not null;size:255" json:"address_line1"`
	AddressLine2 string    `gorm:"size:255" json:"address_line2"`
	City         string    `gorm:"not null;size:100" json:"city"`
	State        string    `gorm:"not null;size:100" json:"state"`
	ZipCode      string    `gorm:"not null;size:20" json:"zip_code"`
	Country      string    `gorm:"not null;size:100" json:"country"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Address
func (Address) TableName() string {
	return "addresses"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
