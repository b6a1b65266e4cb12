package sqlite

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/user"
)

// Migration handles database migrations and seed data
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Info("Running database auto-migrations...")

	// Dependency order: referenced tables first
	models := []interface{}{
		&user.User{},
		&user.Address{},

		&product.Category{},
		&product.Seller{},
		&product.Product{},
		&product.Review{},

		&cart.Item{},

		&order.Order{},
		&order.Item{},
		&order.Payment{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_price ON products(category_id, price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews(product_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_created_at ON cart_items(created_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.WithError(err).Warn("Failed to create index")
		}
	}
	return nil
}

// SeedInitialData inserts idempotent seed data for development
func (m *Migration) SeedInitialData() error {
	log.Info("Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := m.seedSellers(); err != nil {
		return fmt.Errorf("failed to seed sellers: %w", err)
	}
	if err := m.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Info("Initial data seeded")
	return nil
}

func (m *Migration) seedCategories() error {
	categories := []product.Category{
		{Name: "Electronics", Description: "Electronic devices, gadgets, and accessories"},
		{Name: "Clothing", Description: "Fashion, apparel, and accessories"},
		{Name: "Books", Description: "Books, eBooks, and educational materials"},
		{Name: "Home & Garden", Description: "Home improvement, furniture, and garden supplies"},
		{Name: "Sports & Outdoors", Description: "Sports equipment, outdoor gear, and fitness products"},
	}

	for _, category := range categories {
		var existing product.Category
		err := m.db.Where("name = ?", category.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			log.WithField("category", category.Name).Debug("Created category")
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (m *Migration) seedSellers() error {
	sellers := []product.Seller{
		{BusinessName: "Acme Supplies"},
		{BusinessName: "Northwind Traders"},
	}

	for _, seller := range sellers {
		var existing product.Seller
		err := m.db.Where("business_name = ?", seller.BusinessName).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := m.db.Create(&seller).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (m *Migration) seedUsers() error {
	seeds := []struct {
		name     string
		email    string
		password string
		role     user.Role
	}{
		{"Admin User", "admin@example.com", "admin123", user.RoleAdmin},
		{"Test Customer", "customer@example.com", "test123", user.RoleCustomer},
	}

	for _, seed := range seeds {
		var existing user.User
		err := m.db.Where("email = ?", seed.email).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		seeded := user.User{
			Name:     seed.name,
			Email:    seed.email,
			Password: string(hashed),
			Role:     seed.role,
		}
		if err := m.db.Create(&seeded).Error; err != nil {
			return err
		}
		log.WithField("email", seed.email).Info("Created seed user")
	}
	return nil
}

func (m *Migration) seedProducts() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var electronics product.Category
	if err := m.db.Where("name = ?", "Electronics").First(&electronics).Error; err != nil {
		return err
	}
	var books product.Category
	if err := m.db.Where("name = ?", "Books").First(&books).Error; err != nil {
		return err
	}
	var seller product.Seller
	if err := m.db.First(&seller).Error; err != nil {
		return err
	}

	products := []product.Product{
		{
			Name:        "Wireless Gaming Mouse",
			Description: "Ergonomic wireless mouse with a high-precision sensor and customizable buttons.",
			Price:       7999,
			Stock:       50,
			CategoryID:  electronics.ID,
			SellerID:    seller.ID,
			Images:      "https://cdn.example.com/products/mouse-front.jpg,https://cdn.example.com/products/mouse-side.jpg",
			Variations:  `{"color":"black"}`,
		},
		{
			Name:        "Bluetooth Headphones",
			Description: "Over-ear wireless headphones with active noise cancellation and long battery life.",
			Price:       15999,
			Stock:       30,
			CategoryID:  electronics.ID,
			SellerID:    seller.ID,
			Images:      "https://cdn.example.com/products/headphones.jpg",
			Variations:  `{"color":"silver"}`,
		},
		{
			Name:        "The Go Programming Language",
			Description: "The authoritative resource for writing clear and idiomatic Go.",
			Price:       3499,
			Stock:       100,
			CategoryID:  books.ID,
			SellerID:    seller.ID,
			Images:      "https://cdn.example.com/products/gopl.jpg",
		},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return err
	}
	log.WithField("count", len(products)).Info("Created seed products")
	return nil
}
