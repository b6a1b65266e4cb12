package order_test

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&user.User{}, &user.Address{},
		&product.Category{}, &product.Seller{}, &product.Product{}, &product.Review{},
		&cart.Item{},
		&order.Order{}, &order.Item{}, &order.Payment{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *product.Product {
	t.Helper()

	var category product.Category
	if err := db.First(&category).Error; err != nil {
		category = product.Category{Name: "Electronics"}
		require.NoError(t, db.Create(&category).Error)
	}
	var seller product.Seller
	if err := db.First(&seller).Error; err != nil {
		seller = product.Seller{BusinessName: "Acme Supplies"}
		require.NoError(t, db.Create(&seller).Error)
	}

	p := product.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Stock:       stock,
		CategoryID:  category.ID,
		SellerID:    seller.ID,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func shippingAddress() order.ShippingAddress {
	return order.ShippingAddress{
		FullName:     "Jane Doe",
		Phone:        "+15550001111",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
		Country:      "USA",
	}
}

func createRequest() *order.CreateRequest {
	return &order.CreateRequest{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   "card",
	}
}

func TestCreateOrderScenario(t *testing.T) {
	db := setupTestDB(t)
	productA := seedProduct(t, db, "Product A", 7999, 5)
	productB := seedProduct(t, db, "Product B", 3499, 1)

	cartSvc := cart.NewService(db, &config.Config{})
	_, err := cartSvc.Add(1, &cart.AddRequest{ProductID: productA.ID, Quantity: 2})
	require.NoError(t, err)
	view, err := cartSvc.Add(1, &cart.AddRequest{ProductID: productB.ID, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, int64(2*7999+3499), view.CartTotal)

	svc := order.NewService(db, &config.Config{})
	result, err := svc.Create(1, createRequest())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD\d{6}$`), result.OrderNumber)
	assert.Equal(t, order.StatusPendingPayment, result.Status)
	assert.Equal(t, int64(2*7999+3499), result.TotalAmount)

	// Stock is decremented per line
	var freshA, freshB product.Product
	require.NoError(t, db.First(&freshA, productA.ID).Error)
	require.NoError(t, db.First(&freshB, productB.ID).Error)
	assert.Equal(t, 3, freshA.Stock)
	assert.Equal(t, 0, freshB.Stock)

	// The cart is emptied
	view, err = cartSvc.Get(1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// A fresh address row was captured for the order
	var addressCount int64
	require.NoError(t, db.Model(&user.Address{}).Count(&addressCount).Error)
	assert.Equal(t, int64(1), addressCount)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := order.NewService(db, &config.Config{})

	_, err := svc.Create(1, createRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Scarce", 7999, 3)

	cartSvc := cart.NewService(db, &config.Config{})
	_, err := cartSvc.Add(1, &cart.AddRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)

	// Stock shrinks after the line was added to the cart
	require.NoError(t, db.Model(p).Update("stock", 2).Error)

	svc := order.NewService(db, &config.Config{})
	_, err = svc.Create(1, createRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
	assert.Contains(t, apperrors.MessageOf(err), "Scarce")

	// Nothing committed: no order, no address, cart intact, stock unchanged
	var orders int64
	require.NoError(t, db.Model(&order.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var addresses int64
	require.NoError(t, db.Model(&user.Address{}).Count(&addresses).Error)
	assert.Zero(t, addresses)

	view, err := cartSvc.Get(1)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	var fresh product.Product
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, 2, fresh.Stock)
}

func TestCreateOrderMergedLineOverStock(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Scarce", 7999, 3)

	// Each add passes the cart check; the merged line exceeds stock and the
	// shortfall surfaces at placement
	cartSvc := cart.NewService(db, &config.Config{})
	_, err := cartSvc.Add(1, &cart.AddRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	view, err := cartSvc.Add(1, &cart.AddRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 4, view.Items[0].Quantity)

	svc := order.NewService(db, &config.Config{})
	_, err = svc.Create(1, createRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))

	view, err = cartSvc.Get(1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)

	var fresh product.Product
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, 3, fresh.Stock)
}

func TestCreateOrderFreezesPriceAtPurchase(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Mouse", 7999, 10)

	cartSvc := cart.NewService(db, &config.Config{})
	_, err := cartSvc.Add(1, &cart.AddRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	svc := order.NewService(db, &config.Config{})
	result, err := svc.Create(1, createRequest())
	require.NoError(t, err)

	// Later price change must not affect the placed order
	require.NoError(t, db.Model(p).Update("price", 9999).Error)

	detail, err := svc.Get(1, result.OrderID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, int64(7999), detail.Items[0].PriceAtPurchase)
	assert.Equal(t, int64(7999), detail.TotalAmount)
}

func TestGetOrderScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Mouse", 7999, 10)

	cartSvc := cart.NewService(db, &config.Config{})
	_, err := cartSvc.Add(1, &cart.AddRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	svc := order.NewService(db, &config.Config{})
	result, err := svc.Create(1, createRequest())
	require.NoError(t, err)

	_, err = svc.Get(2, result.OrderID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	detail, err := svc.Get(1, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", detail.ShippingAddress.FullName)
	assert.Equal(t, "1 Main St", detail.ShippingAddress.AddressLine1)
}

func TestListOrders(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Mouse", 7999, 10)

	cartSvc := cart.NewService(db, &config.Config{})
	svc := order.NewService(db, &config.Config{})

	for i := 0; i < 3; i++ {
		_, err := cartSvc.Add(1, &cart.AddRequest{ProductID: p.ID, Quantity: 1})
		require.NoError(t, err)
		_, err = svc.Create(1, createRequest())
		require.NoError(t, err)
	}

	result, err := svc.List(1, &order.ListRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalOrders)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Orders, 2)
	assert.Equal(t, int64(1), result.Orders[0].ItemCount)
	assert.Regexp(t, regexp.MustCompile(`^ORD\d{6}$`), result.Orders[0].OrderNumber)

	// Another user sees nothing
	other, err := svc.List(2, &order.ListRequest{})
	require.NoError(t, err)
	assert.Zero(t, other.TotalOrders)
}

func TestCancelRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Mouse", 7999, 5)

	cartSvc := cart.NewService(db, &config.Config{})
	_, err := cartSvc.Add(1, &cart.AddRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	svc := order.NewService(db, &config.Config{})
	result, err := svc.Create(1, createRequest())
	require.NoError(t, err)

	var afterOrder product.Product
	require.NoError(t, db.First(&afterOrder, p.ID).Error)
	require.Equal(t, 3, afterOrder.Stock)

	require.NoError(t, svc.Cancel(1, result.OrderID))

	var afterCancel product.Product
	require.NoError(t, db.First(&afterCancel, p.ID).Error)
	assert.Equal(t, 5, afterCancel.Stock)

	detail, err := svc.Get(1, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, detail.Status)
}

func TestCancelConfirmedOrderFails(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Mouse", 7999, 5)

	cartSvc := cart.NewService(db, &config.Config{})
	_, err := cartSvc.Add(1, &cart.AddRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	svc := order.NewService(db, &config.Config{})
	result, err := svc.Create(1, createRequest())
	require.NoError(t, err)

	require.NoError(t, db.Model(&order.Order{}).Where("id = ?", result.OrderID).
		Update("status", order.StatusConfirmed).Error)

	err = svc.Cancel(1, result.OrderID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidState, apperrors.CodeOf(err))

	// Stock unchanged by the failed cancellation
	var fresh product.Product
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.Equal(t, 3, fresh.Stock)
}

func TestOrderNumberRoundTrip(t *testing.T) {
	assert.Equal(t, "ORD000042", order.FormatOrderNumber(42))

	id, err := order.ParseOrderNumber("ORD000042")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = order.ParseOrderNumber("42")
	assert.Error(t, err)
	_, err = order.ParseOrderNumber("ORD")
	assert.Error(t, err)
	_, err = order.ParseOrderNumber("ORDabc")
	assert.Error(t, err)
}
