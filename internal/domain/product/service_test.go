package product_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/your-org/storefront-api/internal/config"
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
	))
	return db
}

type fixture struct {
	db          *gorm.DB
	electronics product.Category
	books       product.Category
	seller      product.Seller
	mouse       product.Product
	headphones  product.Product
	novel       product.Product
}

func seedCatalog(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	f := &fixture{db: db}
	f.electronics = product.Category{Name: "Electronics"}
	f.books = product.Category{Name: "Books"}
	require.NoError(t, db.Create(&f.electronics).Error)
	require.NoError(t, db.Create(&f.books).Error)

	f.seller = product.Seller{BusinessName: "Acme Supplies"}
	require.NoError(t, db.Create(&f.seller).Error)

	f.mouse = product.Product{
		Name:        "Wireless Mouse",
		Description: "A precise wireless mouse",
		Price:       7999,
		Stock:       10,
		CategoryID:  f.electronics.ID,
		SellerID:    f.seller.ID,
		Images:      "https://cdn.example.com/mouse-1.jpg,https://cdn.example.com/mouse-2.jpg",
	}
	f.headphones = product.Product{
		Name:        "Bluetooth Headphones",
		Description: "Noise cancelling headphones",
		Price:       15999,
		Stock:       5,
		CategoryID:  f.electronics.ID,
		SellerID:    f.seller.ID,
	}
	f.novel = product.Product{
		Name:        "A Great Novel",
		Description: "Fiction about a wireless future",
		Price:       1999,
		Stock:       100,
		CategoryID:  f.books.ID,
		SellerID:    f.seller.ID,
	}
	require.NoError(t, db.Create(&f.mouse).Error)
	require.NoError(t, db.Create(&f.headphones).Error)
	require.NoError(t, db.Create(&f.novel).Error)
	return f
}

func seedReview(t *testing.T, db *gorm.DB, productID, userID uint, rating int) {
	t.Helper()
	require.NoError(t, db.Create(&product.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Title:     "review",
	}).Error)
}

func TestListAll(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := product.NewService(db, &config.Config{})

	result, err := svc.List(&product.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalProducts)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 1, result.TotalPages)
	assert.Len(t, result.Products, 3)
}

func TestListCategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := product.NewService(db, &config.Config{})

	result, err := svc.List(&product.ListRequest{Category: "Books"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalProducts)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "A Great Novel", result.Products[0].Name)
	assert.Equal(t, "Books", result.Products[0].CategoryName)
	assert.Equal(t, "Acme Supplies", result.Products[0].SellerName)
}

func TestListPriceRangeInclusive(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := product.NewService(db, &config.Config{})

	minP := int64(1999)
	maxP := int64(7999)
	result, err := svc.List(&product.ListRequest{MinPrice: &minP, MaxPrice: &maxP})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalProducts)

	bad := int64(100)
	_, err = svc.List(&product.ListRequest{MinPrice: &maxP, MaxPrice: &bad})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestListSearchMatchesNameAndDescription(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := product.NewService(db, &config.Config{})

	// "wireless" appears in the mouse name and the novel description
	result, err := svc.List(&product.ListRequest{Search: "wireless"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalProducts)
}

func TestListSortOrders(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := product.NewService(db, &config.Config{})

	asc, err := svc.List(&product.ListRequest{SortBy: "price_asc"})
	require.NoError(t, err)
	require.Len(t, asc.Products, 3)
	assert.Equal(t, f.novel.ID, asc.Products[0].ID)
	assert.Equal(t, f.headphones.ID, asc.Products[2].ID)

	desc, err := svc.List(&product.ListRequest{SortBy: "price_desc"})
	require.NoError(t, err)
	assert.Equal(t, f.headphones.ID, desc.Products[0].ID)

	seedReview(t, db, f.novel.ID, 1, 5)
	seedReview(t, db, f.mouse.ID, 1, 3)

	rated, err := svc.List(&product.ListRequest{SortBy: "rating"})
	require.NoError(t, err)
	assert.Equal(t, f.novel.ID, rated.Products[0].ID)
	assert.InDelta(t, 5.0, rated.Products[0].AvgRating, 0.001)
	assert.Equal(t, int64(1), rated.Products[0].ReviewCount)
}

func TestListPagination(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := product.NewService(db, &config.Config{})

	page1, err := svc.List(&product.ListRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1.Products, 2)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, int64(3), page1.TotalProducts)

	page2, err := svc.List(&product.ListRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Products, 1)
	assert.Equal(t, 2, page2.CurrentPage)
}

func TestListAggregatesAverageRating(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := product.NewService(db, &config.Config{})

	seedReview(t, db, f.mouse.ID, 1, 4)
	seedReview(t, db, f.mouse.ID, 2, 2)

	result, err := svc.List(&product.ListRequest{Category: "Electronics", SortBy: "price_asc"})
	require.NoError(t, err)
	require.Len(t, result.Products, 2)

	assert.Equal(t, f.mouse.ID, result.Products[0].ID)
	assert.InDelta(t, 3.0, result.Products[0].AvgRating, 0.001)
	assert.Equal(t, int64(2), result.Products[0].ReviewCount)
	assert.Equal(t, int64(0), result.Products[1].ReviewCount)
}

func TestGetProduct(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := product.NewService(db, &config.Config{})

	detail, err := svc.Get(f.mouse.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", detail.Name)
	assert.Equal(t, "Electronics", detail.CategoryName)
	assert.Equal(t, "Acme Supplies", detail.SellerName)
	assert.Equal(t, []string{
		"https://cdn.example.com/mouse-1.jpg",
		"https://cdn.example.com/mouse-2.jpg",
	}, detail.Images)

	_, err = svc.Get(999)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestGetCategoriesOrdered(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := product.NewService(db, &config.Config{})

	categories, err := svc.GetCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Books", categories[0].Name)
	assert.Equal(t, "Electronics", categories[1].Name)
}

func TestImageHelpers(t *testing.T) {
	p := product.Product{Images: " a.jpg , b.jpg,,c.jpg "}
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, p.ImageList())

	empty := product.Product{}
	assert.Empty(t, empty.ImageList())

	assert.Equal(t, "a.jpg,b.jpg", product.JoinImages([]string{"a.jpg", "b.jpg"}))
}

func TestVariationMap(t *testing.T) {
	p := product.Product{Variations: `{"color":"black","size":"M"}`}
	assert.Equal(t, map[string]string{"color": "black", "size": "M"}, p.VariationMap())

	broken := product.Product{Variations: "{not json"}
	assert.Empty(t, broken.VariationMap())
}
