package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// SetupRoutes mounts every API route on the given group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupProductRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, cfg)
	SetupOrderRoutes(rg, db, cfg)
}

// SetupAuthRoutes sets up authentication and account routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.POST("/addresses", authHandler.AddAddress)
			protected.GET("/addresses", authHandler.GetAddresses)
		}
	}
}

// SetupProductRoutes sets up catalog and review routes
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)

	products := rg.Group("/products")
	{
		// Public catalog endpoints
		products.GET("", productHandler.GetProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.GetReviews)

		// Review creation requires authentication
		protected := products.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/reviews", reviewHandler.CreateReview)
		}
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.POST("/add", cartHandler.AddToCart)
		cart.GET("", cartHandler.GetCart)
		cart.PUT("/update/:itemId", cartHandler.UpdateCartItem)
		cart.DELETE("/remove/:itemId", cartHandler.RemoveCartItem)
		cart.DELETE("/clear", cartHandler.ClearCart)
	}
}

// SetupOrderRoutes sets up order and payment routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)
	paymentHandler := handlers.NewPaymentHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("/create", orderHandler.CreateOrder)
		orders.GET("", orderHandler.GetOrders)
		orders.POST("/payments/process", paymentHandler.ProcessPayment)
		orders.GET("/:orderId", orderHandler.GetOrder)
		orders.PUT("/:orderId/cancel", orderHandler.CancelOrder)
	}
}
