package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-backend-go/internal/core"
	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (logging, recovery, CORS) are applied to
// the router before this function is called, in main.go.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	catalogService core.CatalogService,
	contentService core.ContentService,
	searchService core.SearchService,
	cartService core.CartService,
	checkoutService core.CheckoutService,
	leadService core.LeadService,
	geocodeService core.GeocodeService,
	accountService core.AccountService,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; authenticated routes cannot be set up")
	}
	authMW := middleware.AuthMiddleware(firebaseAuthClient)

	catalogHandler := NewCatalogHandler(catalogService)
	contentHandler := NewContentHandler(contentService)
	searchHandler := NewSearchHandler(searchService)
	cartHandler := NewCartHandler(cartService)
	checkoutHandler := NewCheckoutHandler(checkoutService)
	leadHandler := NewLeadHandler(leadService)
	geocodeHandler := NewGeocodeHandler(geocodeService)
	accountHandler := NewAccountHandler(accountService)

	apiV1 := router.Group("/api/v1")
	{
		// --- Public catalog and content endpoints ---
		apiV1.GET("/products", catalogHandler.ListProducts)
		apiV1.GET("/products/:productId", catalogHandler.GetProduct)
		apiV1.GET("/products/:productId/related", catalogHandler.GetRelated)
		apiV1.GET("/services", catalogHandler.ListServices)
		apiV1.GET("/services/:serviceId", catalogHandler.GetService)
		apiV1.POST("/services/quote", catalogHandler.QuoteService)
		apiV1.GET("/categories", contentHandler.ListCategories)
		apiV1.GET("/banners", contentHandler.ListBanners)
		apiV1.GET("/blogs", contentHandler.ListBlogs)
		apiV1.GET("/search", searchHandler.Search)

		// --- Public enquiry and location endpoints ---
		apiV1.POST("/leads", leadHandler.CreateLead)
		apiV1.GET("/geocode/reverse", geocodeHandler.Reverse)
		apiV1.GET("/geocode/search", geocodeHandler.SearchPlaces)

		// --- User and profile endpoints ---
		usersGroup := apiV1.Group("/users", authMW)
		{
			usersGroup.POST("/initialize", accountHandler.InitializeProfile)
			usersGroup.GET("/me", accountHandler.GetProfile)
		}

		// --- Address book endpoints ---
		addressGroup := apiV1.Group("/addresses", authMW)
		{
			addressGroup.GET("", accountHandler.ListAddresses)
			addressGroup.POST("", accountHandler.CreateAddress)
			addressGroup.PUT("/:addressId", accountHandler.UpdateAddress)
			addressGroup.DELETE("/:addressId", accountHandler.DeleteAddress)
			addressGroup.PUT("/:addressId/default", accountHandler.SetDefaultAddress)
		}

		// --- Cart endpoints ---
		cartGroup := apiV1.Group("/cart", authMW)
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.DELETE("", cartHandler.ClearCart)
			cartGroup.POST("/items", cartHandler.AddItem)
			cartGroup.PUT("/items", cartHandler.UpdateItem)
			cartGroup.DELETE("/items", cartHandler.RemoveItem)
		}

		// --- Checkout and order endpoints ---
		checkoutGroup := apiV1.Group("/checkout", authMW)
		{
			checkoutGroup.POST("/orders", checkoutHandler.CreateOrder)
			checkoutGroup.POST("/verify", checkoutHandler.VerifyPayment)
		}
		ordersGroup := apiV1.Group("/orders", authMW)
		{
			ordersGroup.GET("", checkoutHandler.ListOrders)
			ordersGroup.GET("/:orderId", checkoutHandler.GetOrder)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured under /api/v1 and /health")
}
