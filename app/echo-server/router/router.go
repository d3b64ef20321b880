package router

import (
	"myFoodMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

// Route registration. Guards are passed in explicitly so the wiring is
// visible in main and testable with fakes.

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.GET("/email-verification/:code", handler.VerifyEmail)

	users.GET("/profile", handler.GetProfile, authRequired)
	users.PUT("/profile", handler.UpdateProfile, authRequired)
	users.PUT("/change-password", handler.ChangePassword, authRequired)
	users.DELETE("/account", handler.DeleteAccount, authRequired)
	users.PUT("/membership", handler.UpdateMembership, authRequired)
	users.GET("/points", handler.GetPoints, authRequired)
	users.POST("/points", handler.AddPoints, authRequired)
}

func SetupStoreRoutes(api *echo.Group, handler *rest.StoreHandler, authRequired echo.MiddlewareFunc) {
	stores := api.Group("/stores")

	stores.GET("", handler.GetAllStores)
	stores.POST("/search", handler.SearchStores)
	stores.GET("/search", handler.SearchStores)
	stores.GET("/featured", handler.GetFeaturedStores)
	stores.GET("/nearby", handler.GetNearbyStores)
	stores.GET("/open", handler.GetOpenStores)
	stores.GET("/category/:category", handler.GetStoresByCategory)
	stores.GET("/:id", handler.GetStore)
	stores.GET("/:id/products", handler.GetStoreProducts)

	stores.POST("", handler.CreateStore, authRequired)
	stores.PUT("/:id", handler.UpdateStore, authRequired)
	stores.DELETE("/:id", handler.DeleteStore, authRequired)
	stores.POST("/:id/rate", handler.RateStore, authRequired)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.POST("/search", handler.SearchProducts)
	products.GET("/search", handler.SearchProducts)
	products.POST("/filter", handler.FilterProducts)
	products.GET("/featured", handler.GetFeaturedProducts)
	products.GET("/deals", handler.GetDeals)
	products.GET("/trending", handler.GetTrendingProducts)
	products.GET("/healthy", handler.GetHealthyProducts)
	products.GET("/quick", handler.GetQuickProducts)
	products.GET("/category/:category", handler.GetProductsByCategory)
	products.GET("/:id", handler.GetProduct)

	products.POST("", handler.CreateProduct, authRequired)
	products.PUT("/:id", handler.UpdateProduct, authRequired)
	products.DELETE("/:id", handler.DeleteProduct, authRequired)
	products.POST("/:id/rate", handler.RateProduct, authRequired)
}

func SetupEventRoutes(api *echo.Group, handler *rest.EventHandler, authRequired echo.MiddlewareFunc) {
	events := api.Group("/events")

	events.GET("", handler.GetAllEvents)
	events.POST("/search", handler.SearchEvents)
	events.GET("/search", handler.SearchEvents)
	events.GET("/featured", handler.GetFeaturedEvents)
	events.GET("/upcoming", handler.GetUpcomingEvents)
	events.GET("/category/:category", handler.GetEventsByCategory)
	events.GET("/:id", handler.GetEvent)

	events.POST("", handler.CreateEvent, authRequired)
	events.PUT("/:id", handler.UpdateEvent, authRequired)
	events.DELETE("/:id", handler.DeleteEvent, authRequired)
	events.POST("/:id/purchase", handler.PurchaseTickets, authRequired)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, authRequired, platinumOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, platinumOnly)

	admin.POST("/seed", handler.Seed)
	admin.POST("/seed/clear", handler.ClearAndSeed)
	admin.GET("/stats", handler.Stats)
	admin.POST("/backup", handler.Backup)
}
