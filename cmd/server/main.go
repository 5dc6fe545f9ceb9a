package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"plazoo-system/config"
	"plazoo-system/internal/database"
	"plazoo-system/internal/gateway/middleware"
	adminhandler "plazoo-system/internal/services/admin/handler"
	cataloghandler "plazoo-system/internal/services/catalog/handler"
	checkouthandler "plazoo-system/internal/services/checkout/handler"
	storehandler "plazoo-system/internal/services/store/handler"
	userhandler "plazoo-system/internal/services/user/handler"
	"plazoo-system/internal/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitJWT(cfg.Auth.JWTSecret)

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.SeedRoles(db); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	redisClient := config.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	userHandler := userhandler.NewUserHandler(db, redisClient, time.Duration(cfg.Auth.TokenTTL)*time.Hour)
	storeHandler := storehandler.NewStoreHandler(db, redisClient)
	catalogHandler := cataloghandler.NewCatalogHandler(db, redisClient)
	checkoutHandler := checkouthandler.NewCheckoutHandler(db, redisClient)
	adminHandler := adminhandler.NewAdminHandler(db, redisClient)

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit())

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		storefront := public.Group("/storefront")
		{
			storefront.GET("/:slug", storeHandler.Storefront)
			storefront.GET("/:slug/products", catalogHandler.StorefrontProducts)
		}

		carts := public.Group("/carts")
		{
			carts.POST("", checkoutHandler.CreateCart)
			carts.GET("/:id", checkoutHandler.GetCart)
			carts.POST("/:id/items", checkoutHandler.AddItem)
			carts.DELETE("/:id/items/:itemID", checkoutHandler.RemoveItem)
			carts.PUT("/:id/items/:itemID/discount", checkoutHandler.ApplyLineDiscount)
			carts.PUT("/:id/discount", checkoutHandler.ApplyOrderDiscount)
		}

		public.POST("/checkout", checkoutHandler.Checkout)
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		stores := protected.Group("/stores")
		{
			stores.POST("", storeHandler.CreateStore)
			stores.GET("", storeHandler.ListStores)
			stores.GET("/context", storeHandler.GetContext)
			stores.PUT("/context", storeHandler.SetContext)
			stores.GET("/:id", storeHandler.GetStore)
			stores.PUT("/:id", storeHandler.UpdateStore)
			stores.GET("/:id/orders", checkoutHandler.ListOrders)
			stores.GET("/:id/orders/:orderID", checkoutHandler.GetOrder)

			products := stores.Group("/:id/products")
			{
				products.POST("", catalogHandler.CreateProduct)
				products.GET("", catalogHandler.ListProducts)
				products.PUT("/:productID", catalogHandler.UpdateProduct)
				products.DELETE("/:productID", catalogHandler.DeleteProduct)
				products.PUT("/:productID/axes", catalogHandler.ReplaceAxes)
				products.PUT("/:productID/combinations", catalogHandler.UpdateCombination)
				products.POST("/:productID/sizes", catalogHandler.AddSize)
				products.POST("/:productID/add-ons", catalogHandler.AddAddOn)
			}
		}

		admin := protected.Group("/admin/users")
		{
			admin.GET("", adminHandler.ListUsers)
			admin.POST("", adminHandler.CreateUser)
			admin.DELETE("/:id", adminHandler.DeleteUser)
			admin.POST("/:id/toggle-ban", adminHandler.ToggleBan)
			admin.POST("/:id/reset-password", adminHandler.ResetPassword)
			admin.POST("/:id/set-role", adminHandler.SetRole)
		}
	}

	r.GET("/health", healthCheckHandler(db, redisClient))
	r.GET("/health/detailed", detailedHealthCheckHandler(db, redisClient))

	port := ":" + cfg.Server.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheckHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	}
}

func detailedHealthCheckHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		services := map[string]interface{}{
			"postgres": checkServiceHealth(pingDB(ctx, db)),
			"redis":    checkServiceHealth(redisClient.Ping(ctx).Err() == nil),
		}

		overallStatus := "healthy"
		httpStatus := http.StatusOK
		for _, service := range services {
			if serviceMap, ok := service.(map[string]interface{}); ok {
				if serviceMap["status"] != "healthy" {
					overallStatus = "degraded"
					httpStatus = http.StatusPartialContent
				}
			}
		}

		c.JSON(httpStatus, gin.H{
			"overall_status": overallStatus,
			"services":       services,
			"timestamp":      time.Now(),
		})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) bool {
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

func checkServiceHealth(isHealthy bool) map[string]interface{} {
	if !isHealthy {
		return map[string]interface{}{
			"status":  "unavailable",
			"message": "Dependency not responding",
		}
	}
	return map[string]interface{}{
		"status":  "healthy",
		"message": "Dependency is responding",
	}
}
