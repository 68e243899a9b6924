// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/infrastructure/database/mongo"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/interfaces/http/handlers"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/interfaces/http/middleware"
)

// SetupRoutes wires every route group under the given API group
func SetupRoutes(rg *gin.RouterGroup, db *mongo.Database, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupProfileRoutes(rg, db, cfg)
	SetupProductRoutes(rg, db, cfg)
	SetupCategoryRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password/:token", authHandler.ResetPassword)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/current-user", authHandler.CurrentUser)
		}
	}
}

// SetupProfileRoutes sets up profile related routes
func SetupProfileRoutes(rg *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	profileHandler := handlers.NewProfileHandler(db, cfg)

	profile := rg.Group("/profile")
	profile.Use(middleware.AuthMiddleware(cfg))
	{
		profile.GET("/info", profileHandler.GetInfo)
	}
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	{
		// Public catalog endpoints
		products.GET("", productHandler.GetProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/:id", productHandler.GetProduct)

		// Admin-only catalog mutations
		admin := products.Group("")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
		{
			admin.POST("/create", productHandler.CreateProduct)
			admin.PUT("/:id", productHandler.UpdateProduct)
			admin.DELETE("/:id", productHandler.DeleteProduct)
		}
	}
}

// SetupCategoryRoutes sets up category related routes
func SetupCategoryRoutes(rg *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	categoryHandler := handlers.NewCategoryHandler(db, cfg)

	categories := rg.Group("/categories")
	{
		// Public taxonomy endpoints
		categories.GET("", categoryHandler.GetCategories)
		categories.GET("/search", categoryHandler.SearchCategories)

		// Admin-only taxonomy mutations
		admin := categories.Group("")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
		{
			admin.POST("/create", categoryHandler.CreateCategory)
			admin.PUT("/:slug", categoryHandler.UpdateCategory)
			admin.DELETE("/:id", categoryHandler.DeleteCategory)
		}
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg)) // All cart routes require authentication
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.CountItems)
		cart.POST("/add", cartHandler.AddItem)
		cart.DELETE("/remove/:productId", cartHandler.RemoveItem)
		cart.DELETE("/clear", cartHandler.ClearCart)
	}
}
