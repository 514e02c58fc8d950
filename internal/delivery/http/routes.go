package http

import (
	"github.com/gin-gonic/gin"

	"github.com/YK12321/Budgeteer/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Catalog endpoints
	router.GET("/items", handler.GetItems)
	router.GET("/items/:id", handler.GetItemByID)
	router.GET("/items/:id/stats", handler.GetItemStats)
	router.GET("/search", handler.SearchItems)
	router.GET("/stores", handler.GetStores)
	router.GET("/categories", handler.GetCategories)

	// Assistant endpoints
	llm := router.Group("/api/llm")
	{
		llm.POST("/query", handler.ProcessQuery)
		llm.POST("/shopping-list", handler.GenerateShoppingList)
	}

	return router
}
