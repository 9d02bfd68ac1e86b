package api

import (
	"net/http"

	"coffee-shop/internal/api/handlers"
	"coffee-shop/internal/api/interfaces"
	"coffee-shop/internal/api/middlewares"
	"coffee-shop/internal/api/models"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes with proper middleware
func SetupRoutes(router *gin.Engine, services interfaces.Services) {
	cfg := services.GetConfig()

	// Global middleware
	router.Use(middlewares.Recovery())
	router.Use(middlewares.CORS(cfg.API.CORS))
	router.Use(middlewares.Security())
	router.Use(middlewares.RequestLogging(services.GetLogger()))
	router.Use(middlewares.RateLimit(cfg.API.RateLimit))

	// Health check (no auth required)
	router.GET("/health", handlers.HealthCheck(services))
	router.GET("/ping", handlers.HealthCheck(services))

	setupDrinkRoutes(router, services)

	// Generic error handlers keep the wire envelope for unmatched requests
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError(http.StatusNotFound))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.NewError(http.StatusMethodNotAllowed))
	})
}

// setupDrinkRoutes configures the drinks catalog. The list endpoint is
// public; everything else is guarded by a permission-specific authorizer
// middleware.
func setupDrinkRoutes(router *gin.Engine, services interfaces.Services) {
	router.GET("/drinks", handlers.GetDrinks(services))

	router.GET("/drinks-detail",
		middlewares.RequiresPermission(services, "get:drinks-detail"),
		handlers.GetDrinksDetail(services))

	router.POST("/drinks",
		middlewares.RequiresPermission(services, "post:drinks"),
		handlers.CreateDrink(services))

	router.PATCH("/drinks/:id",
		middlewares.RequiresPermission(services, "patch:drinks"),
		handlers.UpdateDrink(services))

	router.DELETE("/drinks/:id",
		middlewares.RequiresPermission(services, "delete:drinks"),
		handlers.DeleteDrink(services))
}
