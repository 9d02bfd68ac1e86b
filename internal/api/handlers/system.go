package handlers

import (
	"net/http"
	"time"

	"coffee-shop/internal/api/interfaces"
	"coffee-shop/internal/api/models"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

// HealthCheck reports liveness and database connectivity
func HealthCheck(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		dbStatus := "connected"
		httpStatus := http.StatusOK

		if err := services.DrinkRepository().Ping(); err != nil {
			services.GetLogger().Error("Database health check failed: %v", err)
			status = "degraded"
			dbStatus = "disconnected"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, models.HealthCheckResponse{
			Status:    status,
			Database:  dbStatus,
			Timestamp: time.Now().Unix(),
			Version:   version,
		})
	}
}
