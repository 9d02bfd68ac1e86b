package middlewares

import (
	"net/http"

	"coffee-shop/internal/api/models"

	"github.com/gin-gonic/gin"
)

// Recovery middleware recovers from panics
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			models.NewError(http.StatusInternalServerError))
	})
}
