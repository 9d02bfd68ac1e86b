package middlewares

import (
	"coffee-shop/internal/api/interfaces"
	"coffee-shop/internal/api/models"
	"coffee-shop/internal/auth"

	"github.com/gin-gonic/gin"
)

const claimsContextKey = "auth_claims"

// RequiresPermission guards a route with the full authorization pipeline.
// On success the validated claims are stored in the request context for the
// handler; on failure the structured error is translated into the wire
// envelope and the chain is aborted. Only this middleware writes denial
// responses; the authorizer itself never touches the response writer.
func RequiresPermission(services interfaces.Services, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, aerr := services.Authorizer().Authorize(
			c.Request.Context(), c.GetHeader("Authorization"), permission)
		if aerr != nil {
			services.GetLogger().AuthLogger("denied", aerr.Code, permission, c.ClientIP())
			c.JSON(aerr.StatusCode, models.NewErrorWithMessage(aerr.StatusCode, aerr.Message))
			c.Abort()
			return
		}

		services.GetLogger().AuthLogger("granted", "", permission, c.ClientIP())
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// GetClaims returns the validated claims stored by RequiresPermission, or
// nil on a public route.
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(claimsContextKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
