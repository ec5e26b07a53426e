package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaintenanceMode returns 503 for every route while the maintenance flag
// is on, so a stock-take or migration can run without half-written data.
// Health checks still pass so the deployment stays green.
func MaintenanceMode(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "The system is down for maintenance. Please try again shortly.",
		})
	}
}
