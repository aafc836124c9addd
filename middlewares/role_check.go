package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printdesk/printdesk/utils"
)

// RequireAdmin guards the dashboard, reports and danger-zone endpoints.
// Staff accounts get full entity CRUD but no aggregate views or resets.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}
		if role != "admin" {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
