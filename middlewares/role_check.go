package middlewares

import (
	"fmt"
	"net/http"

	"github.com/famly-app/family-reminder/utils"
	"github.com/gin-gonic/gin"
)

// AdminOnly rejects requests whose token does not carry the admin flag.
// Must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if admin, ok := isAdmin.(bool); !ok || !admin {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
