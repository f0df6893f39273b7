package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"caseflow/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the admin group with the static ADMIN_TOKEN.
// An empty configured token disables the group.
func AdminAuthMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if adminToken == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access", "")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(tokenString), []byte(adminToken)) != 1 {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access", "")
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
