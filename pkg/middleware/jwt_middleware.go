package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripdeck/pkg/utils"
)

func JWTAuthMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("session_id", claims.ID)
		c.Set("mode", claims.Mode)
		c.Next()
	}
}

// ModeMiddleware rejects sessions that are not in the required mode.
func ModeMiddleware(requiredMode string) gin.HandlerFunc {

	return func(c *gin.Context) {
		mode := c.GetString("mode")

		if mode != requiredMode {
			utils.HandleServiceError(c, utils.ErrViewOnly)
			c.Abort()
			return
		}

		c.Next()
	}
}
