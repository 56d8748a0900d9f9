package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medlaunch/onboard-api/internal/handler"
	authService "github.com/medlaunch/onboard-api/internal/service/auth"
)

type AuthMiddleware struct {
	authService authService.AuthServicer
}

func NewAuthMiddleware(service authService.AuthServicer) *AuthMiddleware {
	return &AuthMiddleware{authService: service}
}

// Authenticate verifies the bearer token and puts the admin identity in the
// request context. All dashboard routes sit behind this.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse(handler.MsgUnauthorized))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse(handler.MsgUnauthorized))
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse(handler.MsgUnauthorized))
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminEmail", claims.Email)
		c.Next()
	}
}
