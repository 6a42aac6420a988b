package middleware

import (
	"context"
	"net/http"

	"my-chat/internal/services"
	"my-chat/internal/session"
	"my-chat/internal/transport/httpdto"
	"my-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards protected routes with the accessToken cookie:
// missing -> 401, failing verification -> 403, otherwise the claims are
// attached to the request context.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.TokenFromRequest(c.Request, session.AccessTokenCookie)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewMessageResponse("Access token missing"))
			return
		}

		claims, err := service.ParseAccessToken(c.Request.Context(), token)
		if err != nil {
			if !services.IsTokenError(err) {
				_ = c.Error(err)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, httpdto.NewMessageResponse("Invalid or expired access token"))
			return
		}

		ctx := services.WithAccessClaims(c.Request.Context(), claims)
		ctx = context.WithValue(ctx, logger.UserIdKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
