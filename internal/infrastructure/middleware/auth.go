package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/auth"
	"github.com/photospot-app/photospot-backend/internal/pkg/httputil"
)

const (
	UserIDKey    = "user_id"
	BearerPrefix = "Bearer "
)

type AuthMiddleware struct {
	jwtSvc *auth.JWTService
}

func NewAuthMiddleware(jwtSvc *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authorization header required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization format")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		userID, role, err := m.jwtSvc.ValidateAccessToken(token)
		if err != nil {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(httputil.ViewerKey, domain.Identified(userID, role))
		c.Next()
	}
}

// OptionalAuth resolves the viewer without ever rejecting the request.
// A missing, malformed, or expired token degrades to the anonymous
// viewer instead of a 401.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := domain.Anonymous()

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, BearerPrefix) {
			token := strings.TrimPrefix(authHeader, BearerPrefix)
			if userID, role, err := m.jwtSvc.ValidateAccessToken(token); err == nil {
				viewer = domain.Identified(userID, role)
				c.Set(UserIDKey, userID)
			}
		}

		c.Set(httputil.ViewerKey, viewer)
		c.Next()
	}
}

// RequireRole runs after RequireAuth and gates on the role carried in
// the access token.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := httputil.GetViewer(c)
		if viewer.Role() != role {
			httputil.ErrorWithCode(c, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
