package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/afyastaff/afyastaff/internal/auth"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/gin-gonic/gin"
)

// ActorResolver turns validated token claims into the request's actor
type ActorResolver interface {
	ResolveActor(ctx context.Context, claims *auth.Claims) (types.Actor, error)
}

// AuthenticateMiddleware validates the Bearer token in the Authorization header,
// resolves the caller's staff profile and stores the actor in the request context
func AuthenticateMiddleware(provider auth.Provider, resolver ActorResolver, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			unauthorized(c, "Unauthorized")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := provider.ValidateToken(tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			unauthorized(c, "Invalid token")
			return
		}

		if claims == nil || claims.UserID == "" {
			unauthorized(c, "Invalid token claims")
			return
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), claims)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(types.SetActor(c.Request.Context(), actor))
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ierr.ErrorResponse{
		Success: false,
		Error: ierr.ErrorDetail{
			Display: message,
			Kind:    ierr.KindPermission,
		},
	})
}
