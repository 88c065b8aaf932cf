package middleware

import (
	"strings"

	autherrors "go-vacation/internal/auth/errors"
	"go-vacation/internal/auth/token"
	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID  = "user_id"
	ContextRole    = "role"
	ContextIsStaff = "is_staff"
)

// TokenParser verifies an access token.
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// AuthMiddleware accepts a bearer token or the access_token cookie.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.AbortError(c, autherrors.ErrMissingToken)
			return
		}

		claims, err := parser.Parse(tokenString)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextIsStaff, claims.IsStaff)

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithRole(ctx, claims.Role)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", claims.UserID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
