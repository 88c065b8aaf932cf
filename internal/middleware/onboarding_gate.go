package middleware

import (
	"context"
	"strings"

	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// OnboardingChecker reports whether the user still has to finish the
// first-login onboarding.
type OnboardingChecker interface {
	RequiresOnboarding(ctx context.Context, userID string) (bool, error)
}

// OnboardingGate blocks every route outside exemptPrefixes until the user
// has completed onboarding. Staff accounts are never gated.
func OnboardingGate(checker OnboardingChecker, exemptPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(ContextIsStaff) {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		for _, prefix := range exemptPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		userID := c.GetString(ContextUserID)
		if userID == "" {
			c.Next()
			return
		}

		required, err := checker.RequiresOnboarding(c.Request.Context(), userID)
		if err != nil {
			response.AbortError(c, err)
			return
		}
		if required {
			response.AbortError(c, apperror.ErrOnboardingRequired)
			return
		}
		c.Next()
	}
}
