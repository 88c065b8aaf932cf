package onboarding

import (
	"go-vacation/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ExemptPrefix is reachable while the onboarding gate is closed.
const ExemptPrefix = "/api/v1/onboarding"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, protect ...gin.HandlerFunc) {
	onboarding := r.Group("/onboarding")
	onboarding.Use(protect...)
	{
		onboarding.GET("", handler.Status)
		onboarding.POST("", middleware.RateLimitByUser(0.5, 2), handler.Complete)
	}
}
