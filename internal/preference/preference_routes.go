package preference

import (
	"go-vacation/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, protect ...gin.HandlerFunc) {
	prefs := r.Group("/preferences")
	prefs.Use(protect...)
	{
		prefs.GET("", handler.Get)
		prefs.PUT("/theme/:theme", middleware.RateLimitByUser(1, 5), handler.SetTheme)
	}
}
