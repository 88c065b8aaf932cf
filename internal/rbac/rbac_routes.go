package rbac

import (
	"go-vacation/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the policy endpoints behind the protect chain
// (authentication and the onboarding gate).
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service, protect ...gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(protect...)
	{
		group.GET("/me", handler.MyPermissions)
		group.POST("/enforce", middleware.RateLimitByUser(5, 20), handler.Enforce)
		group.GET("/roles/:role", middleware.RBACAuthorize(service, ResourceRBAC, ActionRead), handler.RolePermissions)
	}
}
