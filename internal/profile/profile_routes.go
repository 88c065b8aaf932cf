package profile

import (
	"go-vacation/internal/middleware"
	"go-vacation/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, protect ...gin.HandlerFunc) {
	me := r.Group("/profile")
	me.Use(protect...)
	{
		me.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionRead),
			handler.GetMe,
		)
		me.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionUpdate),
			handler.Update,
		)
		me.GET("/team",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionApproveManager),
			handler.GetTeam,
		)
	}

	profiles := r.Group("/profiles")
	profiles.Use(protect...)
	{
		profiles.PUT("/:id/manager",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionAssignManager),
			handler.AssignManager,
		)
	}
}
