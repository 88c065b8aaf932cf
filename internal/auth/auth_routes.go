package auth

import (
	"go-vacation/internal/middleware"
	"go-vacation/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, protect ...gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
		auth.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.RefreshToken)
		auth.POST("/logout", handler.Logout)

		me := append([]gin.HandlerFunc{}, protect...)
		me = append(me, middleware.RateLimitByUser(2, 5), handler.Me)
		auth.GET("/me", me...)
	}
}

// RegisterUserRoutes mounts user administration. rbacService is usually
// rbac.Service.
func RegisterUserRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, protect ...gin.HandlerFunc) {
	users := r.Group("/users")
	users.Use(protect...)
	{
		users.PUT("/:id/role",
			middleware.RateLimitByUser(0.5, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionAssignRole),
			handler.ChangeRole,
		)
	}
}
