package leave

import (
	"go-vacation/internal/middleware"
	"go-vacation/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	protect ...gin.HandlerFunc,
) {
	authorize := func(resource, action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, resource, action)
	}

	views := r.Group("")
	views.Use(protect...)
	{
		views.GET("/dashboard", authorize(rbac.ResourceLeave, rbac.ActionRead), handler.Dashboard)
		views.GET("/calendar/events", authorize(rbac.ResourceCalendar, rbac.ActionRead), handler.CalendarEvents)
	}

	leaves := r.Group("/leaves")
	leaves.Use(protect...)
	{
		leaves.GET("", authorize(rbac.ResourceLeave, rbac.ActionRead), handler.ListMine)
		leaves.GET("/:id", authorize(rbac.ResourceLeave, rbac.ActionRead), handler.GetByID)
		leaves.POST("",
			middleware.RateLimitByUser(0.2, 2),
			authorize(rbac.ResourceLeave, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		leaves.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			authorize(rbac.ResourceLeave, rbac.ActionCreate),
			handler.Update,
		)
		leaves.POST("/:id/manager-approve",
			middleware.RateLimitByUser(1, 5),
			authorize(rbac.ResourceLeave, rbac.ActionApproveManager),
			handler.ManagerApprove,
		)
		leaves.POST("/:id/final-approve",
			middleware.RateLimitByUser(1, 5),
			authorize(rbac.ResourceLeave, rbac.ActionApproveFinal),
			handler.FinalApprove,
		)
		leaves.POST("/:id/reject",
			middleware.RateLimitByUser(1, 5),
			authorize(rbac.ResourceLeave, rbac.ActionReject),
			handler.Reject,
		)
	}

	manager := r.Group("/manager")
	manager.Use(protect...)
	{
		manager.GET("/leaves", authorize(rbac.ResourceLeave, rbac.ActionApproveManager), handler.ListPendingForManager)
	}

	hr := r.Group("/hr")
	hr.Use(protect...)
	{
		hr.GET("/leaves", authorize(rbac.ResourceLeave, rbac.ActionApproveFinal), handler.ListPendingForHR)
		hr.GET("/leaves/export",
			middleware.RateLimitByUser(0.1, 2),
			authorize(rbac.ResourceLeave, rbac.ActionExport),
			handler.Export,
		)
	}
}
