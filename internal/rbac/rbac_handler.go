package rbac

import (
	"net/http"
	"strings"

	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers whether the caller's role may perform the action.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	allowed, err := h.service.Enforce(c.GetString("role"), strings.TrimSpace(req.Resource), strings.TrimSpace(req.Action))
	if err != nil {
		h.logger.Error("http enforce failed", zap.Error(err))
		response.AbortError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

// MyPermissions lists what the caller's role grants, inherited ones included.
func (h *Handler) MyPermissions(c *gin.Context) {
	role := NormalizeRole(c.GetString("role"))
	perms, err := h.service.PermissionsFor(role)
	if err != nil {
		response.AbortError(c, err)
		return
	}
	response.Success(c, http.StatusOK, RolePermissionsResponse{Role: role, Permissions: perms}, nil)
}

// RolePermissions lists the grants of any role.
func (h *Handler) RolePermissions(c *gin.Context) {
	role := strings.ToUpper(c.Param("role"))
	if rank(role) < 0 {
		response.AbortError(c, apperror.ErrNotFound)
		return
	}
	perms, err := h.service.PermissionsFor(role)
	if err != nil {
		response.AbortError(c, err)
		return
	}
	response.Success(c, http.StatusOK, RolePermissionsResponse{Role: role, Permissions: perms}, nil)
}
