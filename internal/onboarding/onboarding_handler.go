package onboarding

import (
	"net/http"

	"go-vacation/internal/middleware"
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
	l := zap.L().Named("onboarding.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		response.AbortError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Complete(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http complete onboarding validation failed", zap.Error(err))
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Complete(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("http complete onboarding failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.AbortError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
