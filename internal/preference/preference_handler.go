package preference

import (
	"net/http"

	"go-vacation/internal/middleware"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		response.AbortError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetTheme(c *gin.Context) {
	resp, err := h.service.SetTheme(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("theme"))
	if err != nil {
		response.AbortError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
