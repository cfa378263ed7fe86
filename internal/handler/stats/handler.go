package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asthmacare/clinic-api/internal/handler"
	"github.com/asthmacare/clinic-api/internal/service/stats"
)

type Handler struct {
	svc stats.StatsService
}

func NewHandler(svc stats.StatsService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.Overview)
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(overview))
}
