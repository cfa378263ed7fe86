// Package public serves the unauthenticated patient-facing summary. The
// only credential is the unguessable token in the URL.
package public

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asthmacare/clinic-api/internal/handler"
	"github.com/asthmacare/clinic-api/internal/service/patient"
)

type Handler struct {
	svc patient.PatientService
}

func NewHandler(svc patient.PatientService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/public")
	{
		public.GET("/summary/:token", h.Summary)
	}
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.svc.PublicSummary(c.Request.Context(), c.Param("token"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}
