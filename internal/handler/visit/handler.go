package visit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asthmacare/clinic-api/internal/handler"
	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/service/visit"
)

type Handler struct {
	svc visit.VisitService
}

func NewHandler(svc visit.VisitService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("/:hn/visits", h.Record)
		patients.GET("/:hn/visits", h.History)
		patients.GET("/:hn/review", h.ReviewStatus)
	}

	intents := r.Group("/intents")
	{
		intents.GET("/pending", h.PendingIntents)
	}
}

func (h *Handler) Record(c *gin.Context) {
	var req model.RecordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	recorded, err := h.svc.Record(c.Request.Context(), c.Param("hn"), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(recorded))
}

func (h *Handler) History(c *gin.Context) {
	visits, err := h.svc.History(c.Request.Context(), c.Param("hn"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(visits))
}

func (h *Handler) ReviewStatus(c *gin.Context) {
	status, err := h.svc.ReviewStatus(c.Request.Context(), c.Param("hn"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(status))
}

func (h *Handler) PendingIntents(c *gin.Context) {
	pending, err := h.svc.PendingIntents(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(pending))
}
