package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asthmacare/clinic-api/internal/handler"
	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/service/patient"
)

type Handler struct {
	svc patient.PatientService
}

func NewHandler(svc patient.PatientService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.Register)
		patients.GET("", h.List)
		patients.GET("/:hn", h.Get)
		patients.PUT("/:hn/status", h.UpdateStatus)
		patients.DELETE("/:hn", h.Delete)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.PatientFilters{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	}

	patients, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) Get(c *gin.Context) {
	detail, err := h.svc.Detail(c.Request.Context(), c.Param("hn"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(detail))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req model.UpdatePatientStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), c.Param("hn"), model.PatientStatus(req.Status)); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"status": req.Status}))
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("hn")); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("patient deleted"))
}
