package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/asthmacare/clinic-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps an application error to its HTTP status and writes the
// JSON error body. Internal details stay in the log, not the response.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch errors.CodeOf(err) {
	case errors.ErrValidation:
		status, message = http.StatusBadRequest, err.Error()
	case errors.ErrNotFound:
		status, message = http.StatusNotFound, err.Error()
	case errors.ErrDuplicate:
		status, message = http.StatusConflict, err.Error()
	case errors.ErrUnauthorized:
		status, message = http.StatusUnauthorized, "unauthorized"
	case errors.ErrProtectedRow:
		status, message = http.StatusForbidden, err.Error()
	case errors.ErrWrite:
		status, message = http.StatusBadGateway, "storage write failed"
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(status, NewErrorResponse(message))
}
