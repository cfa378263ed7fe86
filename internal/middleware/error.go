package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/asthmacare/clinic-api/pkg/errors"
)

// ErrorResponse is the body written for errors that surface through the
// gin error list instead of a handler's own response.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		status := http.StatusInternalServerError
		switch errors.CodeOf(lastErr.Err) {
		case errors.ErrValidation:
			status = http.StatusBadRequest
		case errors.ErrNotFound:
			status = http.StatusNotFound
		case errors.ErrDuplicate:
			status = http.StatusConflict
		case errors.ErrUnauthorized:
			status = http.StatusUnauthorized
		}

		c.JSON(status, ErrorResponse{
			Code:      status,
			Message:   lastErr.Error(),
			RequestID: requestID,
		})
	}
}
