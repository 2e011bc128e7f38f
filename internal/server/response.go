package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hq-timers/internal/errors"
	"hq-timers/internal/logging"
)

// envelope is the body of every response
type envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
	Code  string      `json:"code,omitempty"`
}

func writeData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{OK: true, Data: data})
}

func (s *Server) writeError(c *gin.Context, operation string, err error) {
	log := logging.ForContext(c.Request.Context(), s.logger)
	if apperrors.ShouldLogError(err) {
		log.Error(operation+" failed", "error", err, "code", apperrors.GetErrorCode(err))
	} else {
		log.Debug(operation+" rejected", "error", err)
	}

	c.JSON(statusFor(err), envelope{
		OK:    false,
		Error: apperrors.GetUserMessage(err),
		Code:  apperrors.GetErrorCode(err),
	})
}

func statusFor(err error) int {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeInvariant, apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
