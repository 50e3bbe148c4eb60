package handlers

import (
	"net/http"

	"smartparking/internal/domain"
	"smartparking/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: requestID(c),
		Message:   message,
	})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidWindow, domain.KindInvalidDate, domain.KindInvalidSeat, domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindConflict, domain.KindAlreadyCancelled:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError maps domain errors to HTTP responses. Internal errors
// are logged and answered with a generic message.
func RespondDomainError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)
	if status == http.StatusInternalServerError {
		utils.LogError(requestID(c), "http", c.FullPath(), err)
		respondError(c, status, string(domain.KindInternal), "internal error", nil)
		return
	}
	respondError(c, status, string(kind), err.Error(), nil)
}
