package handlers

import (
	"errors"
	"io"
	"net/http"

	"smartparking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "invalid_input", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		msg := "request body is not valid JSON"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		respondError(c, http.StatusBadRequest, "invalid_input", msg, err.Error())
		return false
	}
	return true
}

func requestID(c *gin.Context) string { return middleware.GetRequestID(c) }
