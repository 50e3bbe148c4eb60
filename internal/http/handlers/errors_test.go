package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartparking/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.NotFoundError{Resource: "booking", ID: "CUST-X"}, http.StatusNotFound, "not_found"},
		{domain.InvalidWindow("10:00-11:00"), http.StatusBadRequest, "invalid_window"},
		{domain.InvalidDate("too early"), http.StatusBadRequest, "invalid_date"},
		{domain.InvalidSeat("Z9", "is not a seat"), http.StatusBadRequest, "invalid_seat"},
		{domain.InvalidInput("name", "is required"), http.StatusBadRequest, "invalid_input"},
		{fmt.Errorf("wrapped: %w", domain.ConflictError{Resource: "seat"}), http.StatusConflict, "conflict"},
		{domain.AlreadyCancelledError{CustomerID: "CUST-X"}, http.StatusConflict, "already_cancelled"},
		{context.DeadlineExceeded, http.StatusInternalServerError, "internal_error"},
		{errors.New("db exploded"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RespondDomainError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Code)
		if tc.status == http.StatusInternalServerError {
			assert.NotContains(t, resp.Error, "exploded")
		}
	}
}
