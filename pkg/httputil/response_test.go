package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", apperrors.BadRequest("nope", nil), http.StatusBadRequest},
		{"unauthorized", apperrors.Unauthorized("", nil), http.StatusUnauthorized},
		{"not found", apperrors.NotFound("appointment", nil), http.StatusNotFound},
		{"internal", apperrors.Internal(errors.New("db down")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestRespondWithErrorHidesCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithError(c, apperrors.Internal(errors.New("password=secret")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Len(t, c.Errors, 1)
}

func TestRespondWithErrorBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithError(c, apperrors.BadRequest("Invalid date format", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid date format"}`, w.Body.String())
}
