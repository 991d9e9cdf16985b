package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", apperror.Validation("title is required"), http.StatusBadRequest, `{"error":"title is required"}`},
		{"forbidden", apperror.Forbidden("you are not allowed to delete this post"), http.StatusForbidden, `{"error":"you are not allowed to delete this post"}`},
		{"conflict", apperror.Conflict("tag name already exists"), http.StatusConflict, `{"error":"tag name already exists"}`},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, `{"error":"Not Found"}`},
		{"internal detail hidden", apperror.Internal(errors.New("pq: relation does not exist")), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	handler := ErrorHandler(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestParamID(t *testing.T) {
	e := echo.New()
	for _, raw := range []string{"0", "-1", "abc", ""} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		_, err := paramID(c, "id")
		assert.True(t, apperror.Is(err, apperror.KindValidation), raw)
	}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, err := paramID(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)
}
