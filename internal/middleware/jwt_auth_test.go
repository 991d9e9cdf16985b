package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator map[string]*models.User

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	if user, ok := f[token]; ok {
		return user, nil
	}
	return nil, apperror.Authentication("invalid token")
}

func TestJWTAuthMiddleware(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice"}
	mw := JWTAuthMiddleware(fakeAuthenticator{"good": alice})

	var seen *models.User
	handler := mw(func(c echo.Context) error {
		var err error
		seen, err = CurrentUser(c)
		if err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		ok     bool
	}{
		{"valid", "Bearer good", true},
		{"lowercase scheme", "bearer good", true},
		{"missing", "", false},
		{"wrong scheme", "Basic good", false},
		{"no token", "Bearer", false},
		{"unknown token", "Bearer bad", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			err := handler(c)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, alice, seen)
				return
			}
			assert.True(t, apperror.Is(err, apperror.KindAuthentication))
			assert.Nil(t, seen)
		})
	}
}

func TestCurrentUserWithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := CurrentUser(c)
	assert.True(t, apperror.Is(err, apperror.KindAuthentication))
}
