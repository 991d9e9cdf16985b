package middleware

import (
	"context"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// UserKey is the echo context key holding the authenticated *models.User
const UserKey = "user"

// Authenticator resolves a bearer token to a user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// JWTAuthMiddleware requires "Authorization: Bearer <token>" and stores the
// resolved user in the context.
func JWTAuthMiddleware(authenticator Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperror.Authentication("missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return apperror.Authentication("invalid Authorization header format")
			}

			user, err := authenticator.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by JWTAuthMiddleware
func CurrentUser(c echo.Context) (*models.User, error) {
	user, ok := c.Get(UserKey).(*models.User)
	if !ok || user == nil {
		return nil, apperror.Authentication("authentication required")
	}
	return user, nil
}
