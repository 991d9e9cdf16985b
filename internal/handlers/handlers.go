// Package handlers maps HTTP routes onto the domain services.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler renders errors as {"error": "..."}. Internal failures are logged
// and reported with a generic message.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *apperror.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal:
			status = apperror.HTTPStatus(appErr.Kind)
			message = appErr.Message
		case errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError:
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
		default:
			log.Error("request failed",
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, ErrorResponse{Error: message})
		}
		if err != nil {
			log.Warn("failed to write error response", zap.Error(err))
		}
	}
}

// bindAndValidate decodes the request body into req and validates it
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "invalid request payload", err)
	}
	return c.Validate(req)
}

// paramID parses a positive numeric path parameter
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("invalid " + name)
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation(name + " must be an integer")
	}
	return n, nil
}

func queryUint(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperror.Validation(name + " must be a positive integer")
	}
	id := uint(n)
	return &id, nil
}

func queryBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.Validation(name + " must be true or false")
	}
	return &b, nil
}
