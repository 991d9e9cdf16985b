package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck reports the service status together with database reachability
func HealthCheck(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":   "unavailable",
				"service":  "inkwell",
				"database": err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":   "healthy",
			"service":  "inkwell",
			"database": "ok",
		})
	}
}
