package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 3 * time.Second

// DependencyPinger checks that a required dependency is reachable.
type DependencyPinger func(ctx context.Context) error

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Error   string `json:"error,omitempty"`
}

// Health returns a liveness handler for services without hard dependencies.
func Health(service string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{Status: "ok", Service: service})
	}
}

// HealthWithDeps returns a health handler that degrades to "error" with a
// 500 when any required dependency does not answer within the timeout.
func HealthWithDeps(service string, deps map[string]DependencyPinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		for name, ping := range deps {
			if err := ping(ctx); err != nil {
				return c.JSON(http.StatusInternalServerError, healthResponse{
					Status:  "error",
					Service: service,
					Error:   name + "_unavailable",
				})
			}
		}
		return c.JSON(http.StatusOK, healthResponse{Status: "ok", Service: service})
	}
}
