package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/midas-hq/midas/internal/auth"
	"github.com/midas-hq/midas/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain and auth errors to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to clients.
//   - Renders a consistent JSON envelope: {"error": "<code>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, router 404s, explicit HTTPErrors).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, "email_exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusBadRequest, "unknown_role"
	case errors.Is(err, domain.ErrCondominiumNotFound):
		return http.StatusNotFound, "condominium_not_found"
	case errors.Is(err, domain.ErrReceivableNotFound):
		return http.StatusNotFound, "receivable_not_found"
	case errors.Is(err, domain.ErrDuplicateMessage):
		return http.StatusConflict, "message_already_queued"
	case errors.Is(err, domain.ErrUnknownChannel):
		return http.StatusBadRequest, "unknown_channel"
	case errors.Is(err, auth.ErrMissingBearer):
		return http.StatusUnauthorized, "missing_bearer_token"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid_token"
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal_error"
}
