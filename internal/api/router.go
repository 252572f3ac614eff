package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/midas-hq/midas/internal/api/handler"
)

// newEcho builds an Echo instance with the middleware and error handling
// shared by every backend service.
func newEcho(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	return e
}

// NewIdentityRouter registers the identity service routes. Paths are as the
// backend sees them: the gateway strips the /auth prefix before forwarding.
func NewIdentityRouter(h *handler.IdentityHandler, deps map[string]handler.DependencyPinger, log zerolog.Logger) *echo.Echo {
	e := newEcho(log)

	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
	e.GET("/.well-known/jwks.json", h.JWKS)
	e.GET("/health", handler.HealthWithDeps("identity", deps))

	return e
}

// NewRegistryRouter registers the condominium registry routes.
func NewRegistryRouter(h *handler.RegistryHandler, deps map[string]handler.DependencyPinger, log zerolog.Logger) *echo.Echo {
	e := newEcho(log)

	e.POST("/condominiums", h.Create)
	e.GET("/condominiums", h.List)
	e.GET("/condominiums/:id", h.Get)
	e.PUT("/condominiums/:id", h.Update)
	e.DELETE("/condominiums/:id", h.Delete)
	e.GET("/health", handler.HealthWithDeps("registry", deps))

	return e
}

// NewFinanceRouter registers the accounts-receivable routes.
func NewFinanceRouter(h *handler.FinanceHandler, deps map[string]handler.DependencyPinger, log zerolog.Logger) *echo.Echo {
	e := newEcho(log)

	e.GET("/receivables", h.ListReceivables)
	e.POST("/receivables", h.CreateReceivable)
	e.GET("/health", handler.HealthWithDeps("finance", deps))

	return e
}

// NewMessagingRouter registers the outbound messaging routes.
func NewMessagingRouter(h *handler.MessagingHandler, deps map[string]handler.DependencyPinger, log zerolog.Logger) *echo.Echo {
	e := newEcho(log)

	e.POST("/whatsapp/send", h.SendWhatsApp)
	e.POST("/email/send", h.SendEmail)
	e.GET("/health", handler.HealthWithDeps("messaging", deps))

	return e
}
