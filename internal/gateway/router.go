package gateway

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/midas-hq/midas/internal/api"
	"github.com/midas-hq/midas/internal/api/handler"
	"github.com/midas-hq/midas/internal/api/metrics"
	"github.com/midas-hq/midas/internal/auth"
)

// Gateway interprets the route table for every inbound request: match the
// rule, run the gates it declares, then forward. A single algorithm instead
// of per-path middleware chains.
type Gateway struct {
	table    *RouteTable
	verifier *auth.Verifier
	proxy    *Proxy
	log      zerolog.Logger
}

// New assembles a Gateway from its immutable collaborators.
func New(table *RouteTable, verifier *auth.Verifier, proxy *Proxy, log zerolog.Logger) *Gateway {
	return &Gateway{table: table, verifier: verifier, proxy: proxy, log: log}
}

// Handle is the single wildcard entry point for proxied traffic.
func (g *Gateway) Handle(c echo.Context) error {
	req := c.Request()

	rule, ok := g.table.Match(req.URL.Path)
	if !ok {
		metrics.GatewayRouteMissesTotal.Inc()
		return echo.NewHTTPError(http.StatusNotFound, "route_not_found")
	}

	if rule.RequireAuth {
		principal, err := g.verifier.Verify(req.Header.Get(echo.HeaderAuthorization))
		if err != nil {
			metrics.GatewayAuthRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
			return err
		}
		if rule.RequiredRole != "" {
			// In anonymous mode principal is nil, so role-gated routes
			// stay closed even when verification is switched off.
			if err := auth.RequireRole(principal, rule.RequiredRole); err != nil {
				metrics.GatewayAuthRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
				return err
			}
		}
		if principal != nil {
			g.log.Debug().
				Str("subject", principal.Subject).
				Str("backend", string(rule.Backend)).
				Str("path", req.URL.Path).
				Msg("request authenticated")
		}
	}

	timer := prometheus.NewTimer(metrics.GatewayProxyDuration.WithLabelValues(string(rule.Backend)))
	defer timer.ObserveDuration()

	if err := g.proxy.Forward(c, rule); err != nil {
		return err
	}
	metrics.GatewayProxiedTotal.
		WithLabelValues(string(rule.Backend), strconv.Itoa(c.Response().Status)).
		Inc()
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		return "forbidden"
	case errors.Is(err, auth.ErrInvalidToken):
		return "invalid_token"
	default:
		return "missing_bearer"
	}
}

// NewRouter builds the gateway's Echo instance: operational endpoints first,
// then the wildcard that hands everything else to the route table.
func NewRouter(g *Gateway, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("midas_gateway"))

	// --- Operational endpoints (never proxied) ---
	e.GET("/health", handler.Health("gateway"))
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Everything else goes through the route table ---
	e.Any("/*", g.Handle)

	return e
}
