package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/midas-hq/midas/internal/api/metrics"
)

// Proxy forwards requests to internal backends. One httputil.ReverseProxy
// per backend, built once at startup and read-only afterwards.
type Proxy struct {
	proxies map[Backend]*httputil.ReverseProxy
}

// NewProxy parses every backend base URL and prepares its reverse proxy.
// Responses are relayed verbatim: backend-originated errors pass through
// untouched, and only network-level failures become gateway errors.
func NewProxy(targets map[Backend]string, log zerolog.Logger) (*Proxy, error) {
	proxies := make(map[Backend]*httputil.ReverseProxy, len(targets))
	for backend, raw := range targets {
		target, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("gateway: backend %s url %q: %w", backend, raw, err)
		}

		proxies[backend] = &httputil.ReverseProxy{
			Rewrite: func(pr *httputil.ProxyRequest) {
				pr.SetURL(target)
				pr.SetXForwarded()
			},
			ErrorHandler: upstreamErrorHandler(backend, log),
		}
	}
	return &Proxy{proxies: proxies}, nil
}

// upstreamErrorHandler translates transport failures into a 502 envelope.
// A cancelled client context writes nothing: the caller is already gone and
// the in-flight upstream call has been aborted with it.
func upstreamErrorHandler(backend Backend, log zerolog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
			return
		}

		log.Error().
			Err(err).
			Str("backend", string(backend)).
			Str("path", r.URL.Path).
			Msg("upstream unreachable")
		metrics.GatewayUpstreamErrorsTotal.WithLabelValues(string(backend)).Inc()

		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream_unavailable"}`))
	}
}

// Forward sends the request to the rule's backend with the matched prefix
// stripped, streaming the response straight back to the client. No retries:
// a failed attempt surfaces immediately.
func (p *Proxy) Forward(c echo.Context, rule RouteRule) error {
	rp, ok := p.proxies[rule.Backend]
	if !ok {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream_unavailable")
	}

	req := c.Request()
	req.URL.Path = rule.StripPrefix(req.URL.Path)
	req.URL.RawPath = ""

	rp.ServeHTTP(c.Response(), req)
	return nil
}
