package gateway

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/midas-hq/midas/internal/auth"
	"github.com/midas-hq/midas/internal/core/domain"
)

type testKeys struct {
	private *rsa.PrivateKey
	pubPEM  string
}

func newTestKeys(t *testing.T) testKeys {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))
	return testKeys{private: key, pubPEM: pubPEM}
}

// signToken signs arbitrary claims so tests can build expired tokens and
// tokens under unrecognized key ids.
func (k testKeys) signToken(t *testing.T, kid string, roles []string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "5b1fe1a4-6e19-4f0b-a018-2c1b6f74e001",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: "tester@condo.example",
		Roles: roles,
	})
	token.Header["kid"] = kid
	signed, err := token.SignedString(k.private)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// backendRecorder is a stub backend that records whether it was hit and with
// which path, replying with a fixed status, header, and body.
type backendRecorder struct {
	hits     int
	lastPath string
	status   int
	body     string
}

func (b *backendRecorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.hits++
		b.lastPath = r.URL.Path
		w.Header().Set("X-Backend", "stub")
		status := b.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, b.body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGateway(t *testing.T, keys testKeys, targets map[Backend]string) http.Handler {
	t.Helper()
	material, err := auth.NewKeyMaterial("", "", keys.pubPEM)
	if err != nil {
		t.Fatalf("key material: %v", err)
	}
	verifier, err := auth.NewVerifier(material)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	proxy, err := NewProxy(targets, zerolog.Nop())
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	g := New(NewRouteTable(DefaultRules()), verifier, proxy, zerolog.Nop())
	return NewRouter(g, zerolog.Nop())
}

func TestGateway_ProtectedRouteWithoutToken(t *testing.T) {
	keys := newTestKeys(t)
	backend := &backendRecorder{}
	gw := newTestGateway(t, keys, map[Backend]string{BackendRegistry: backend.server(t).URL})

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registry/condominiums", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if backend.hits != 0 {
		t.Fatalf("backend must not be contacted on gate failure")
	}
}

func TestGateway_ExpiredToken(t *testing.T) {
	keys := newTestKeys(t)
	backend := &backendRecorder{}
	gw := newTestGateway(t, keys, map[Backend]string{BackendRegistry: backend.server(t).URL})

	token := keys.signToken(t, auth.DefaultKeyID, []string{"resident"}, time.Now().Add(-time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/registry/condominiums", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
	if backend.hits != 0 {
		t.Fatalf("backend must not be contacted")
	}
}

func TestGateway_UnknownKeyID(t *testing.T) {
	keys := newTestKeys(t)
	backend := &backendRecorder{}
	gw := newTestGateway(t, keys, map[Backend]string{BackendRegistry: backend.server(t).URL})

	token := keys.signToken(t, "unknown-kid", []string{"resident"}, time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/registry/condominiums", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown kid, got %d", rec.Code)
	}
}

func TestGateway_ReportingRoleGate(t *testing.T) {
	keys := newTestKeys(t)
	backend := &backendRecorder{body: `{"report":"ok"}`}
	gw := newTestGateway(t, keys, map[Backend]string{BackendReporting: backend.server(t).URL})

	// Authenticated but not admin → 403, no forwarding.
	token := keys.signToken(t, auth.DefaultKeyID, []string{"manager", "collector"}, time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/reporting/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
	if backend.hits != 0 {
		t.Fatalf("backend must not be contacted for forbidden request")
	}

	// Admin → forwarded, prefix stripped.
	admin := keys.signToken(t, auth.DefaultKeyID, []string{string(domain.RoleAdmin)}, time.Now().Add(time.Hour))
	req = httptest.NewRequest(http.MethodGet, "/reporting/summary", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	rec = httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
	if backend.hits != 1 || backend.lastPath != "/summary" {
		t.Fatalf("expected one hit on /summary, got %d on %q", backend.hits, backend.lastPath)
	}
	if rec.Body.String() != `{"report":"ok"}` {
		t.Fatalf("body not relayed verbatim: %q", rec.Body.String())
	}
}

func TestGateway_AuthPrefixIsOpen(t *testing.T) {
	keys := newTestKeys(t)
	backend := &backendRecorder{status: http.StatusCreated, body: `{"id":"u1"}`}
	gw := newTestGateway(t, keys, map[Backend]string{BackendIdentity: backend.server(t).URL})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected backend status relayed, got %d", rec.Code)
	}
	if backend.lastPath != "/signup" {
		t.Fatalf("expected stripped path /signup, got %q", backend.lastPath)
	}
}

func TestGateway_UnmatchedPath(t *testing.T) {
	keys := newTestKeys(t)
	backend := &backendRecorder{}
	gw := newTestGateway(t, keys, map[Backend]string{
		BackendIdentity: backend.server(t).URL,
		BackendRegistry: backend.server(t).URL,
	})

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if backend.hits != 0 {
		t.Fatalf("no backend may be contacted for an unmatched path")
	}
}

func TestGateway_UpstreamUnavailable(t *testing.T) {
	keys := newTestKeys(t)

	// A server that is already closed leaves a dead address behind.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	gw := newTestGateway(t, keys, map[Backend]string{BackendRegistry: deadURL})

	token := keys.signToken(t, auth.DefaultKeyID, []string{"resident"}, time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/registry/condominiums", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "upstream_unavailable") {
		t.Fatalf("expected upstream_unavailable envelope, got %q", rec.Body.String())
	}
}

func TestGateway_RelaysBackendErrorsVerbatim(t *testing.T) {
	keys := newTestKeys(t)
	backend := &backendRecorder{status: http.StatusTeapot, body: `{"error":"backend_says_no"}`}
	gw := newTestGateway(t, keys, map[Backend]string{BackendFinance: backend.server(t).URL})

	token := keys.signToken(t, auth.DefaultKeyID, []string{"collector"}, time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/finance/receivables", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("backend status must be relayed untouched, got %d", rec.Code)
	}
	if rec.Body.String() != `{"error":"backend_says_no"}` {
		t.Fatalf("backend body must be relayed untouched, got %q", rec.Body.String())
	}
	if rec.Header().Get("X-Backend") != "stub" {
		t.Fatalf("backend headers must be relayed")
	}
}

func TestGateway_AnonymousModeKeepsRoleGateClosed(t *testing.T) {
	backend := &backendRecorder{}
	proxy, err := NewProxy(map[Backend]string{
		BackendRegistry:  backend.server(t).URL,
		BackendReporting: backend.server(t).URL,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	g := New(NewRouteTable(DefaultRules()), auth.NewAnonymousVerifier(), proxy, zerolog.Nop())
	gw := NewRouter(g, zerolog.Nop())

	// Plain protected route passes anonymously.
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registry/condominiums", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous mode should forward /registry, got %d", rec.Code)
	}

	// Role-gated route still fails: there is no principal to satisfy it.
	rec = httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reporting/summary", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("role-gated route must stay closed in anonymous mode, got %d", rec.Code)
	}
}
