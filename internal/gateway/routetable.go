// Package gateway implements the edge reverse proxy: a declarative route
// table interpreted by a single routing algorithm, with token verification
// and role gating applied before any byte reaches a backend.
package gateway

import (
	"strings"

	"github.com/midas-hq/midas/internal/core/domain"
)

// Backend identifies an internal service the gateway can forward to.
type Backend string

const (
	BackendIdentity  Backend = "identity"
	BackendRegistry  Backend = "registry"
	BackendFinance   Backend = "finance"
	BackendBilling   Backend = "billing"
	BackendMessaging Backend = "messaging"
	BackendReporting Backend = "reporting"
)

// RouteRule maps a path prefix onto a backend and carries its own auth and
// role requirements. Rules are data, not middleware chains.
type RouteRule struct {
	Prefix       string
	Backend      Backend
	RequireAuth  bool
	RequiredRole domain.Role // empty when no role gate applies
}

// RouteTable is an ordered rule list. The first matching prefix wins, so
// declaration order is significant and preserved.
type RouteTable struct {
	rules []RouteRule
}

// NewRouteTable builds an immutable table from rules in the given order.
func NewRouteTable(rules []RouteRule) *RouteTable {
	copied := make([]RouteRule, len(rules))
	copy(copied, rules)
	return &RouteTable{rules: copied}
}

// DefaultRules is the production routing table: /auth is the only open
// prefix and /reporting additionally requires the admin role.
func DefaultRules() []RouteRule {
	return []RouteRule{
		{Prefix: "/auth", Backend: BackendIdentity},
		{Prefix: "/registry", Backend: BackendRegistry, RequireAuth: true},
		{Prefix: "/finance", Backend: BackendFinance, RequireAuth: true},
		{Prefix: "/billing", Backend: BackendBilling, RequireAuth: true},
		{Prefix: "/messaging", Backend: BackendMessaging, RequireAuth: true},
		{Prefix: "/reporting", Backend: BackendReporting, RequireAuth: true, RequiredRole: domain.RoleAdmin},
	}
}

// Match returns the first rule whose prefix matches path.
func (t *RouteTable) Match(path string) (RouteRule, bool) {
	for _, r := range t.rules {
		if matchPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return RouteRule{}, false
}

// matchPrefix matches whole path segments: "/auth" matches "/auth" and
// "/auth/login" but never "/authx".
func matchPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}

// StripPrefix rewrites path for forwarding to the backend. An empty
// remainder becomes "/" so backends always see an absolute path.
func (r RouteRule) StripPrefix(path string) string {
	rest := strings.TrimPrefix(path, r.Prefix)
	if rest == "" {
		return "/"
	}
	return rest
}
