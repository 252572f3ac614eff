package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/midas-hq/midas/internal/core/domain"
)

// Claims is the token payload: registered claims plus the identity fields
// every downstream service relies on.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Principal is the verified identity extracted from a valid token. It is
// threaded explicitly through the request pipeline; the raw *http.Request is
// never mutated to carry it.
type Principal struct {
	Subject string
	Email   string
	Roles   domain.Roles
}

// Issuer mints RS256 access tokens. Issuance is stateless: tokens are never
// persisted and expire purely by exp elapsing.
type Issuer struct {
	keys *KeyMaterial
	ttl  time.Duration
	now  func() time.Time
}

// NewIssuer returns an Issuer signing with the private half of keys.
// Fails when keys carry no private key; that is a startup misconfiguration,
// not a per-request condition.
func NewIssuer(keys *KeyMaterial, ttl time.Duration) (*Issuer, error) {
	if keys == nil || keys.private == nil {
		return nil, ErrMissingKeyMaterial
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{keys: keys, ttl: ttl, now: time.Now}, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for user, tagged with the active key id.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: user.Email,
		Roles: user.Roles.Strings(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = i.keys.keyID
	return token.SignedString(i.keys.private)
}
