// Package auth implements the identity boundary: RS256 token issuance,
// bearer-token verification against pinned key material, and the role gate.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultKeyID is the key id used when none is configured.
const DefaultKeyID = "midas-default"

// ErrMissingKeyMaterial indicates the process was started without the key
// material its mode requires. Fatal at startup; never seen per-request.
var ErrMissingKeyMaterial = errors.New("auth: missing key material")

// KeyMaterial holds the process-wide asymmetric keys. Built once at startup
// and immutable afterwards, so concurrent request handling needs no locking.
// Verifier-only processes carry just the public half.
type KeyMaterial struct {
	keyID     string
	private   *rsa.PrivateKey
	public    map[string]*rsa.PublicKey
	publicPEM string
}

// NewKeyMaterial parses PEM-encoded RSA keys. publicPEM is required;
// privatePEM may be empty for processes that only verify.
func NewKeyMaterial(keyID, privatePEM, publicPEM string) (*KeyMaterial, error) {
	if keyID == "" {
		keyID = DefaultKeyID
	}
	if publicPEM == "" {
		return nil, ErrMissingKeyMaterial
	}

	pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM))
	if err != nil {
		return nil, fmt.Errorf("auth: parse public key: %w", err)
	}

	km := &KeyMaterial{
		keyID:     keyID,
		public:    map[string]*rsa.PublicKey{keyID: pub},
		publicPEM: publicPEM,
	}

	if privatePEM != "" {
		priv, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privatePEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parse private key: %w", err)
		}
		km.private = priv
	}

	return km, nil
}

// KeyID returns the id under which newly issued tokens are signed.
func (k *KeyMaterial) KeyID() string { return k.keyID }

// PublicKey resolves the verification key registered under kid.
func (k *KeyMaterial) PublicKey(kid string) (*rsa.PublicKey, bool) {
	pub, ok := k.public[kid]
	return pub, ok
}
