package auth

// JWK describes one verification key. The public key travels as raw PEM,
// which is exactly what verifier processes load from their configuration.
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	PEM string `json:"pem"`
}

// JWKS is the document served at /.well-known/jwks.json.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWKS returns the published key set for this key material.
func (k *KeyMaterial) JWKS() JWKS {
	return JWKS{Keys: []JWK{{
		Kid: k.keyID,
		Kty: "RSA",
		Alg: "RS256",
		Use: "sig",
		PEM: k.publicPEM,
	}}}
}
