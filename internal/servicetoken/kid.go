package servicetoken

import (
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// DeriveKeyID returns the kid platforms expect for the given PEM public key:
// the RFC 7638 SHA-256 JWK thumbprint, base64url encoded without padding.
func DeriveKeyID(publicKeyPEM string) (string, error) {
	key, err := PublicJWK(publicKeyPEM)
	if err != nil {
		return "", err
	}
	return key.KeyID(), nil
}

// PublicJWK parses a PEM RSA public key into a JWK with kid, alg and use set,
// ready to be published in a JWKS.
func PublicJWK(publicKeyPEM string) (jwk.Key, error) {
	key, err := jwk.ParseKey([]byte(publicKeyPEM), jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse public key: %w", ErrKeyFormat, err)
	}
	if key.KeyType() != jwa.RSA {
		return nil, fmt.Errorf("%w: expected RSA public key, got %s", ErrKeyFormat, key.KeyType())
	}

	// A private key PEM parses too; only its public half is ever published.
	pub, err := key.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}
	if err := jwk.AssignKeyID(pub); err != nil {
		return nil, fmt.Errorf("%w: failed to compute thumbprint: %w", ErrKeyFormat, err)
	}
	_ = pub.Set(jwk.AlgorithmKey, jwa.RS256)
	_ = pub.Set(jwk.KeyUsageKey, "sig")
	return pub, nil
}
