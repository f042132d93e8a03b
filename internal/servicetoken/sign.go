package servicetoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningAlgorithm is the only algorithm LTI 1.3 platforms are required to accept.
const SigningAlgorithm = "RS256"

// Sign serializes claims into a compact RS256 JWS bound to kid.
func Sign(claims *Claims, privateKeyPEM, kid string) (string, error) {
	if claims == nil {
		return "", fmt.Errorf("%w: nil claims", ErrInvalidArgument)
	}
	if kid == "" {
		return "", fmt.Errorf("%w: empty kid", ErrInvalidArgument)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse private key: %w", ErrKeyFormat, err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, *claims)
	token.Header["kid"] = kid

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigning, err)
	}
	return signed, nil
}

// VerifyAssertion checks an assertion the way a platform would: RS256
// signature against publicKeyPEM, a kid matching that key's thumbprint, and
// exp relative to now. It returns the decoded claims.
func VerifyAssertion(assertion, publicKeyPEM string, now func() time.Time) (*Claims, error) {
	pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse public key: %w", ErrKeyFormat, err)
	}
	kid, err := DeriveKeyID(publicKeyPEM)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(assertion, claims, func(t *jwt.Token) (interface{}, error) {
		if got, _ := t.Header["kid"].(string); got != kid {
			return nil, fmt.Errorf("%w: got %q, want %q", ErrKeyIDMismatch, got, kid)
		}
		return pub, nil
	},
		jwt.WithValidMethods([]string{SigningAlgorithm}),
		jwt.WithTimeFunc(now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify assertion: %w", err)
	}
	return claims, nil
}
