// Package servicetoken requests OAuth2 service access tokens from LTI 1.3
// platforms with the JWT-bearer client-credentials grant.
//
// A request runs in two steps. The assertion builder derives the kid from the
// public key, builds the claim set and signs it with the private key. The
// exchange client posts the assertion with the requested scopes to the
// platform's token endpoint and hands back the raw response. Key material is
// passed in as PEM strings; this package never touches the filesystem.
package servicetoken

import (
	"context"
	"fmt"
	"time"

	"github.com/jrschumacher/ltitoken/internal/logger"
)

// Request holds everything needed for one token request.
type Request struct {
	ClientID      string
	TokenURL      string
	PublicKeyPEM  string
	PrivateKeyPEM string
	Scopes        []string
	Expiration    time.Duration

	// Verify checks the signed assertion against the public key before
	// anything is sent.
	Verify bool
}

// Result is what a completed request produced, in the order it was produced.
type Result struct {
	KeyID     string
	Claims    *Claims
	Assertion string
	Payload   Payload
	Response  *Response
}

// Service ties the assertion builder to the exchange client.
type Service struct {
	builder *Builder
	client  *Client
}

// NewService returns a Service. A nil builder means NewBuilder().
func NewService(builder *Builder, client *Client) *Service {
	if builder == nil {
		builder = NewBuilder()
	}
	return &Service{
		builder: builder,
		client:  client,
	}
}

// Request signs an assertion for req and redeems it at req.TokenURL. A
// returned error means no usable response exists; HTTP error statuses come
// back in Result.Response.
func (s *Service) Request(ctx context.Context, req Request) (*Result, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: no exchange client configured", ErrInvalidArgument)
	}
	log := logger.With("client_id", req.ClientID, "token_url", req.TokenURL)

	expiration := req.Expiration
	if expiration == 0 {
		expiration = DefaultExpiration
	}

	kid, err := DeriveKeyID(req.PublicKeyPEM)
	if err != nil {
		return nil, err
	}
	log.Debug("Derived key id", "kid", kid)

	claims, err := s.builder.BuildClaims(req.ClientID, req.TokenURL, expiration)
	if err != nil {
		return nil, err
	}
	log.Debug("Built assertion claims", "jti", claims.Jti, "iat", claims.Iat, "exp", claims.Exp)

	assertion, err := Sign(claims, req.PrivateKeyPEM, kid)
	if err != nil {
		return nil, err
	}

	if req.Verify {
		if _, err := VerifyAssertion(assertion, req.PublicKeyPEM, s.builder.clock); err != nil {
			return nil, fmt.Errorf("%w: signed assertion does not verify against the public key: %w", ErrKeyFormat, err)
		}
		log.Debug("Verified assertion against public key")
	}

	payload := BuildPayload(assertion, req.Scopes)
	log.Info("Requesting service token", "scope", payload.Scope, "timeout", s.client.Timeout())

	resp, err := s.client.Exchange(ctx, req.TokenURL, payload)
	if err != nil {
		log.Error("Token exchange failed", "error", err)
		return nil, err
	}
	log.Info("Token endpoint responded", "status", resp.StatusCode)

	return &Result{
		KeyID:     kid,
		Claims:    claims,
		Assertion: assertion,
		Payload:   payload,
		Response:  resp,
	}, nil
}
