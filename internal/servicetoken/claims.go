package servicetoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// IssuedAtSkew is subtracted from iat to tolerate clock drift between us
	// and the platform.
	IssuedAtSkew = 5 * time.Second
	// DefaultExpiration is the assertion lifetime used when none is configured.
	DefaultExpiration = 60 * time.Second
	// JTIPrefix marks assertion IDs so they can be traced in platform logs.
	JTIPrefix = "lti-service-token-"
)

// Claims is the claim set of a client assertion. Field order is the
// serialization order.
type Claims struct {
	Iss string `json:"iss"` // client_id
	Sub string `json:"sub"` // client_id
	Aud string `json:"aud"` // token endpoint
	Iat int64  `json:"iat"`
	Exp int64  `json:"exp"`
	Jti string `json:"jti"`
}

var _ jwt.Claims = Claims{}

// GetExpirationTime implements jwt.Claims.
func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Exp, 0)), nil
}

// GetIssuedAt implements jwt.Claims.
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Iat, 0)), nil
}

// GetNotBefore implements jwt.Claims. Assertions carry no nbf.
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims.
func (c Claims) GetIssuer() (string, error) {
	return c.Iss, nil
}

// GetSubject implements jwt.Claims.
func (c Claims) GetSubject() (string, error) {
	return c.Sub, nil
}

// GetAudience implements jwt.Claims.
func (c Claims) GetAudience() (jwt.ClaimStrings, error) {
	return jwt.ClaimStrings{c.Aud}, nil
}

// Builder creates claim sets. The clock and the ID generator are replaceable
// so tests can pin exact values.
type Builder struct {
	now   func() time.Time
	genID func() (string, error)
}

// Option configures a Builder
type Option func(*Builder)

// WithClock sets the time source used for iat and exp.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithIDGenerator sets the function producing the random part of jti.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(b *Builder) {
		b.genID = gen
	}
}

// NewBuilder returns a Builder using the wall clock and random UUIDs unless
// overridden by opts.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		now:   time.Now,
		genID: newUUID,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildClaims returns the claims for one token request. iat is backdated by
// IssuedAtSkew and exp is now plus expiration, both in whole seconds.
func (b *Builder) BuildClaims(clientID, tokenURL string, expiration time.Duration) (*Claims, error) {
	if expiration < time.Second {
		return nil, fmt.Errorf("%w: expiration must be at least one second, got %s", ErrInvalidArgument, expiration)
	}

	id, err := b.id()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := b.clock().Unix()
	return &Claims{
		Iss: clientID,
		Sub: clientID,
		Aud: tokenURL,
		Iat: now - int64(IssuedAtSkew/time.Second),
		Exp: now + int64(expiration/time.Second),
		Jti: JTIPrefix + id,
	}, nil
}

func (b *Builder) clock() time.Time {
	if b.now != nil {
		return b.now()
	}
	return time.Now()
}

func (b *Builder) id() (string, error) {
	if b.genID != nil {
		return b.genID()
	}
	return newUUID()
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
