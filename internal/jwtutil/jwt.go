// Package jwtutil decodes compact JWTs for inspection
package jwtutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jws"
)

var (
	// ErrInvalidToken is returned when the input is not a compact JWS
	ErrInvalidToken = errors.New("invalid token format")
	// ErrNotJSON is returned when the JWS payload is not a JSON object
	ErrNotJSON = errors.New("token payload is not a JSON object")
)

// Decoded is the protected header and claim set of a token.
type Decoded struct {
	Header map[string]any
	Claims map[string]any
}

// Decode splits a compact JWS into its header and claims WITHOUT verifying
// the signature. Only use the result for display.
func Decode(token string) (*Decoded, error) {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return nil, ErrInvalidToken
	}

	msg, err := jws.Parse([]byte(token))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	sigs := msg.Signatures()
	if len(sigs) == 0 {
		return nil, ErrInvalidToken
	}

	hdrJSON, err := json.Marshal(sigs[0].ProtectedHeaders())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal header: %w", err)
	}
	header, err := decodeObject(hdrJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrInvalidToken, err)
	}

	claims, err := decodeObject(msg.Payload())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
	}

	return &Decoded{Header: header, Claims: claims}, nil
}

// decodeObject keeps numeric claims such as iat and exp as integers.
func decodeObject(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("null object")
	}
	return m, nil
}
