// Package report prints token request results for an operator to read.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jrschumacher/ltitoken/internal/jwtutil"
	"github.com/jrschumacher/ltitoken/internal/servicetoken"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

var title = color.New(color.FgGreen, color.Bold)

// Section titles, in print order.
const (
	TitleClientID       = "Client ID"
	TitleTokenURL       = "Token URL"
	TitleJWTPayload     = "JWT Payload"
	TitleRequestPayload = "Request Payload"
	TitleResponseStatus = "Response Status"
	TitleResponseBody   = "Response Body"
)

// Titles used by Token.
const (
	TitleHeader = "Header"
	TitleClaims = "Claims"
)

type writer struct {
	w   io.Writer
	err error
}

func (p *writer) section(name string, body any) {
	if p.err != nil {
		return
	}
	if _, p.err = title.Fprintln(p.w, name); p.err != nil {
		return
	}
	switch v := body.(type) {
	case string:
		_, p.err = fmt.Fprintln(p.w, v)
	case int:
		_, p.err = fmt.Fprintln(p.w, v)
	default:
		var b []byte
		if b, p.err = json.MarshalIndent(v, "", "  "); p.err != nil {
			return
		}
		_, p.err = fmt.Fprintln(p.w, string(b))
	}
}

// Write prints the client ID, token URL, claim set, request payload and the
// raw response, each under a colored title.
func Write(w io.Writer, clientID, tokenURL string, res *servicetoken.Result) error {
	if res == nil {
		return fmt.Errorf("nothing to report")
	}
	p := &writer{w: w}
	p.section(TitleClientID, clientID)
	p.section(TitleTokenURL, tokenURL)
	p.section(TitleJWTPayload, res.Claims)
	p.section(TitleRequestPayload, res.Payload)
	if res.Response != nil {
		p.section(TitleResponseStatus, res.Response.StatusCode)
		p.section(TitleResponseBody, res.Response.Body)
	}
	return p.err
}

// JWKS prints keys as an indented JSON Web Key Set, the form platforms ask
// for when a tool's public key is registered.
func JWKS(w io.Writer, keys ...jwk.Key) error {
	set := jwk.NewSet()
	for _, k := range keys {
		if err := set.AddKey(k); err != nil {
			return fmt.Errorf("failed to add key to set: %w", err)
		}
	}
	b, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JWKS: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Token prints a decoded token's header and claims. The signature is not
// shown and has not been checked.
func Token(w io.Writer, d *jwtutil.Decoded) error {
	if d == nil {
		return fmt.Errorf("nothing to report")
	}
	p := &writer{w: w}
	p.section(TitleHeader, d.Header)
	p.section(TitleClaims, d.Claims)
	return p.err
}
