package servicetoken

import (
	"net/url"
	"strings"
)

const (
	// GrantTypeClientCredentials is the OAuth2 grant used for LTI service tokens.
	GrantTypeClientCredentials = "client_credentials"
	// ClientAssertionTypeJWTBearer is the RFC 7523 client_assertion_type value.
	ClientAssertionTypeJWTBearer = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
)

// Payload is the token endpoint request body. Field order is the order the
// report prints it in.
type Payload struct {
	GrantType           string `json:"grant_type"`
	ClientAssertionType string `json:"client_assertion_type"`
	ClientAssertion     string `json:"client_assertion"`
	Scope               string `json:"scope"`
}

// BuildPayload wraps a signed assertion into a client-credentials request.
// An empty scope list yields an empty scope, which some platforms read as
// "default scopes".
func BuildPayload(assertion string, scopes []string) Payload {
	return Payload{
		GrantType:           GrantTypeClientCredentials,
		ClientAssertionType: ClientAssertionTypeJWTBearer,
		ClientAssertion:     assertion,
		Scope:               strings.Join(scopes, " "),
	}
}

// Values returns the payload as form values.
func (p Payload) Values() url.Values {
	v := url.Values{}
	v.Set("grant_type", p.GrantType)
	v.Set("client_assertion_type", p.ClientAssertionType)
	v.Set("client_assertion", p.ClientAssertion)
	v.Set("scope", p.Scope)
	return v
}
