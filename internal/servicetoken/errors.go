package servicetoken

import "errors"

// Service token errors
var (
	// ErrKeyFormat is returned when PEM material cannot be parsed or is not an RSA key.
	ErrKeyFormat = errors.New("invalid key format")
	// ErrSigning is returned when the signing library fails to produce a signature.
	ErrSigning = errors.New("failed to sign assertion")
	// ErrInvalidArgument is returned for non-positive expirations or timeouts and
	// other unusable inputs.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNetwork is returned when the token endpoint cannot be reached at all.
	// HTTP error statuses are not network errors.
	ErrNetwork = errors.New("token endpoint unreachable")

	// ErrKeyIDMismatch is returned by VerifyAssertion when the header kid does
	// not belong to the verifying key.
	ErrKeyIDMismatch = errors.New("assertion kid does not match public key")
)
