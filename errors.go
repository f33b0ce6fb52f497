package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeUnauthenticated  = "AUTH_UNAUTHENTICATED"
	TextCodeSignupDisabled   = "AUTH_SIGNUP_DISABLED"
	TextCodeIdentityConflict = "AUTH_IDENTITY_CONFLICT"
)

// ErrUnauthenticated is returned when an anonymous access token does
// not resolve to any user. We deliberately say nothing beyond
// "invalid" so the response neither confirms nor denies that a given
// token exists.
var ErrUnauthenticated = errors.New("unauthenticated", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrSignupDisabled is returned when an identity-provider credential
// has no matching user and self-registration is turned off. Distinct
// from a not-found failure: the path is deliberately closed.
var ErrSignupDisabled = errors.New("sign up is disabled", errors.CategoryAuth).
	WithTextCode(TextCodeSignupDisabled).
	WithCode(errors.CodeForbidden)

// ErrIdentityConflict is returned when a unique-key lookup yields more
// than one user row. That is a directory integrity fault; the
// validator never silently picks a record.
var ErrIdentityConflict = errors.New("identity resolves to multiple users", errors.CategoryConflict).
	WithTextCode(TextCodeIdentityConflict).
	WithCode(errors.CodeConflict)

// IsUnauthenticated will check for the unauthenticated login error
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsSignupDisabled will check for the closed-signup policy error
func IsSignupDisabled(err error) bool {
	return errors.Is(err, ErrSignupDisabled)
}
