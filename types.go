package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// SecretKey identifies a configured secret in a SecretStore.
type SecretKey = string

// SecretAccessTokenSalt resolves the salt used by DeriveAccessToken.
const SecretAccessTokenSalt SecretKey = "ACCESS_TOKEN_SALT"

// SecretStore resolves configured secrets such as the access token salt.
type SecretStore interface {
	Get(ctx context.Context, key SecretKey) (string, error)
}

// UserFilter selects users by exactly one unique key set: the access
// token hash, or the (provider, third party id) pair.
type UserFilter struct {
	AccessTokenHash string
	Provider        Provider
	ThirdPartyID    string
}

// UserDirectory is the store the validator resolves users against.
type UserDirectory interface {
	Find(ctx context.Context, filter UserFilter) ([]*User, error)
	Create(ctx context.Context, record *User) (*User, error)
}

// SignupPolicy decides whether unseen identity-provider credentials may
// be provisioned into new user records at login time.
type SignupPolicy interface {
	IsSignupEnabled(ctx context.Context) (bool, error)
}

// TokenSigner maps session claims to an opaque signed token. Lifetime
// and validity of the signed token belong entirely to the signer.
type TokenSigner interface {
	SignClaims(claims *SessionClaims) (string, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
