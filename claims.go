package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the minimal claim set embedded in issued session
// tokens: the user id, mirrored into the registered subject. Expiry,
// issuer, and audience are stamped by the signer, not by callers.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID string `json:"id,omitempty"`
}

// NewSessionClaims builds claims for the given user id.
func NewSessionClaims(userID string) *SessionClaims {
	return &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
		UID: userID,
	}
}

// UserID returns the user id the token re-identifies downstream.
func (c *SessionClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}
