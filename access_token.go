package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	deriveIterations = 100_000
	deriveKeyLength  = 32
)

// DeriveAccessToken maps a raw anonymous access token and a configured
// salt to the hash stored in the user directory. Deterministic: the
// same (token, salt) pair always yields the same hash, which is used
// verbatim as the directory lookup key. The raw token is never stored.
func DeriveAccessToken(rawToken, salt string) string {
	key := pbkdf2.Key([]byte(rawToken), []byte(salt), deriveIterations, deriveKeyLength, sha256.New)
	return hex.EncodeToString(key)
}
