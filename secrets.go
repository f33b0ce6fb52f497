package auth

import (
	"context"
	"os"

	"github.com/goliatone/go-errors"
)

// EnvSecretStore resolves secrets from the process environment,
// optionally under a prefix (e.g. "GHOSTFOLIO_").
type EnvSecretStore struct {
	Prefix string
}

var _ SecretStore = (*EnvSecretStore)(nil)

func (s EnvSecretStore) Get(ctx context.Context, key SecretKey) (string, error) {
	name := s.Prefix + key
	val, ok := os.LookupEnv(name)
	if !ok || val == "" {
		return "", errors.New("secret is not configured: "+name, errors.CategoryInternal).
			WithCode(errors.CodeInternal)
	}
	return val, nil
}

// StaticSecretStore serves secrets from a fixed map. Used by tests and
// embedders that already hold configuration in memory.
type StaticSecretStore map[SecretKey]string

var _ SecretStore = (StaticSecretStore)(nil)

func (s StaticSecretStore) Get(ctx context.Context, key SecretKey) (string, error) {
	if val, ok := s[key]; ok && val != "" {
		return val, nil
	}
	return "", errors.New("secret is not configured: "+key, errors.CategoryInternal).
		WithCode(errors.CodeInternal)
}
