package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// LoginValidator decides whether a session may be established for a
// credential and issues the signed session token. It holds no state
// beyond its collaborators, so calls are independent and may run
// concurrently; uniqueness under racing provisioning is the
// directory's responsibility.
type LoginValidator struct {
	secrets SecretStore
	users   UserDirectory
	signup  SignupPolicy
	signer  TokenSigner
	logger  Logger
}

// NewLoginValidator wires the four collaborators. They are treated as
// read-only for the validator's lifetime.
func NewLoginValidator(secrets SecretStore, users UserDirectory, signup SignupPolicy, signer TokenSigner) *LoginValidator {
	return &LoginValidator{
		secrets: secrets,
		users:   users,
		signup:  signup,
		signer:  signer,
		logger:  defLogger{},
	}
}

func (v *LoginValidator) WithLogger(logger Logger) *LoginValidator {
	if logger != nil {
		v.logger = logger
	}
	return v
}

// ValidateAnonymousLogin resolves a raw anonymous access token to its
// owning user and returns a signed session token. Anonymous tokens are
// pre-existing grants issued out of band: no user is ever provisioned
// on this path, and a token that matches nothing fails with
// ErrUnauthenticated.
func (v *LoginValidator) ValidateAnonymousLogin(ctx context.Context, rawToken string) (string, error) {
	salt, err := v.secrets.Get(ctx, SecretAccessTokenSalt)
	if err != nil {
		v.logger.Error("ValidateAnonymousLogin salt lookup failed", "error", err)
		return "", err
	}

	hashedToken := DeriveAccessToken(rawToken, salt)

	user, err := v.resolveUnique(ctx, UserFilter{AccessTokenHash: hashedToken})
	if err != nil {
		return "", err
	}

	if user == nil {
		v.logger.Info("ValidateAnonymousLogin no user for presented token")
		return "", ErrUnauthenticated
	}

	return v.sign(user)
}

// ValidateInternetIdentityLogin resolves an Internet Identity
// principal to a user, provisioning one when the signup gate is open,
// and returns a signed session token.
func (v *LoginValidator) ValidateInternetIdentityLogin(ctx context.Context, principalID string) (string, error) {
	return v.validateIdentityLogin(ctx, IdentityCredential{
		Provider:     ProviderInternetIdentity,
		ThirdPartyID: principalID,
	})
}

// ValidateOAuthLogin is ValidateInternetIdentityLogin parameterized by
// an arbitrary provider tag.
func (v *LoginValidator) ValidateOAuthLogin(ctx context.Context, credential IdentityCredential) (string, error) {
	return v.validateIdentityLogin(ctx, credential)
}

// validateIdentityLogin is the shared lookup, create-if-allowed, sign
// algorithm behind both identity-provider paths.
func (v *LoginValidator) validateIdentityLogin(ctx context.Context, credential IdentityCredential) (string, error) {
	if err := credential.Validate(); err != nil {
		return "", errors.Wrap(err, errors.CategoryBadInput, "invalid identity credential").
			WithCode(errors.CodeBadRequest)
	}

	user, err := v.resolveUnique(ctx, UserFilter{
		Provider:     credential.Provider,
		ThirdPartyID: credential.ThirdPartyID,
	})
	if err != nil {
		return "", err
	}

	if user == nil {
		enabled, err := v.signup.IsSignupEnabled(ctx)
		if err != nil {
			v.logger.Error("validateIdentityLogin signup policy check failed", "error", err)
			return "", err
		}

		if !enabled {
			v.logger.Info("validateIdentityLogin rejected unseen identity, signup disabled",
				"provider", credential.Provider)
			return "", ErrSignupDisabled
		}

		if user, err = v.users.Create(ctx, &User{
			Provider:     credential.Provider,
			ThirdPartyID: credential.ThirdPartyID,
		}); err != nil {
			v.logger.Error("validateIdentityLogin create user failed", "error", err)
			return "", err
		}
	}

	return v.sign(user)
}

// resolveUnique queries the directory and enforces the unique-key
// invariant: nil when nothing matched, ErrIdentityConflict when the
// directory holds more than one row for the key.
func (v *LoginValidator) resolveUnique(ctx context.Context, filter UserFilter) (*User, error) {
	users, err := v.users.Find(ctx, filter)
	if err != nil {
		v.logger.Error("LoginValidator directory lookup failed", "error", err)
		return nil, err
	}

	switch len(users) {
	case 0:
		return nil, nil
	case 1:
		return users[0], nil
	default:
		v.logger.Error("LoginValidator unique lookup returned multiple users", "count", len(users))
		return nil, ErrIdentityConflict
	}
}

func (v *LoginValidator) sign(user *User) (string, error) {
	token, err := v.signer.SignClaims(NewSessionClaims(user.ID.String()))
	if err != nil {
		v.logger.Error("LoginValidator sign claims failed", "error", err)
		return "", err
	}
	return token, nil
}
