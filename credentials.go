package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Provider tags the external authority that vouches for an identity.
type Provider string

const (
	// ProviderAnonymous marks users that authenticate with an opaque
	// access token instead of an identity provider.
	ProviderAnonymous Provider = "ANONYMOUS"
	// ProviderInternetIdentity is the Internet Identity authority.
	ProviderInternetIdentity Provider = "INTERNET_IDENTITY"
	// ProviderGoogle is Google OAuth.
	ProviderGoogle Provider = "GOOGLE"
)

// IdentityCredential is the (provider, third party id) pair supplied
// by an identity-provider login. Immutable, single use per validation.
type IdentityCredential struct {
	Provider     Provider `json:"provider"`
	ThirdPartyID string   `json:"third_party_id"`
}

// Validate checks the credential is well formed before it reaches the
// directory.
func (c IdentityCredential) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Provider, validation.Required),
		validation.Field(&c.ThirdPartyID, validation.Required),
	)
}
