package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	auth "github.com/matejgerek/ghostfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type validatorFixture struct {
	secrets *MockSecretStore
	users   *MockUserDirectory
	signup  *MockSignupPolicy
	signer  *MockTokenSigner
}

func newValidatorFixture() (*auth.LoginValidator, *validatorFixture) {
	f := &validatorFixture{
		secrets: &MockSecretStore{},
		users:   &MockUserDirectory{},
		signup:  &MockSignupPolicy{},
		signer:  &MockTokenSigner{},
	}

	validator := auth.NewLoginValidator(f.secrets, f.users, f.signup, f.signer).
		WithLogger(&MockLogger{})

	return validator, f
}

func TestValidateAnonymousLogin(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("resolves owning user and signs its id", func(t *testing.T) {
		validator, f := newValidatorFixture()

		hashed := auth.DeriveAccessToken("test-token", "salt")

		f.secrets.On("Get", ctx, auth.SecretAccessTokenSalt).Return("salt", nil).Once()
		f.users.On("Find", ctx, auth.UserFilter{AccessTokenHash: hashed}).
			Return([]*auth.User{{ID: userID, AccessTokenHash: hashed}}, nil).Once()
		f.signer.On("SignClaims", mock.MatchedBy(func(claims *auth.SessionClaims) bool {
			return claims.UserID() == userID.String()
		})).Return("signed-token", nil).Once()

		token, err := validator.ValidateAnonymousLogin(ctx, "test-token")

		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		f.secrets.AssertExpectations(t)
		f.users.AssertExpectations(t)
		f.signer.AssertExpectations(t)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown token fails unauthenticated and never provisions", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.secrets.On("Get", ctx, auth.SecretAccessTokenSalt).Return("salt", nil).Once()
		f.users.On("Find", ctx, mock.Anything).Return([]*auth.User{}, nil).Once()

		token, err := validator.ValidateAnonymousLogin(ctx, "unknown-token")

		require.ErrorIs(t, err, auth.ErrUnauthenticated)
		assert.True(t, auth.IsUnauthenticated(err))
		assert.Empty(t, token)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.signer.AssertNotCalled(t, "SignClaims", mock.Anything)
		f.signup.AssertNotCalled(t, "IsSignupEnabled", mock.Anything)
	})

	t.Run("lookup key is the derived hash, verbatim", func(t *testing.T) {
		validator, f := newValidatorFixture()

		var captured auth.UserFilter
		f.secrets.On("Get", ctx, auth.SecretAccessTokenSalt).Return("pepper", nil).Once()
		f.users.On("Find", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(auth.UserFilter)
			}).
			Return([]*auth.User{}, nil).Once()

		_, err := validator.ValidateAnonymousLogin(ctx, "test-token")

		require.ErrorIs(t, err, auth.ErrUnauthenticated)
		assert.Equal(t, auth.DeriveAccessToken("test-token", "pepper"), captured.AccessTokenHash)
		assert.Empty(t, captured.Provider)
		assert.Empty(t, captured.ThirdPartyID)
	})

	t.Run("salt lookup failure propagates unmodified", func(t *testing.T) {
		validator, f := newValidatorFixture()

		boom := assert.AnError
		f.secrets.On("Get", ctx, auth.SecretAccessTokenSalt).Return("", boom).Once()

		_, err := validator.ValidateAnonymousLogin(ctx, "test-token")

		require.ErrorIs(t, err, boom)
		f.users.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("multiple matches for one hash is a conflict", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.secrets.On("Get", ctx, auth.SecretAccessTokenSalt).Return("salt", nil).Once()
		f.users.On("Find", ctx, mock.Anything).
			Return([]*auth.User{{ID: uuid.New()}, {ID: uuid.New()}}, nil).Once()

		_, err := validator.ValidateAnonymousLogin(ctx, "test-token")

		require.ErrorIs(t, err, auth.ErrIdentityConflict)
		f.signer.AssertNotCalled(t, "SignClaims", mock.Anything)
	})

	t.Run("directory failure propagates", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.secrets.On("Get", ctx, auth.SecretAccessTokenSalt).Return("salt", nil).Once()
		f.users.On("Find", ctx, mock.Anything).Return(nil, assert.AnError).Once()

		_, err := validator.ValidateAnonymousLogin(ctx, "test-token")

		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestValidateInternetIdentityLogin(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("existing identity signs without consulting policy", func(t *testing.T) {
		validator, f := newValidatorFixture()

		filter := auth.UserFilter{
			Provider:     auth.ProviderInternetIdentity,
			ThirdPartyID: "principal-1",
		}
		f.users.On("Find", ctx, filter).
			Return([]*auth.User{{ID: userID, Provider: auth.ProviderInternetIdentity, ThirdPartyID: "principal-1"}}, nil).Once()
		f.signer.On("SignClaims", mock.MatchedBy(func(claims *auth.SessionClaims) bool {
			return claims.UserID() == userID.String()
		})).Return("signed-token", nil).Once()

		token, err := validator.ValidateInternetIdentityLogin(ctx, "principal-1")

		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		f.signup.AssertNotCalled(t, "IsSignupEnabled", mock.Anything)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("provisions exactly once when signup is enabled", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.users.On("Find", ctx, mock.Anything).Return([]*auth.User{}, nil).Once()
		f.signup.On("IsSignupEnabled", ctx).Return(true, nil).Once()
		f.users.On("Create", ctx, mock.MatchedBy(func(record *auth.User) bool {
			return record.Provider == auth.ProviderInternetIdentity &&
				record.ThirdPartyID == "principal-1" &&
				record.AccessTokenHash == ""
		})).Return(&auth.User{
			ID:           userID,
			Provider:     auth.ProviderInternetIdentity,
			ThirdPartyID: "principal-1",
		}, nil).Once()
		f.signer.On("SignClaims", mock.MatchedBy(func(claims *auth.SessionClaims) bool {
			return claims.UserID() == userID.String()
		})).Return("signed-token", nil).Once()

		token, err := validator.ValidateInternetIdentityLogin(ctx, "principal-1")

		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		f.users.AssertExpectations(t)
		f.signup.AssertExpectations(t)
		f.signer.AssertExpectations(t)
	})

	t.Run("fails with signup disabled on unseen identity", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.users.On("Find", ctx, mock.Anything).Return([]*auth.User{}, nil).Once()
		f.signup.On("IsSignupEnabled", ctx).Return(false, nil).Once()

		token, err := validator.ValidateInternetIdentityLogin(ctx, "principal-1")

		require.ErrorIs(t, err, auth.ErrSignupDisabled)
		assert.True(t, auth.IsSignupDisabled(err))
		assert.Empty(t, token)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.signer.AssertNotCalled(t, "SignClaims", mock.Anything)
	})

	t.Run("policy failure propagates before any create", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.users.On("Find", ctx, mock.Anything).Return([]*auth.User{}, nil).Once()
		f.signup.On("IsSignupEnabled", ctx).Return(false, assert.AnError).Once()

		_, err := validator.ValidateInternetIdentityLogin(ctx, "principal-1")

		require.ErrorIs(t, err, assert.AnError)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create failure fails the whole validation", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.users.On("Find", ctx, mock.Anything).Return([]*auth.User{}, nil).Once()
		f.signup.On("IsSignupEnabled", ctx).Return(true, nil).Once()
		f.users.On("Create", ctx, mock.Anything).Return(nil, assert.AnError).Once()

		_, err := validator.ValidateInternetIdentityLogin(ctx, "principal-1")

		require.ErrorIs(t, err, assert.AnError)
		f.signer.AssertNotCalled(t, "SignClaims", mock.Anything)
	})

	t.Run("empty principal is rejected before the directory", func(t *testing.T) {
		validator, f := newValidatorFixture()

		_, err := validator.ValidateInternetIdentityLogin(ctx, "")

		require.Error(t, err)
		f.users.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})
}

func TestValidateOAuthLogin(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	credential := auth.IdentityCredential{
		Provider:     auth.ProviderGoogle,
		ThirdPartyID: "google-uid-1",
	}

	t.Run("lookup filter mirrors the credential", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.users.On("Find", ctx, auth.UserFilter{
			Provider:     auth.ProviderGoogle,
			ThirdPartyID: "google-uid-1",
		}).Return([]*auth.User{{ID: userID}}, nil).Once()
		f.signer.On("SignClaims", mock.Anything).Return("signed-token", nil).Once()

		token, err := validator.ValidateOAuthLogin(ctx, credential)

		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		f.users.AssertExpectations(t)
	})

	t.Run("creation payload is the credential verbatim", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.users.On("Find", ctx, mock.Anything).Return([]*auth.User{}, nil).Once()
		f.signup.On("IsSignupEnabled", ctx).Return(true, nil).Once()

		var created *auth.User
		f.users.On("Create", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*auth.User)
			}).
			Return(&auth.User{ID: userID, Provider: credential.Provider, ThirdPartyID: credential.ThirdPartyID}, nil).Once()
		f.signer.On("SignClaims", mock.Anything).Return("signed-token", nil).Once()

		_, err := validator.ValidateOAuthLogin(ctx, credential)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, credential.Provider, created.Provider)
		assert.Equal(t, credential.ThirdPartyID, created.ThirdPartyID)
	})

	t.Run("signup disabled closes the path", func(t *testing.T) {
		validator, f := newValidatorFixture()

		f.users.On("Find", ctx, mock.Anything).Return([]*auth.User{}, nil).Once()
		f.signup.On("IsSignupEnabled", ctx).Return(false, nil).Once()

		_, err := validator.ValidateOAuthLogin(ctx, credential)

		require.ErrorIs(t, err, auth.ErrSignupDisabled)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("incomplete credential never reaches the directory", func(t *testing.T) {
		validator, f := newValidatorFixture()

		_, err := validator.ValidateOAuthLogin(ctx, auth.IdentityCredential{Provider: auth.ProviderGoogle})

		require.Error(t, err)
		f.users.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})
}

func TestValidateLoginClaimsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	validator, f := newValidatorFixture()

	hashed := auth.DeriveAccessToken("test-token", "salt")
	f.secrets.On("Get", ctx, auth.SecretAccessTokenSalt).Return("salt", nil).Twice()
	f.users.On("Find", ctx, auth.UserFilter{AccessTokenHash: hashed}).
		Return([]*auth.User{{ID: userID, AccessTokenHash: hashed}}, nil).Twice()

	var claims []*auth.SessionClaims
	f.signer.On("SignClaims", mock.Anything).
		Run(func(args mock.Arguments) {
			claims = append(claims, args.Get(0).(*auth.SessionClaims))
		}).
		Return("signed-token", nil).Twice()

	_, err := validator.ValidateAnonymousLogin(ctx, "test-token")
	require.NoError(t, err)
	_, err = validator.ValidateAnonymousLogin(ctx, "test-token")
	require.NoError(t, err)

	require.Len(t, claims, 2)
	assert.Equal(t, claims[0].UserID(), claims[1].UserID())
	assert.Equal(t, userID.String(), claims[0].UserID())
}
