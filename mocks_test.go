package auth_test

import (
	"context"

	auth "github.com/matejgerek/ghostfolio"
	"github.com/stretchr/testify/mock"
)

// MockSecretStore implements auth.SecretStore
type MockSecretStore struct {
	mock.Mock
}

func (m *MockSecretStore) Get(ctx context.Context, key auth.SecretKey) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// MockUserDirectory implements auth.UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) Find(ctx context.Context, filter auth.UserFilter) ([]*auth.User, error) {
	args := m.Called(ctx, filter)
	var users []*auth.User
	if v := args.Get(0); v != nil {
		users = v.([]*auth.User)
	}
	return users, args.Error(1)
}

func (m *MockUserDirectory) Create(ctx context.Context, record *auth.User) (*auth.User, error) {
	args := m.Called(ctx, record)
	var user *auth.User
	if v := args.Get(0); v != nil {
		user = v.(*auth.User)
	}
	return user, args.Error(1)
}

// MockSignupPolicy implements auth.SignupPolicy
type MockSignupPolicy struct {
	mock.Mock
}

func (m *MockSignupPolicy) IsSignupEnabled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockTokenSigner implements auth.TokenSigner
type MockTokenSigner struct {
	mock.Mock
}

func (m *MockTokenSigner) SignClaims(claims *auth.SessionClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

// MockLogger implements auth.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {}
func (m *MockLogger) Info(format string, args ...any)  {}
func (m *MockLogger) Warn(format string, args ...any)  {}
func (m *MockLogger) Error(format string, args ...any) {}
