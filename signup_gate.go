package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-featuregate/gate/guard"
)

// FeatureGateSignupPolicy adapts a feature gate to the SignupPolicy
// consumed by LoginValidator. The gate key defaults to
// gate.FeatureUsersSignup.
type FeatureGateSignupPolicy struct {
	featureGate gate.FeatureGate
	key         string
}

var _ SignupPolicy = (*FeatureGateSignupPolicy)(nil)

// NewFeatureGateSignupPolicy wraps a feature gate; pass a key to gate
// signup on a non-default feature.
func NewFeatureGateSignupPolicy(featureGate gate.FeatureGate, key ...string) *FeatureGateSignupPolicy {
	k := gate.FeatureUsersSignup
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}
	return &FeatureGateSignupPolicy{featureGate: featureGate, key: k}
}

// IsSignupEnabled implements SignupPolicy. A gate resolution failure is
// a collaborator fault and surfaces as an error, never as "disabled".
func (p *FeatureGateSignupPolicy) IsSignupEnabled(ctx context.Context) (bool, error) {
	if p == nil || p.featureGate == nil {
		return false, nil
	}

	enabled, err := p.featureGate.Enabled(ctx, p.key)
	if err != nil {
		return false, normalizeFeatureGateError(err)
	}

	return enabled, nil
}

// StaticSignupPolicy answers from a fixed value.
type StaticSignupPolicy bool

var _ SignupPolicy = (StaticSignupPolicy)(false)

func (p StaticSignupPolicy) IsSignupEnabled(ctx context.Context) (bool, error) {
	return bool(p), nil
}

func normalizeFeatureGateError(err error) error {
	if err == nil {
		return nil
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return err
	}

	return errors.Wrap(err, errors.CategoryAuthz, "Feature gate check failed").
		WithCode(errors.CodeForbidden)
}

// requireSignupGate fails with ErrSignupDisabled when the signup gate
// is closed. A nil gate means no gating.
func requireSignupGate(ctx context.Context, featureGate gate.FeatureGate, key string) error {
	if featureGate == nil {
		return nil
	}
	if key == "" {
		key = gate.FeatureUsersSignup
	}
	return guard.Require(ctx, featureGate, key,
		guard.WithDisabledError(ErrSignupDisabled),
		guard.WithErrorMapper(normalizeFeatureGateError),
	)
}
