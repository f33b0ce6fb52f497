package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

// ProvisionIdentityMessage creates a user record for an identity
// provider credential ahead of any login, e.g. operator driven
// onboarding or a migration backfill. Login-time provisioning lives in
// LoginValidator; this command gives out-of-band flows the same gate
// and uniqueness discipline.
type ProvisionIdentityMessage struct {
	Provider     Provider `json:"provider"`
	ThirdPartyID string   `json:"third_party_id"`
	Role         UserRole `json:"role"`
	UseHashid    bool
}

func (e ProvisionIdentityMessage) Type() string { return "user.provision_identity" }

type ProvisionIdentityHandler struct {
	repo        RepositoryManager
	featureGate gate.FeatureGate
	gateKey     string
}

func NewProvisionIdentityHandler(repo RepositoryManager) *ProvisionIdentityHandler {
	return &ProvisionIdentityHandler{repo: repo}
}

// WithFeatureGate gates provisioning on the signup feature; pass a key
// to gate on a non-default feature.
func (h *ProvisionIdentityHandler) WithFeatureGate(featureGate gate.FeatureGate, key ...string) *ProvisionIdentityHandler {
	h.featureGate = featureGate
	if len(key) > 0 {
		h.gateKey = key[0]
	}
	return h
}

func (h *ProvisionIdentityHandler) Execute(ctx context.Context, event ProvisionIdentityMessage) error {
	if err := requireSignupGate(ctx, h.featureGate, h.gateKey); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during identity provisioning",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ProvisionIdentityHandler) execute(ctx context.Context, event ProvisionIdentityMessage) error {
	credential := IdentityCredential{Provider: event.Provider, ThirdPartyID: event.ThirdPartyID}
	if err := credential.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid identity credential")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing, err := h.repo.Users().FindTx(ctx, tx, UserFilter{
			Provider:     event.Provider,
			ThirdPartyID: event.ThirdPartyID,
		})
		if err != nil {
			return err
		}

		if len(existing) > 0 {
			return goerrors.New("identity already provisioned", goerrors.CategoryConflict).
				WithCode(goerrors.CodeConflict)
		}

		user := &User{
			Provider:     event.Provider,
			ThirdPartyID: event.ThirdPartyID,
			Role:         event.Role,
		}

		if event.UseHashid {
			if id, err := hashid.NewUUID(string(event.Provider) + ":" + event.ThirdPartyID); err == nil {
				user.ID = id
			}
		}

		if _, err = h.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "identity provisioning transaction failed")
	}

	return nil
}
