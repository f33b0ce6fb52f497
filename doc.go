// Package auth implements Ghostfolio's authentication decision core:
// given a credential (anonymous access token, Internet Identity
// principal, or OAuth provider identity) it decides whether a session
// may be established, provisions a user record when the signup gate is
// open, and issues a signed session token.
//
// Collaborators:
//   - SecretStore resolves configured secrets, most importantly the
//     salt used to derive anonymous access token hashes.
//   - UserDirectory is the persistence boundary for user records; the
//     validator only reads and creates, it never mutates or deletes.
//   - SignupPolicy gates just-in-time provisioning of unseen
//     identity-provider credentials. FeatureGateSignupPolicy adapts a
//     go-featuregate gate; StaticSignupPolicy answers from a constant.
//   - TokenSigner maps session claims to an opaque signed string.
//     TokenService is the HS256 JWT implementation.
//
// All four are constructor-injected interfaces so each can be swapped
// independently in tests. LoginValidator holds no other state; calls
// are independent units of work and may run concurrently. Uniqueness
// of user records under concurrent provisioning is enforced by the
// directory's constraints, not by the validator.
package auth
