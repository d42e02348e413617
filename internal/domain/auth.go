package domain

import (
	"context"
	"errors"
)

// Credential keys stored through the secure-credential tier.
const (
	CredPinHash          = "pin_hash"
	CredFailedAttempts   = "pin_failed_attempts"
	CredLastFailedAt     = "pin_last_failed_at"
	CredLastAttemptAt    = "pin_last_attempt_at"
	CredBiometricEnabled = "biometric_enabled"
)

// ErrCredentialNotFound indicates that no value is stored under a key.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialStore is the port for the platform secure-credential
// mechanism. Implementations must bound every call and fall back to a
// less secure tier rather than blocking the caller; the fallback is a
// logged, degraded-security condition, not an error.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Biometric is the port for the platform biometric API. Available
// reports hardware capability plus enrollment; the user opt-in flag is
// tracked separately by the session guard.
type Biometric interface {
	Available(ctx context.Context) bool
	Authenticate(ctx context.Context) error
}
