package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"nutrilog/internal/domain"
)

type memCreds struct {
	vals map[string]string
	err  error
}

func newMemCreds() *memCreds {
	return &memCreds{vals: map[string]string{}}
}

func (m *memCreds) Get(_ context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.vals[key]
	if !ok {
		return "", domain.ErrCredentialNotFound
	}
	return v, nil
}

func (m *memCreds) Set(_ context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.vals[key] = value
	return nil
}

func (m *memCreds) Delete(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.vals, key)
	return nil
}

type biometricMock struct {
	AvailableFn    func(ctx context.Context) bool
	AuthenticateFn func(ctx context.Context) error
}

func (m *biometricMock) Available(ctx context.Context) bool {
	if m.AvailableFn == nil {
		return false
	}
	return m.AvailableFn(ctx)
}

func (m *biometricMock) Authenticate(ctx context.Context) error {
	if m.AuthenticateFn == nil {
		return errors.New("unexpected Authenticate call")
	}
	return m.AuthenticateFn(ctx)
}

type snapshotMock struct {
	ExportAllFn func(ctx context.Context) (domain.SnapshotData, error)
	ImportAllFn func(ctx context.Context, data domain.SnapshotData, overwrite bool) error
	ClearAllFn  func(ctx context.Context) error
}

func (m *snapshotMock) ExportAll(ctx context.Context) (domain.SnapshotData, error) {
	return m.ExportAllFn(ctx)
}

func (m *snapshotMock) ImportAll(ctx context.Context, data domain.SnapshotData, overwrite bool) error {
	return m.ImportAllFn(ctx, data, overwrite)
}

func (m *snapshotMock) ClearAll(ctx context.Context) error {
	return m.ClearAllFn(ctx)
}

type guardClock struct {
	t time.Time
}

func (c *guardClock) Now() time.Time { return c.t }

func (c *guardClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGuard(creds domain.CredentialStore, bio domain.Biometric, snap domain.SnapshotRepository) (*SessionGuard, *guardClock) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := NewSessionGuard(creds, bio, snap, log)
	clk := &guardClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	g.now = clk.Now
	return g, clk
}

func TestSetPinValidation(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		confirm string
	}{
		{"too short", "123", "123"},
		{"too long", "1234567", "1234567"},
		{"non-digit", "12a4", "12a4"},
		{"confirmation mismatch", "1234", "4321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := newMemCreds()
			g, _ := newTestGuard(creds, &biometricMock{}, &snapshotMock{})

			err := g.SetPin(context.Background(), tt.pin, tt.confirm)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := creds.vals[domain.CredPinHash]; ok {
				t.Error("invalid PIN must not be stored")
			}
		})
	}
}

func TestSetPinAuthenticates(t *testing.T) {
	creds := newMemCreds()
	g, _ := newTestGuard(creds, &biometricMock{}, &snapshotMock{})

	if err := g.SetPin(context.Background(), "1234", "1234"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	if got := g.State(); got != StateAuthenticated {
		t.Errorf("state after SetPin = %v, want %v", got, StateAuthenticated)
	}

	hash, ok := creds.vals[domain.CredPinHash]
	if !ok {
		t.Fatal("pin hash not stored")
	}
	if hash == "1234" {
		t.Error("PIN stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("1234")); err != nil {
		t.Errorf("stored hash does not verify the PIN: %v", err)
	}
}

func TestVerifyPinWrongThenCorrect(t *testing.T) {
	creds := newMemCreds()
	g, _ := newTestGuard(creds, &biometricMock{}, &snapshotMock{})
	ctx := context.Background()

	if err := g.SetPin(ctx, "1234", "1234"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	g.Logout()

	err := g.VerifyPin(ctx, "9999")
	if !errors.Is(err, ErrPinMismatch) {
		t.Fatalf("wrong PIN: got %v, want ErrPinMismatch", err)
	}
	if got := g.RemainingAttempts(); got != maxPinAttempts-1 {
		t.Errorf("RemainingAttempts = %d, want %d", got, maxPinAttempts-1)
	}
	if creds.vals[domain.CredFailedAttempts] != "1" {
		t.Errorf("persisted attempts = %q, want %q", creds.vals[domain.CredFailedAttempts], "1")
	}

	if err := g.VerifyPin(ctx, "1234"); err != nil {
		t.Fatalf("correct PIN: %v", err)
	}
	if got := g.State(); got != StateAuthenticated {
		t.Errorf("state = %v, want %v", got, StateAuthenticated)
	}
	if got := g.RemainingAttempts(); got != maxPinAttempts {
		t.Errorf("RemainingAttempts after success = %d, want %d", got, maxPinAttempts)
	}
	if _, ok := creds.vals[domain.CredFailedAttempts]; ok {
		t.Error("attempt counter not cleared after success")
	}
}

func TestVerifyPinWithoutSetup(t *testing.T) {
	g, _ := newTestGuard(newMemCreds(), &biometricMock{}, &snapshotMock{})

	if err := g.VerifyPin(context.Background(), "1234"); !errors.Is(err, ErrPinNotSet) {
		t.Errorf("got %v, want ErrPinNotSet", err)
	}
}

func TestLockoutAfterMaxAttempts(t *testing.T) {
	creds := newMemCreds()
	g, clk := newTestGuard(creds, &biometricMock{}, &snapshotMock{})
	ctx := context.Background()

	if err := g.SetPin(ctx, "1234", "1234"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	g.Logout()

	for i := 0; i < maxPinAttempts; i++ {
		err := g.VerifyPin(ctx, "0000")
		if err == nil {
			t.Fatalf("attempt %d: expected error", i+1)
		}
	}
	if got := g.State(); got != StateLocked {
		t.Fatalf("state after %d failures = %v, want %v", maxPinAttempts, got, StateLocked)
	}
	if got := g.RemainingLockout(); got != lockoutDuration {
		t.Errorf("RemainingLockout = %v, want %v", got, lockoutDuration)
	}

	// An attempt while locked is denied, even with the correct PIN, and
	// must not consume another slot.
	if err := g.VerifyPin(ctx, "1234"); !errors.Is(err, ErrLocked) {
		t.Fatalf("locked attempt: got %v, want ErrLocked", err)
	}
	if creds.vals[domain.CredFailedAttempts] != "5" {
		t.Errorf("locked attempt changed counter to %q", creds.vals[domain.CredFailedAttempts])
	}

	clk.Advance(lockoutDuration)

	if err := g.VerifyPin(ctx, "1234"); err != nil {
		t.Fatalf("correct PIN after cooldown: %v", err)
	}
	if got := g.State(); got != StateAuthenticated {
		t.Errorf("state = %v, want %v", got, StateAuthenticated)
	}
	if got := g.RemainingAttempts(); got != maxPinAttempts {
		t.Errorf("RemainingAttempts = %d, want %d", got, maxPinAttempts)
	}
}

func TestWrongPinAfterCooldownRelocks(t *testing.T) {
	creds := newMemCreds()
	g, clk := newTestGuard(creds, &biometricMock{}, &snapshotMock{})
	ctx := context.Background()

	if err := g.SetPin(ctx, "1234", "1234"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	g.Logout()

	for i := 0; i < maxPinAttempts; i++ {
		_ = g.VerifyPin(ctx, "0000")
	}
	clk.Advance(lockoutDuration + time.Second)

	// The cooldown has expired but the counter is still at the ceiling; a
	// fresh failure re-anchors a full lockout window.
	if err := g.VerifyPin(ctx, "0000"); !errors.Is(err, ErrLocked) {
		t.Fatalf("got %v, want ErrLocked", err)
	}
	if got := g.RemainingLockout(); got != lockoutDuration {
		t.Errorf("RemainingLockout = %v, want %v", got, lockoutDuration)
	}
}

func TestLockoutSurvivesRestart(t *testing.T) {
	creds := newMemCreds()
	g, clk := newTestGuard(creds, &biometricMock{}, &snapshotMock{})
	ctx := context.Background()

	if err := g.SetPin(ctx, "1234", "1234"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	g.Logout()
	for i := 0; i < maxPinAttempts; i++ {
		_ = g.VerifyPin(ctx, "0000")
	}

	// Same credential store, fresh guard: the lockout must carry over.
	g2, _ := newTestGuard(creds, &biometricMock{}, &snapshotMock{})
	g2.now = clk.Now
	if got := g2.Initialize(ctx); got != StateLocked {
		t.Errorf("state after restart = %v, want %v", got, StateLocked)
	}

	clk.Advance(lockoutDuration)
	g3, _ := newTestGuard(creds, &biometricMock{}, &snapshotMock{})
	g3.now = clk.Now
	if got := g3.Initialize(ctx); got != StateAwaitingPinEntry {
		t.Errorf("state after cooldown restart = %v, want %v", got, StateAwaitingPinEntry)
	}
}

func TestInitializeStates(t *testing.T) {
	ctx := context.Background()

	t.Run("no pin configured", func(t *testing.T) {
		g, _ := newTestGuard(newMemCreds(), &biometricMock{}, &snapshotMock{})
		if got := g.Initialize(ctx); got != StateAwaitingPinSetup {
			t.Errorf("got %v, want %v", got, StateAwaitingPinSetup)
		}
	})

	t.Run("pin configured", func(t *testing.T) {
		creds := newMemCreds()
		creds.vals[domain.CredPinHash] = "$2a$10$abcdefghijklmnopqrstuv"
		g, _ := newTestGuard(creds, &biometricMock{}, &snapshotMock{})
		if got := g.Initialize(ctx); got != StateAwaitingPinEntry {
			t.Errorf("got %v, want %v", got, StateAwaitingPinEntry)
		}
	})

	t.Run("credential store failing", func(t *testing.T) {
		creds := newMemCreds()
		creds.err = errors.New("keychain unavailable")
		g, _ := newTestGuard(creds, &biometricMock{}, &snapshotMock{})
		if got := g.Initialize(ctx); got != StateAwaitingPinEntry {
			t.Errorf("got %v, want %v", got, StateAwaitingPinEntry)
		}
	})
}

func TestBiometricRequiresCapabilityAndOptIn(t *testing.T) {
	ctx := context.Background()
	authenticated := false
	bio := &biometricMock{
		AvailableFn:    func(context.Context) bool { return true },
		AuthenticateFn: func(context.Context) error { authenticated = true; return nil },
	}

	creds := newMemCreds()
	g, _ := newTestGuard(creds, bio, &snapshotMock{})

	// Capable hardware but no opt-in: not offered.
	if g.BiometricOffered(ctx) {
		t.Error("offered without opt-in")
	}
	if err := g.AuthenticateWithBiometric(ctx); !errors.Is(err, ErrBiometricUnavailable) {
		t.Fatalf("got %v, want ErrBiometricUnavailable", err)
	}
	if authenticated {
		t.Fatal("platform API called without opt-in")
	}

	if err := g.SetBiometricEnabled(ctx, true); err != nil {
		t.Fatalf("SetBiometricEnabled: %v", err)
	}
	if !g.BiometricOffered(ctx) {
		t.Error("not offered with capability and opt-in")
	}
	if err := g.AuthenticateWithBiometric(ctx); err != nil {
		t.Fatalf("AuthenticateWithBiometric: %v", err)
	}
	if got := g.State(); got != StateAuthenticated {
		t.Errorf("state = %v, want %v", got, StateAuthenticated)
	}

	// Opt-in without capability: not offered either.
	bio.AvailableFn = func(context.Context) bool { return false }
	if g.BiometricOffered(ctx) {
		t.Error("offered without hardware capability")
	}
}

func TestBiometricOptInSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	creds := newMemCreds()
	creds.vals[domain.CredPinHash] = "$2a$10$abcdefghijklmnopqrstuv"
	bio := &biometricMock{AvailableFn: func(context.Context) bool { return true }}

	g, _ := newTestGuard(creds, bio, &snapshotMock{})
	g.Initialize(ctx)
	if err := g.SetBiometricEnabled(ctx, true); err != nil {
		t.Fatalf("SetBiometricEnabled: %v", err)
	}

	g2, _ := newTestGuard(creds, bio, &snapshotMock{})
	g2.Initialize(ctx)
	if !g2.BiometricOffered(ctx) {
		t.Error("opt-in flag lost across restart")
	}
}

func TestResetRequiresFailures(t *testing.T) {
	ctx := context.Background()
	creds := newMemCreds()
	cleared := false
	snap := &snapshotMock{ClearAllFn: func(context.Context) error { cleared = true; return nil }}
	g, _ := newTestGuard(creds, &biometricMock{}, snap)

	if err := g.SetPin(ctx, "1234", "1234"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	g.Logout()

	if err := g.Reset(ctx); !errors.Is(err, ErrResetNotAllowed) {
		t.Fatalf("got %v, want ErrResetNotAllowed", err)
	}
	if cleared {
		t.Fatal("store wiped before the reset was allowed")
	}

	for i := 0; i < resetThreshold; i++ {
		_ = g.VerifyPin(ctx, "0000")
	}
	if !g.ResetOffered() {
		t.Fatalf("reset not offered after %d failures", resetThreshold)
	}

	if err := g.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !cleared {
		t.Error("record store not wiped")
	}
	if len(creds.vals) != 0 {
		t.Errorf("credentials remain after reset: %v", creds.vals)
	}
	if got := g.State(); got != StateAwaitingPinSetup {
		t.Errorf("state = %v, want %v", got, StateAwaitingPinSetup)
	}

	// The guard is back at setup; a new PIN works from scratch.
	if err := g.SetPin(ctx, "5678", "5678"); err != nil {
		t.Fatalf("SetPin after reset: %v", err)
	}
}

func TestLogout(t *testing.T) {
	g, _ := newTestGuard(newMemCreds(), &biometricMock{}, &snapshotMock{})
	ctx := context.Background()

	if err := g.SetPin(ctx, "1234", "1234"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	g.Logout()
	if got := g.State(); got != StateAwaitingPinEntry {
		t.Errorf("state = %v, want %v", got, StateAwaitingPinEntry)
	}

	// Logout outside an authenticated session is a no-op.
	g.Logout()
	if got := g.State(); got != StateAwaitingPinEntry {
		t.Errorf("state = %v, want %v", got, StateAwaitingPinEntry)
	}
}
