package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"nutrilog/internal/domain"
)

// GuardState is the explicit state of the session guard machine.
type GuardState int

const (
	StateUninitialized GuardState = iota
	StateAwaitingPinSetup
	StateAwaitingPinEntry
	StateAuthenticated
	StateLocked
)

func (s GuardState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAwaitingPinSetup:
		return "awaiting-pin-setup"
	case StateAwaitingPinEntry:
		return "awaiting-pin-entry"
	case StateAuthenticated:
		return "authenticated"
	case StateLocked:
		return "locked"
	}
	return "unknown"
}

const (
	maxPinAttempts  = 5
	resetThreshold  = 3
	lockoutDuration = 5 * time.Minute
	pinMinLen       = 4
	pinMaxLen       = 6

	// initTimeout bounds startup: the guard must reach a decidable state
	// within a few seconds even when the credential tier stalls.
	initTimeout = 3 * time.Second
)

// SessionGuard gates access to the record store behind a local PIN with
// an optional biometric shortcut. The attempt counter and last-failure
// time are persisted, so the lockout survives a process restart.
//
// The PIN is stored as a bcrypt hash. The original scheme this replaces
// was a trivial reversible integer hash; the switch to a slow salted
// hash is a deliberate hardening and changes the stored credential
// format.
type SessionGuard struct {
	creds domain.CredentialStore
	bio   domain.Biometric
	snap  domain.SnapshotRepository
	log   *slog.Logger

	// now is overridable in tests.
	now func() time.Time

	mu               sync.Mutex
	state            GuardState
	attempts         int
	lastFailed       time.Time
	biometricEnabled bool
}

// NewSessionGuard creates a guard over the given ports. The snapshot
// port is what the destructive reset wipes.
func NewSessionGuard(creds domain.CredentialStore, bio domain.Biometric, snap domain.SnapshotRepository, log *slog.Logger) *SessionGuard {
	return &SessionGuard{
		creds: creds,
		bio:   bio,
		snap:  snap,
		log:   log,
		now:   time.Now,
		state: StateUninitialized,
	}
}

// Initialize loads persisted guard state and decides the starting state.
// The whole load runs under a hard timeout: if the credential tier
// stalls, the decision is forced to "not authenticated" rather than
// hanging the caller.
func (g *SessionGuard) Initialize(ctx context.Context) GuardState {
	ctx, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.creds.Get(ctx, domain.CredPinHash)
	switch {
	case err == nil:
		g.loadCounters(ctx)
		if g.lockedLocked() {
			g.state = StateLocked
		} else {
			g.state = StateAwaitingPinEntry
		}
	case errors.Is(err, domain.ErrCredentialNotFound):
		g.state = StateAwaitingPinSetup
	default:
		// Cannot tell whether a PIN exists; deny by default.
		g.log.Warn("guard initialization degraded, forcing unauthenticated", "cause", err)
		g.state = StateAwaitingPinEntry
	}

	if v, err := g.creds.Get(ctx, domain.CredBiometricEnabled); err == nil {
		g.biometricEnabled = v == "true"
	}
	return g.state
}

// State returns the current guard state. An expired lockout reads as
// AwaitingPinEntry without waiting for the next verification attempt.
func (g *SessionGuard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateLocked && !g.lockedLocked() {
		g.state = StateAwaitingPinEntry
	}
	return g.state
}

// SetPin validates and stores a new PIN and authenticates the session.
// Validation failures leave stored state untouched.
func (g *SessionGuard) SetPin(ctx context.Context, pin, confirm string) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	if pin != confirm {
		return validationf("PIN and confirmation do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	if err := g.creds.Set(ctx, domain.CredPinHash, string(hash)); err != nil {
		return fmt.Errorf("store pin hash: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetCountersLocked(ctx)
	g.state = StateAuthenticated
	return nil
}

// VerifyPin compares the entered PIN against the stored hash. A
// mismatch consumes an attempt slot and timestamps the failure; the
// fifth consecutive failure locks the guard for lockoutDuration measured
// from that failure. An attempt made while locked is rejected without
// consuming a slot; it only records a fresh last-attempt time.
func (g *SessionGuard) VerifyPin(ctx context.Context, pin string) error {
	hash, err := g.creds.Get(ctx, domain.CredPinHash)
	if errors.Is(err, domain.ErrCredentialNotFound) {
		return ErrPinNotSet
	}
	if err != nil {
		return fmt.Errorf("load pin hash: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if g.lockedLocked() {
		g.state = StateLocked
		_ = g.creds.Set(ctx, domain.CredLastAttemptAt, now.UTC().Format(time.RFC3339))
		return fmt.Errorf("%w: locked for another %s", ErrLocked, g.remainingLockoutLocked().Round(time.Second))
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) != nil {
		g.attempts++
		g.lastFailed = now
		g.persistCountersLocked(ctx)
		if g.attempts >= maxPinAttempts {
			g.state = StateLocked
			return fmt.Errorf("%w: locked for %s", ErrLocked, lockoutDuration)
		}
		g.state = StateAwaitingPinEntry
		return fmt.Errorf("%w: %d attempts remaining", ErrPinMismatch, maxPinAttempts-g.attempts)
	}

	g.resetCountersLocked(ctx)
	g.state = StateAuthenticated
	return nil
}

// AuthenticateWithBiometric delegates to the platform biometric API.
// Success authenticates and resets the attempt counter exactly like a
// correct PIN. The shortcut requires both hardware capability and the
// user opt-in flag.
func (g *SessionGuard) AuthenticateWithBiometric(ctx context.Context) error {
	if !g.BiometricOffered(ctx) {
		return ErrBiometricUnavailable
	}
	if err := g.bio.Authenticate(ctx); err != nil {
		return fmt.Errorf("biometric authentication failed: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetCountersLocked(ctx)
	g.state = StateAuthenticated
	return nil
}

// BiometricOffered reports whether the biometric shortcut should be
// shown: hardware capability and user opt-in are independent flags and
// both must hold.
func (g *SessionGuard) BiometricOffered(ctx context.Context) bool {
	g.mu.Lock()
	enabled := g.biometricEnabled
	g.mu.Unlock()
	return enabled && g.bio.Available(ctx)
}

// SetBiometricEnabled persists the user opt-in flag.
func (g *SessionGuard) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	if err := g.creds.Set(ctx, domain.CredBiometricEnabled, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("store biometric flag: %w", err)
	}
	g.mu.Lock()
	g.biometricEnabled = enabled
	g.mu.Unlock()
	return nil
}

// Logout ends an authenticated session.
func (g *SessionGuard) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateAuthenticated {
		g.state = StateAwaitingPinEntry
	}
}

// Reset destroys the PIN and all record-store data, irreversibly, and
// returns the guard to PIN setup. Only offered after resetThreshold
// consecutive failures.
func (g *SessionGuard) Reset(ctx context.Context) error {
	g.mu.Lock()
	if g.attempts < resetThreshold {
		g.mu.Unlock()
		return ErrResetNotAllowed
	}
	g.mu.Unlock()

	if err := g.snap.ClearAll(ctx); err != nil {
		return fmt.Errorf("wipe record store: %w", err)
	}
	for _, key := range []string{domain.CredPinHash, domain.CredFailedAttempts, domain.CredLastFailedAt, domain.CredLastAttemptAt, domain.CredBiometricEnabled} {
		if err := g.creds.Delete(ctx, key); err != nil {
			return fmt.Errorf("destroy credential %q: %w", key, err)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.attempts = 0
	g.lastFailed = time.Time{}
	g.biometricEnabled = false
	g.state = StateAwaitingPinSetup
	g.log.Warn("pin reset performed, all data destroyed")
	return nil
}

// RemainingAttempts returns how many PIN attempts are left before
// lockout.
func (g *SessionGuard) RemainingAttempts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.attempts >= maxPinAttempts {
		return 0
	}
	return maxPinAttempts - g.attempts
}

// RemainingLockout returns how long the current lockout still lasts, or
// zero when not locked.
func (g *SessionGuard) RemainingLockout() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remainingLockoutLocked()
}

// ResetOffered reports whether the destructive reset action should be
// shown.
func (g *SessionGuard) ResetOffered() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attempts >= resetThreshold
}

func (g *SessionGuard) lockedLocked() bool {
	return g.attempts >= maxPinAttempts && g.now().Sub(g.lastFailed) < lockoutDuration
}

func (g *SessionGuard) remainingLockoutLocked() time.Duration {
	if g.attempts < maxPinAttempts {
		return 0
	}
	left := lockoutDuration - g.now().Sub(g.lastFailed)
	if left < 0 {
		return 0
	}
	return left
}

func (g *SessionGuard) loadCounters(ctx context.Context) {
	if v, err := g.creds.Get(ctx, domain.CredFailedAttempts); err == nil {
		if n, err := strconv.Atoi(v); err == nil {
			g.attempts = n
		}
	}
	if v, err := g.creds.Get(ctx, domain.CredLastFailedAt); err == nil {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			g.lastFailed = t
		}
	}
}

func (g *SessionGuard) persistCountersLocked(ctx context.Context) {
	if err := g.creds.Set(ctx, domain.CredFailedAttempts, strconv.Itoa(g.attempts)); err != nil {
		g.log.Warn("persist attempt counter failed", "cause", err)
	}
	ts := g.lastFailed.UTC().Format(time.RFC3339)
	if err := g.creds.Set(ctx, domain.CredLastFailedAt, ts); err != nil {
		g.log.Warn("persist last-failure time failed", "cause", err)
	}
	_ = g.creds.Set(ctx, domain.CredLastAttemptAt, ts)
}

func (g *SessionGuard) resetCountersLocked(ctx context.Context) {
	g.attempts = 0
	g.lastFailed = time.Time{}
	_ = g.creds.Delete(ctx, domain.CredFailedAttempts)
	_ = g.creds.Delete(ctx, domain.CredLastFailedAt)
}

func checkPin(pin string) error {
	if len(pin) < pinMinLen || len(pin) > pinMaxLen {
		return validationf("PIN must be %d to %d digits", pinMinLen, pinMaxLen)
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return validationf("PIN must contain digits only")
		}
	}
	return nil
}
