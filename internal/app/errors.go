package app

import (
	"errors"
	"fmt"
)

// ValidationError reports bad input shape or range. It is surfaced to
// the caller immediately and never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

var (
	// ErrPinMismatch indicates the entered PIN did not match the stored
	// hash. RemainingAttempts carries the hint for the caller.
	ErrPinMismatch = errors.New("incorrect PIN")
	// ErrPinNotSet indicates verification was attempted before setup.
	ErrPinNotSet = errors.New("no PIN configured")
	// ErrLocked indicates PIN verification is temporarily denied after
	// repeated failures. RemainingLockout carries the cooldown hint.
	ErrLocked = errors.New("too many failed attempts")
	// ErrResetNotAllowed indicates a destructive reset was requested
	// before enough failures had accumulated.
	ErrResetNotAllowed = errors.New("reset requires repeated failed attempts")
	// ErrBiometricUnavailable indicates the biometric shortcut is not
	// offered: missing hardware, no enrollment, or no user opt-in.
	ErrBiometricUnavailable = errors.New("biometric authentication not available")
)
