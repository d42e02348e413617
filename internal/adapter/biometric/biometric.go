// Package biometric adapts the platform biometric API. Hosts without
// biometric hardware get the Unsupported implementation, which reports
// no capability so the shortcut is never offered.
package biometric

import (
	"context"
	"errors"

	"nutrilog/internal/domain"
)

// ErrUnavailable indicates the platform has no usable biometric sensor.
var ErrUnavailable = errors.New("biometric authentication unavailable")

// Unsupported is the no-hardware implementation of domain.Biometric.
type Unsupported struct{}

var _ domain.Biometric = Unsupported{}

func (Unsupported) Available(ctx context.Context) bool { return false }

func (Unsupported) Authenticate(ctx context.Context) error { return ErrUnavailable }
