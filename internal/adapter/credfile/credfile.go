// Package credfile stores the session guard's secrets (PIN hash, attempt
// counter, biometric opt-in) as files on disk. The primary tier is a
// 0700 directory with 0600 files; when the primary tier errors or times
// out, operations fall back to a less protected directory, which is
// logged once as a degraded-security condition.
package credfile

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"nutrilog/internal/domain"
)

// defaultTimeout bounds every primary-tier call; the platform credential
// mechanism must never block the user indefinitely.
const defaultTimeout = 3 * time.Second

// Store implements domain.CredentialStore over the filesystem.
type Store struct {
	primary  string
	fallback string
	timeout  time.Duration
	log      *slog.Logger

	mu       sync.Mutex
	degraded bool
}

var _ domain.CredentialStore = (*Store)(nil)

// New creates a credential store rooted at primaryDir with fallbackDir
// as the degraded tier.
func New(primaryDir, fallbackDir string, log *slog.Logger) *Store {
	return &Store{
		primary:  primaryDir,
		fallback: fallbackDir,
		timeout:  defaultTimeout,
		log:      log,
	}
}

// Degraded reports whether any operation has fallen back to the less
// secure tier.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Store) markDegraded(key string, cause error) {
	s.mu.Lock()
	first := !s.degraded
	s.degraded = true
	s.mu.Unlock()
	if first {
		s.log.Warn("credential store falling back to less secure tier",
			"degraded", true, "key", key, "cause", cause)
	}
}

// Get returns the value stored under key, or
// domain.ErrCredentialNotFound when no tier holds it.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.runPrimary(ctx, func() (string, error) {
		return readCred(s.primary, key)
	})
	if err == nil {
		return v, nil
	}
	if errors.Is(err, domain.ErrCredentialNotFound) {
		// A value written while degraded lives only in the fallback
		// tier, so a primary miss is not authoritative.
		return readCred(s.fallback, key)
	}
	s.markDegraded(key, err)
	return readCred(s.fallback, key)
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.runPrimary(ctx, func() (string, error) {
		return "", writeCred(s.primary, key, value, 0o700, 0o600)
	})
	if err == nil {
		return nil
	}
	s.markDegraded(key, err)
	return writeCred(s.fallback, key, value, 0o755, 0o644)
}

// Delete removes key from both tiers. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.runPrimary(ctx, func() (string, error) {
		return "", removeCred(s.primary, key)
	})
	if err != nil {
		s.markDegraded(key, err)
	}
	// The fallback copy must go regardless of how the primary fared.
	if ferr := removeCred(s.fallback, key); ferr != nil {
		return ferr
	}
	return nil
}

// runPrimary executes op against the primary tier under the store
// timeout and the caller's context.
func (s *Store) runPrimary(ctx context.Context, op func() (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		val string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := op()
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		return r.val, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func readCred(dir, key string) (string, error) {
	b, err := os.ReadFile(filepath.Join(dir, fileName(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrCredentialNotFound
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeCred(dir, key, value string, dirMode, fileMode os.FileMode) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fileName(key)), []byte(value), fileMode)
}

func removeCred(dir, key string) error {
	err := os.Remove(filepath.Join(dir, fileName(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func fileName(key string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, key)
	return clean + ".cred"
}
