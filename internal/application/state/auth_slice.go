// internal/application/state/auth_slice.go
package state

import (
	"sync"

	identitydom "storefront/internal/domain/identity"
)

// AuthSlice holds the signed-in identity.
// The identity itself is written by the session propagator. Auth operations only move Meta.
type AuthSlice struct {
	mu   sync.RWMutex
	user *identitydom.Identity
	meta Meta
}

type AuthSnapshot struct {
	User *identitydom.Identity `json:"user"`
	Meta
}

func (s *AuthSlice) User() *identitydom.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// SetUser replaces the identity. nil clears it.
func (s *AuthSlice) SetUser(u *identitydom.Identity) {
	s.mu.Lock()
	s.user = u.Clone()
	s.mu.Unlock()
}

func (s *AuthSlice) Begin() {
	s.mu.Lock()
	s.meta.begin()
	s.mu.Unlock()
}

func (s *AuthSlice) Fulfil() {
	s.mu.Lock()
	s.meta.fulfil()
	s.mu.Unlock()
}

func (s *AuthSlice) Reject(msg string) {
	s.mu.Lock()
	s.meta.reject(msg)
	s.mu.Unlock()
}

func (s *AuthSlice) Snapshot() AuthSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AuthSnapshot{User: s.user.Clone(), Meta: s.meta.copy()}
}
