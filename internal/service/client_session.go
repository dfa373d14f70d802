package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ivolkov/go-vault-sync/models"
)

// VaultSession holds the per-process client state that must never touch
// disk: the derived vault key and the decrypted in-memory replica. The
// device ID is generated once per session and tags every upload for server
// auditing.
type VaultSession struct {
	mu       sync.RWMutex
	key      []byte
	snapshot *models.VaultSnapshot
	deviceID string
}

// NewVaultSession creates an empty session with a fresh device ID.
func NewVaultSession() *VaultSession {
	return &VaultSession{deviceID: uuid.NewString()}
}

// SetKey installs the derived vault key. Called once after Register or
// Login succeeds.
func (s *VaultSession) SetKey(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

// Key returns the vault key, or nil before authentication.
func (s *VaultSession) Key() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// SetSnapshot replaces the in-memory replica. Callers hand over ownership
// of snap and must not mutate it afterwards.
func (s *VaultSession) SetSnapshot(snap *models.VaultSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
}

// Snapshot returns the current replica for read-only use, or nil when no
// vault has been loaded yet.
func (s *VaultSession) Snapshot() *models.VaultSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// DeviceID returns the session's device identifier.
func (s *VaultSession) DeviceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deviceID
}

// Clear wipes the key and replica, returning the session to the
// unauthenticated state.
func (s *VaultSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = nil
	s.snapshot = nil
}
