// Package store implements the persistence layer: the client-side sync
// state store (SQLite) and the server-side user and vault repositories
// (PostgreSQL).
package store

import (
	"context"

	"github.com/ivolkov/go-vault-sync/models"
)

// StateStore persists the encrypted vault blob together with the per-device
// sync state. All writes are atomic: the blob and the scalar fields always
// change together; a partial combination is never observable, not even
// across a process crash.
type StateStore interface {
	// Load returns the current blob and sync state. Returns
	// [ErrVaultNotProvisioned] when no blob has been written yet.
	Load(ctx context.Context) ([]byte, models.SyncState, error)

	// MarkDirty stores blob, sets the dirty flag, and increments the
	// mutation sequence by exactly one. Unconditionally accepted; used
	// after every local mutation. Returns the state as committed.
	MarkDirty(ctx context.Context, blob []byte) (models.SyncState, error)

	// CommitSync stores blob, records serverRevision, and clears the
	// dirty flag — but only if the persisted mutation sequence still
	// equals expectedSeq. On mismatch it performs no write at all and
	// returns [ErrSeqConflict].
	CommitSync(ctx context.Context, blob []byte, serverRevision, expectedSeq uint64) error

	// AdvanceRevision records serverRevision without touching the blob,
	// the dirty flag, or the mutation sequence. Used when an upload was
	// accepted by the server but a concurrent local mutation prevents
	// clearing dirty: the revision reflects reality, and the next cycle
	// uploads the newer state.
	AdvanceRevision(ctx context.Context, serverRevision uint64) error

	// Replace discards the local vault and installs blob as a fresh
	// replica at serverRevision: dirty is cleared and the mutation
	// sequence resets to zero. This is the only operation that ever
	// decreases the sequence.
	Replace(ctx context.Context, blob []byte, serverRevision uint64) error

	// Close releases the underlying database handle.
	Close() error
}

// UserRepository is the server-side account store.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// VaultRepository is the server-side vault blob store. Revisions are
// assigned here, monotonically per user.
type VaultRepository interface {
	// Revision returns the current revision for the user's vault, or 0
	// when no vault exists yet.
	Revision(ctx context.Context, userID int64) (uint64, error)

	// Vault returns the current blob and its revision. Returns
	// [ErrVaultNotFound] when the user has no vault.
	Vault(ctx context.Context, userID int64) (models.VaultDownload, error)

	// Save stores blob against baseRevision and returns the newly
	// assigned revision. baseRevision equal to the stored revision yields
	// revision+1; baseRevision greater than the stored revision is the
	// disaster-recovery path and yields baseRevision+1, preserving the
	// gap; baseRevision lower than the stored revision returns
	// [ErrRevisionConflict].
	Save(ctx context.Context, userID int64, blob []byte, baseRevision uint64, deviceID string) (uint64, error)
}
