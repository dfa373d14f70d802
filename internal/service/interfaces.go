package service

import (
	"context"

	"github.com/ivolkov/go-vault-sync/models"
)

// AuthService is the server-side account and token boundary.
type AuthService interface {
	// RegisterUser creates an account. The stored auth hash is a keyed
	// hash of the client's proof, never the proof itself.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the client's auth proof and returns the stored
	// account. Returns [ErrWrongCredentials] for unknown logins and
	// mismatched proofs alike.
	Login(ctx context.Context, user models.User) (models.User, error)

	// SaltByLogin returns the account's encryption salt so a new device
	// can re-derive the vault key before authenticating.
	SaltByLogin(ctx context.Context, login string) (models.User, error)

	// CreateToken issues a signed JWT for the user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates tokenString and extracts its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService is the server-side vault blob store boundary.
type VaultService interface {
	// Revision returns the user's current vault revision, 0 when no
	// vault exists yet.
	Revision(ctx context.Context, userID int64) (uint64, error)

	// Download returns the user's current blob and revision.
	Download(ctx context.Context, userID int64) (models.VaultDownload, error)

	// Upload stores a blob against its base revision and returns the
	// newly assigned revision. Stale base revisions are rejected with
	// [store.ErrRevisionConflict]; base revisions ahead of the stored one
	// (client recovering the server after a rollback) are accepted.
	Upload(ctx context.Context, userID int64, req models.VaultUpload) (uint64, error)
}
