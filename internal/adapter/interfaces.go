// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

// Package adapter implements the outbound transport to the vault server.
// The sync engine consumes exactly three vault calls — revision probe,
// blob download, blob upload — plus the auth-boundary calls needed to
// obtain a bearer token.
package adapter

import (
	"context"

	"github.com/ivolkov/go-vault-sync/models"
)

// ServerAdapter is the client-side view of the vault server.
type ServerAdapter interface {
	// SetToken stores the bearer token for subsequent authenticated
	// requests.
	SetToken(token string)

	// Token returns the currently held bearer token, or "".
	Token() string

	// Register creates an account and stores the returned bearer token.
	Register(ctx context.Context, user models.User) (models.User, error)

	// RequestSalt fetches the account's encryption salt, required to
	// derive the key (and from it the auth proof) before Login.
	RequestSalt(ctx context.Context, login string) (models.User, error)

	// Login authenticates with a pre-computed auth proof and stores the
	// returned bearer token.
	Login(ctx context.Context, user models.User) (models.User, error)

	// FetchRevision returns the server's current vault revision. This is
	// the lightweight probe a sync cycle starts with; 0 means the server
	// holds no vault yet.
	FetchRevision(ctx context.Context) (uint64, error)

	// DownloadVault returns the server's current blob and its revision.
	DownloadVault(ctx context.Context) (models.VaultDownload, error)

	// UploadVault submits a blob against a base revision and returns the
	// newly assigned revision. A stale base revision yields an error
	// wrapping [ErrOutdated].
	UploadVault(ctx context.Context, req models.VaultUpload) (uint64, error)
}
