package service

import (
	"context"
	"time"

	"github.com/ivolkov/go-vault-sync/models"
)

// MutationFunc edits the decrypted vault snapshot in place. It runs under
// the gateway's mutation lock; returning an error aborts the mutation and
// leaves the persisted state untouched.
type MutationFunc func(snap *models.VaultSnapshot) error

// ClientAuthService defines the client-side contract for account
// registration and login. Implementations derive the vault key from the
// master password and bootstrap the local replica.
type ClientAuthService interface {
	// Register creates a new account on the server, derives the vault key
	// from masterPassword and a fresh salt, and provisions an empty local
	// vault. The plaintext password never leaves the client.
	Register(ctx context.Context, login, masterPassword string) error

	// Login authenticates against the server, re-derives the vault key
	// from the account salt, and bootstraps the local replica from the
	// server unless a local vault already exists (offline edits are
	// preserved and reconciled by the next sync).
	Login(ctx context.Context, login, masterPassword string) error
}

// ClientVaultService is the single entry point for local vault mutations.
// Every edit is persisted locally before any network activity; the engine
// never blocks a mutation on the server being reachable.
type ClientVaultService interface {
	// Apply runs fn against the current snapshot, persists the result as
	// dirty local state, and triggers a background sync. It returns as
	// soon as the local write is durable.
	Apply(ctx context.Context, fn MutationFunc) error

	// ApplySync is Apply followed by a blocking sync cycle. The returned
	// error reflects the sync outcome; the local mutation is durable
	// either way.
	ApplySync(ctx context.Context, fn MutationFunc) error
}

// ClientSyncService reconciles the local replica with the server.
type ClientSyncService interface {
	// Sync runs one full sync cycle and blocks until it converges, fails,
	// or exhausts its retry budget. Concurrent callers coalesce onto the
	// inflight cycle instead of starting another. An unreachable server
	// is not an error: the cycle short-circuits and the engine reports
	// itself offline.
	Sync(ctx context.Context) error

	// TriggerSync starts a sync cycle in the background and returns
	// immediately. Failures are logged, not returned.
	TriggerSync()

	// Status reports the transient engine state for indicator rendering.
	Status(ctx context.Context) models.SyncStatus
}

// ClientSyncJob defines the contract for a background worker that
// periodically runs sync cycles.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
