package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSeqConflict is returned when a synced-state commit fails its
	// fencing check: the mutation sequence captured at the start of the
	// sync cycle no longer matches the persisted one, meaning a local
	// mutation landed during the network round trip. This is an expected
	// signal, not a failure; the cycle retries with fresh state.
	ErrSeqConflict = errors.New("mutation sequence conflict")

	// ErrVaultNotProvisioned is returned when the local sync state row
	// holds no blob yet (first run before provisioning or after a vault
	// clear).
	ErrVaultNotProvisioned = errors.New("local vault not provisioned")

	// ErrRevisionConflict is returned by the server-side vault repository
	// when an upload's base revision is older than the stored revision,
	// meaning another device already advanced the vault.
	ErrRevisionConflict = errors.New("vault revision conflict")

	// ErrVaultNotFound is returned when a user has no server-side vault
	// blob yet.
	ErrVaultNotFound = errors.New("vault not found")

	// ErrLoginAlreadyExists is returned when registering a user whose
	// login is already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// produces an empty result set.
	ErrUserNotFound = errors.New("user not found")
)

// Low-level database operation errors, returned (or wrapped) when a SQL
// operation fails before any domain logic applies.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommittingTransaction = errors.New("failed to commit transaction")
)
