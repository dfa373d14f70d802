// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

package models

// SyncState is the durable per-device synchronization state. All three
// fields are persisted together with the encrypted blob in one atomic
// write; a partially updated combination is never observable.
type SyncState struct {
	// Dirty is true when the local replica holds mutations the server has
	// not confirmed yet.
	Dirty bool `json:"dirty"`

	// MutationSeq increments by exactly one per accepted local mutation.
	// It is the fencing token sync cycles use to detect mutations that
	// raced with a network round trip. It never decreases except when the
	// whole vault is replaced by a fresh download.
	MutationSeq uint64 `json:"mutation_seq"`

	// ServerRevision is the last server-assigned revision this device has
	// confirmed synced.
	ServerRevision uint64 `json:"server_revision"`
}

// SyncStatus is the transient, in-memory status exposed for indicator
// rendering. None of these fields are crash-durable.
type SyncStatus struct {
	Offline bool `json:"offline"`
	Syncing bool `json:"syncing"`
	Dirty   bool `json:"dirty"`
}
