// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

package models

// VaultUpload is the request body of PUT /api/vault.
//
// BaseRevision is the revision the client last synced against; the server
// performs an optimistic check against it and rejects stale uploads with
// HTTP 409. A BaseRevision greater than the server's current revision is the
// disaster-recovery signal: the server accepts the blob and assigns
// BaseRevision+1, deliberately leaving a revision gap as an audit trail.
type VaultUpload struct {
	Blob         []byte `json:"blob"`
	BaseRevision uint64 `json:"base_revision"`
	DeviceID     string `json:"device_id"`
}

// VaultUploadResult is the response body of a successful PUT /api/vault.
type VaultUploadResult struct {
	Revision uint64 `json:"revision"`
}

// VaultDownload is the response body of GET /api/vault: the current
// encrypted blob and the revision it carries.
type VaultDownload struct {
	Blob     []byte `json:"blob"`
	Revision uint64 `json:"revision"`
}

// RevisionResponse is the response body of GET /api/vault/revision, the
// lightweight call sync cycles use to compare server and local state.
type RevisionResponse struct {
	Revision uint64 `json:"revision"`
}
