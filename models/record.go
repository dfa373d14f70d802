// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

package models

import "time"

// SyncMeta carries the fields shared by every syncable record in the vault.
// It is embedded by all entity types so the merge engine can treat them
// uniformly: a stable ID assigned at creation, the timestamp of the last
// mutation, and the soft-delete flag.
//
// Deleted is sticky under last-write-wins resolution: it is only overridden
// by an incoming record that carries Deleted=false with a strictly later
// UpdatedAt. This holds automatically as long as every mutation (including
// soft deletes) bumps UpdatedAt, which [SyncMeta.Touch] and
// [SyncMeta.MarkDeleted] guarantee.
type SyncMeta struct {
	// ID is the globally unique record identifier, assigned once at
	// creation and never reused.
	ID string `json:"id"`

	// UpdatedAt is set on every mutation and drives merge resolution.
	UpdatedAt time.Time `json:"updated_at"`

	// Deleted marks the record as soft-deleted. The record stays in the
	// snapshot as a tombstone so the deletion propagates to other replicas.
	Deleted bool `json:"deleted"`
}

// RecordID returns the stable record identifier.
func (m SyncMeta) RecordID() string { return m.ID }

// LastUpdated returns the timestamp of the record's last mutation.
func (m SyncMeta) LastUpdated() time.Time { return m.UpdatedAt }

// IsDeleted reports whether the record is soft-deleted.
func (m SyncMeta) IsDeleted() bool { return m.Deleted }

// Touch stamps the record as mutated at now.
func (m *SyncMeta) Touch(now time.Time) { m.UpdatedAt = now }

// MarkDeleted soft-deletes the record and bumps UpdatedAt so the deletion
// wins over any older copy during merge.
func (m *SyncMeta) MarkDeleted(now time.Time) {
	m.Deleted = true
	m.UpdatedAt = now
}

// CredentialItem is a single stored credential (login entry).
//
// TrashedAt distinguishes trash from permanent deletion: a trashed item is
// still live for sync purposes (Deleted=false) but becomes eligible for
// tombstone conversion once the retention window expires.
type CredentialItem struct {
	SyncMeta

	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
	FolderID string `json:"folder_id,omitempty"`
	LogoID   string `json:"logo_id,omitempty"`

	TrashedAt *time.Time `json:"trashed_at,omitempty"`
}

// FieldValue is a multi-valued child of a credential item (e.g. an extra
// password or a custom field value). Children may be recreated with new IDs
// on different devices, so the merge engine matches them by the composite
// key (ItemID, FieldKey, Position) rather than by ID.
type FieldValue struct {
	SyncMeta

	ItemID    string `json:"item_id"`
	FieldKey  string `json:"field_key"`
	Position  int    `json:"position"`
	Value     string `json:"value"`
	Protected bool   `json:"protected"`
}

// Folder groups credential items into a hierarchy.
type Folder struct {
	SyncMeta

	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// Tag is a user-defined label attachable to items via ItemTagLink.
type Tag struct {
	SyncMeta

	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ItemTagLink associates a credential item with a tag. Relations are
// referential by ID only; the merge engine never cascades across tables.
type ItemTagLink struct {
	SyncMeta

	ItemID string `json:"item_id"`
	TagID  string `json:"tag_id"`
}

// Attachment is a binary file attached to a credential item.
type Attachment struct {
	SyncMeta

	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Content  []byte `json:"content"`
}

// OTPSecret holds the one-time-code parameters for an item.
type OTPSecret struct {
	SyncMeta

	ItemID    string `json:"item_id"`
	Secret    string `json:"secret"`
	Algorithm string `json:"algorithm"`
	Digits    int    `json:"digits"`
	Period    int    `json:"period"`
}

// Passkey holds a WebAuthn credential bound to an item.
type Passkey struct {
	SyncMeta

	ItemID       string `json:"item_id"`
	RelyingParty string `json:"relying_party"`
	CredentialID string `json:"credential_id"`
	PrivateKey   string `json:"private_key"`
	UserHandle   string `json:"user_handle"`
}

// CustomFieldDef declares a user-defined field type usable across items.
type CustomFieldDef struct {
	SyncMeta

	FieldKey string `json:"field_key"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
}

// FieldHistory records a superseded value of an item field.
type FieldHistory struct {
	SyncMeta

	ItemID    string    `json:"item_id"`
	FieldKey  string    `json:"field_key"`
	OldValue  string    `json:"old_value"`
	ChangedAt time.Time `json:"changed_at"`
}

// Logo is a deduplicated site icon shared by items via LogoID.
type Logo struct {
	SyncMeta

	ContentHash string `json:"content_hash"`
	MimeType    string `json:"mime_type"`
	Content     []byte `json:"content"`
}
