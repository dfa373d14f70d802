// Package merge implements last-write-wins merging of two decrypted vault
// snapshots and the pre-upload trash pruner.
//
// Each syncable table merges independently; no cross-table cascading is
// assumed. The algorithm is purely in-memory and deterministic: merging the
// same pair of snapshots always yields the same result.
package merge

import (
	"time"

	"github.com/ivolkov/go-vault-sync/models"
)

// Syncable is the minimal record shape the merge algorithm needs. All vault
// record types satisfy it through their embedded [models.SyncMeta].
type Syncable interface {
	LastUpdated() time.Time
}

// Table merges one table: remote is cloned as the base, then every local
// record is folded in. A local record absent from remote is appended
// (local-only creation); a local record present in remote replaces the base
// copy only when its UpdatedAt is strictly greater. Ties keep the copy
// already in the base, which makes the winning choice deterministic without
// extra tie-break logic.
//
// Deletion stickiness needs no special-casing here: soft deletes always bump
// UpdatedAt, so a tombstone can only be overridden by a strictly later live
// copy.
//
// key extracts the match key. Most tables key by record ID; child tables
// whose records may be recreated with new IDs on other devices key by a
// composite (see [Snapshots]).
func Table[T Syncable, K comparable](local, remote []T, key func(T) K) []T {
	merged := append([]T(nil), remote...)

	idx := make(map[K]int, len(merged))
	for i := range merged {
		idx[key(merged[i])] = i
	}

	for _, l := range local {
		i, ok := idx[key(l)]
		if !ok {
			idx[key(l)] = len(merged)
			merged = append(merged, l)
			continue
		}
		if l.LastUpdated().After(merged[i].LastUpdated()) {
			merged[i] = l
		}
	}

	return merged
}

// fieldValueKey matches field values across devices. A record's children may
// be recreated with new identifiers, so matching by the owning item, field
// key, and position avoids spurious duplication.
type fieldValueKey struct {
	itemID   string
	fieldKey string
	position int
}

// Snapshots merges two decrypted vault snapshots table by table and returns
// the new canonical state, used both for the local write and the subsequent
// upload. Neither input is mutated.
func Snapshots(local, remote *models.VaultSnapshot) *models.VaultSnapshot {
	if remote == nil {
		return local.Clone()
	}
	if local == nil {
		return remote.Clone()
	}

	return &models.VaultSnapshot{
		Items: Table(local.Items, remote.Items,
			func(r models.CredentialItem) string { return r.ID }),
		FieldValues: Table(local.FieldValues, remote.FieldValues,
			func(r models.FieldValue) fieldValueKey {
				return fieldValueKey{r.ItemID, r.FieldKey, r.Position}
			}),
		Folders: Table(local.Folders, remote.Folders,
			func(r models.Folder) string { return r.ID }),
		Tags: Table(local.Tags, remote.Tags,
			func(r models.Tag) string { return r.ID }),
		ItemTags: Table(local.ItemTags, remote.ItemTags,
			func(r models.ItemTagLink) string { return r.ID }),
		Attachments: Table(local.Attachments, remote.Attachments,
			func(r models.Attachment) string { return r.ID }),
		OTPSecrets: Table(local.OTPSecrets, remote.OTPSecrets,
			func(r models.OTPSecret) string { return r.ID }),
		Passkeys: Table(local.Passkeys, remote.Passkeys,
			func(r models.Passkey) string { return r.ID }),
		CustomFieldDefs: Table(local.CustomFieldDefs, remote.CustomFieldDefs,
			func(r models.CustomFieldDef) string { return r.ID }),
		FieldHistory: Table(local.FieldHistory, remote.FieldHistory,
			func(r models.FieldHistory) string { return r.ID }),
		Logos: Table(local.Logos, remote.Logos,
			func(r models.Logo) string { return r.ID }),
	}
}
