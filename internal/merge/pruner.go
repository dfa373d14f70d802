package merge

import (
	"time"

	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/models"
)

// DefaultTrashRetention is how long a trashed item survives before the
// pruner converts it into a tombstone.
const DefaultTrashRetention = 30 * 24 * time.Hour

// Pruner converts expired trashed items into permanent tombstones before
// upload: the item and all its dependent child records get Deleted=true and
// their non-identifying fields cleared, so only the deletion itself keeps
// propagating to other replicas.
type Pruner struct {
	retention time.Duration
	logger    *logger.Logger
}

// NewPruner constructs a Pruner with the given retention window. A zero or
// negative retention falls back to [DefaultTrashRetention].
func NewPruner(retention time.Duration, log *logger.Logger) *Pruner {
	if retention <= 0 {
		retention = DefaultTrashRetention
	}
	return &Pruner{retention: retention, logger: log}
}

// Prune returns a copy of snap with every trash-expired item (TrashedAt
// older than the retention window at now) and its children converted to
// tombstones. The caller's snapshot is never mutated; pruning applies to the
// outgoing blob only. The second return value is the number of records
// tombstoned.
func (p *Pruner) Prune(snap *models.VaultSnapshot, now time.Time) (*models.VaultSnapshot, int) {
	out := snap.Clone()
	cutoff := now.Add(-p.retention)

	expired := make(map[string]struct{})
	for i := range out.Items {
		item := &out.Items[i]
		if item.Deleted || item.TrashedAt == nil || !item.TrashedAt.Before(cutoff) {
			continue
		}
		expired[item.ID] = struct{}{}
	}
	if len(expired) == 0 {
		return out, 0
	}

	pruned := 0
	for i := range out.Items {
		item := &out.Items[i]
		if _, ok := expired[item.ID]; !ok {
			continue
		}
		item.MarkDeleted(now)
		item.Title = ""
		item.Username = ""
		item.Password = ""
		item.URL = ""
		item.Notes = ""
		item.FolderID = ""
		item.LogoID = ""
		item.TrashedAt = nil
		pruned++
	}

	for i := range out.FieldValues {
		fv := &out.FieldValues[i]
		if _, ok := expired[fv.ItemID]; !ok || fv.Deleted {
			continue
		}
		fv.MarkDeleted(now)
		fv.Value = ""
		pruned++
	}

	for i := range out.ItemTags {
		link := &out.ItemTags[i]
		if _, ok := expired[link.ItemID]; !ok || link.Deleted {
			continue
		}
		link.MarkDeleted(now)
		pruned++
	}

	for i := range out.Attachments {
		a := &out.Attachments[i]
		if _, ok := expired[a.ItemID]; !ok || a.Deleted {
			continue
		}
		a.MarkDeleted(now)
		a.Name = ""
		a.MimeType = ""
		a.Size = 0
		a.Content = nil
		pruned++
	}

	for i := range out.OTPSecrets {
		o := &out.OTPSecrets[i]
		if _, ok := expired[o.ItemID]; !ok || o.Deleted {
			continue
		}
		o.MarkDeleted(now)
		o.Secret = ""
		pruned++
	}

	for i := range out.Passkeys {
		pk := &out.Passkeys[i]
		if _, ok := expired[pk.ItemID]; !ok || pk.Deleted {
			continue
		}
		pk.MarkDeleted(now)
		pk.PrivateKey = ""
		pk.UserHandle = ""
		pruned++
	}

	for i := range out.FieldHistory {
		h := &out.FieldHistory[i]
		if _, ok := expired[h.ItemID]; !ok || h.Deleted {
			continue
		}
		h.MarkDeleted(now)
		h.OldValue = ""
		pruned++
	}

	p.logger.Debug().Int("records", pruned).Int("items", len(expired)).Msg("trash pruned to tombstones")
	return out, pruned
}
