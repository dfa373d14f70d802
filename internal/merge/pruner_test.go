package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/models"
)

func trashedSnapshot(trashedAt time.Time) *models.VaultSnapshot {
	return &models.VaultSnapshot{
		Items: []models.CredentialItem{{
			SyncMeta:  models.SyncMeta{ID: "item-1", UpdatedAt: trashedAt},
			Title:     "old bank login",
			Username:  "alice",
			Password:  "hunter2",
			TrashedAt: &trashedAt,
		}},
		FieldValues: []models.FieldValue{{
			SyncMeta: models.SyncMeta{ID: "fv-1", UpdatedAt: trashedAt},
			ItemID:   "item-1", FieldKey: "pin", Value: "1234",
		}},
		Attachments: []models.Attachment{{
			SyncMeta: models.SyncMeta{ID: "att-1", UpdatedAt: trashedAt},
			ItemID:   "item-1", Name: "statement.pdf", Content: []byte("pdf"),
		}},
		OTPSecrets: []models.OTPSecret{{
			SyncMeta: models.SyncMeta{ID: "otp-1", UpdatedAt: trashedAt},
			ItemID:   "item-1", Secret: "JBSWY3DP",
		}},
	}
}

func TestPruner_ExpiredTrashBecomesTombstones(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	snap := trashedSnapshot(now.Add(-31 * 24 * time.Hour))

	p := NewPruner(DefaultTrashRetention, logger.Nop())
	out, pruned := p.Prune(snap, now)

	assert.Equal(t, 4, pruned)

	got := out.FindItem("item-1")
	require.NotNil(t, got)
	assert.True(t, got.Deleted)
	assert.Empty(t, got.Title)
	assert.Empty(t, got.Username)
	assert.Empty(t, got.Password)
	assert.Nil(t, got.TrashedAt)
	assert.Equal(t, now, got.UpdatedAt, "tombstone must carry the prune time so it wins on merge")

	assert.True(t, out.FieldValues[0].Deleted)
	assert.Empty(t, out.FieldValues[0].Value)
	assert.True(t, out.Attachments[0].Deleted)
	assert.Nil(t, out.Attachments[0].Content)
	assert.True(t, out.OTPSecrets[0].Deleted)
	assert.Empty(t, out.OTPSecrets[0].Secret)
}

func TestPruner_FreshTrashIsKept(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	snap := trashedSnapshot(now.Add(-5 * 24 * time.Hour))

	p := NewPruner(DefaultTrashRetention, logger.Nop())
	out, pruned := p.Prune(snap, now)

	assert.Zero(t, pruned)
	got := out.FindItem("item-1")
	require.NotNil(t, got)
	assert.False(t, got.Deleted)
	assert.Equal(t, "old bank login", got.Title)
}

func TestPruner_CallerSnapshotUntouched(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	snap := trashedSnapshot(now.Add(-60 * 24 * time.Hour))

	p := NewPruner(DefaultTrashRetention, logger.Nop())
	_, pruned := p.Prune(snap, now)
	require.Equal(t, 4, pruned)

	// Pruning runs against the outgoing copy only.
	assert.False(t, snap.Items[0].Deleted)
	assert.Equal(t, "hunter2", snap.Items[0].Password)
	assert.Equal(t, "1234", snap.FieldValues[0].Value)
}

func TestPruner_UnrelatedChildrenUntouched(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	snap := trashedSnapshot(now.Add(-60 * 24 * time.Hour))
	snap.FieldValues = append(snap.FieldValues, models.FieldValue{
		SyncMeta: models.SyncMeta{ID: "fv-other", UpdatedAt: now},
		ItemID:   "item-2", FieldKey: "pin", Value: "9999",
	})

	p := NewPruner(DefaultTrashRetention, logger.Nop())
	out, _ := p.Prune(snap, now)

	for _, fv := range out.FieldValues {
		if fv.ItemID == "item-2" {
			assert.False(t, fv.Deleted)
			assert.Equal(t, "9999", fv.Value)
		}
	}
}

func TestPruner_CustomRetentionWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	snap := trashedSnapshot(now.Add(-8 * 24 * time.Hour))

	p := NewPruner(7*24*time.Hour, logger.Nop())
	_, pruned := p.Prune(snap, now)

	assert.Equal(t, 4, pruned)
}

func TestPruner_AlreadyDeletedNotCountedTwice(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	snap := trashedSnapshot(now.Add(-60 * 24 * time.Hour))
	snap.FieldValues[0].Deleted = true

	p := NewPruner(DefaultTrashRetention, logger.Nop())
	_, pruned := p.Prune(snap, now)

	assert.Equal(t, 3, pruned)
}
