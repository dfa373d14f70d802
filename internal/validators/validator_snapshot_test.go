// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

package validators

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ivolkov/go-vault-sync/models"
)

func validSnapshot() *models.VaultSnapshot {
	snap := models.NewVaultSnapshot()
	snap.Items = append(snap.Items, models.CredentialItem{
		SyncMeta: models.SyncMeta{ID: "itm-1", UpdatedAt: time.Now()},
		Title:    "example.com",
	})
	snap.FieldValues = append(snap.FieldValues, models.FieldValue{
		SyncMeta: models.SyncMeta{ID: "fld-1", UpdatedAt: time.Now()},
		ItemID:   "itm-1",
		FieldKey: "recovery-code",
		Position: 0,
		Value:    "0000-1111",
	})
	snap.Folders = append(snap.Folders, models.Folder{
		SyncMeta: models.SyncMeta{ID: "fol-1", UpdatedAt: time.Now()},
		Name:     "Work",
	})
	return snap
}

func TestSnapshotValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(snap *models.VaultSnapshot)
		wantErr bool
	}{
		{
			name:   "valid snapshot",
			mutate: func(snap *models.VaultSnapshot) {},
		},
		{
			name: "item with empty id",
			mutate: func(snap *models.VaultSnapshot) {
				snap.Items = append(snap.Items, models.CredentialItem{Title: "no id"})
			},
			wantErr: true,
		},
		{
			name: "duplicate item id",
			mutate: func(snap *models.VaultSnapshot) {
				snap.Items = append(snap.Items, snap.Items[0])
			},
			wantErr: true,
		},
		{
			name: "field value without item id",
			mutate: func(snap *models.VaultSnapshot) {
				snap.FieldValues[0].ItemID = ""
			},
			wantErr: true,
		},
		{
			name: "field value without field key",
			mutate: func(snap *models.VaultSnapshot) {
				snap.FieldValues[0].FieldKey = ""
			},
			wantErr: true,
		},
		{
			name: "field value with negative position",
			mutate: func(snap *models.VaultSnapshot) {
				snap.FieldValues[0].Position = -1
			},
			wantErr: true,
		},
		{
			name: "duplicate field composite key",
			mutate: func(snap *models.VaultSnapshot) {
				dup := snap.FieldValues[0]
				dup.ID = "fld-2"
				snap.FieldValues = append(snap.FieldValues, dup)
			},
			wantErr: true,
		},
		{
			name: "same key different position is fine",
			mutate: func(snap *models.VaultSnapshot) {
				next := snap.FieldValues[0]
				next.ID = "fld-2"
				next.Position = 1
				snap.FieldValues = append(snap.FieldValues, next)
			},
		},
		{
			name: "duplicate folder id",
			mutate: func(snap *models.VaultSnapshot) {
				snap.Folders = append(snap.Folders, snap.Folders[0])
			},
			wantErr: true,
		},
	}

	v := NewSnapshotValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := validSnapshot()
			tt.mutate(snap)

			err := v.Validate(context.Background(), snap)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSnapshotValidator_ValueAndUnsupportedTypes(t *testing.T) {
	v := NewSnapshotValidator()

	assert.NoError(t, v.Validate(context.Background(), *validSnapshot()))
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrValidation)
}
