// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/mock"
	"github.com/ivolkov/go-vault-sync/internal/store"
	"github.com/ivolkov/go-vault-sync/models"
)

func newTestVaultService(t *testing.T, ctrl *gomock.Controller) (VaultService, *mock.MockVaultRepository) {
	t.Helper()
	mockRepo := mock.NewMockVaultRepository(ctrl)
	svc := NewVaultService(mockRepo, logger.Nop())
	return svc, mockRepo
}

func TestVaultRevision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestVaultService(t, ctrl)
	mockRepo.EXPECT().Revision(gomock.Any(), int64(7)).Return(uint64(12), nil)

	rev, err := svc.Revision(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), rev)
}

func TestVaultDownload_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestVaultService(t, ctrl)
	mockRepo.EXPECT().Vault(gomock.Any(), int64(7)).Return(models.VaultDownload{}, store.ErrVaultNotFound)

	_, err := svc.Download(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrVaultNotFound)
}

func TestVaultUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestVaultService(t, ctrl)
	req := models.VaultUpload{Blob: []byte{0x01}, BaseRevision: 4, DeviceID: "dev-1"}
	mockRepo.EXPECT().Save(gomock.Any(), int64(7), req.Blob, uint64(4), "dev-1").Return(uint64(5), nil)

	rev, err := svc.Upload(context.Background(), 7, req)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), rev)
}

func TestVaultUpload_EmptyBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestVaultService(t, ctrl)

	_, err := svc.Upload(context.Background(), 7, models.VaultUpload{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestVaultUpload_StaleBase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestVaultService(t, ctrl)
	mockRepo.EXPECT().Save(gomock.Any(), int64(7), gomock.Any(), uint64(2), gomock.Any()).
		Return(uint64(0), store.ErrRevisionConflict)

	_, err := svc.Upload(context.Background(), 7, models.VaultUpload{Blob: []byte{0x01}, BaseRevision: 2})
	assert.ErrorIs(t, err, store.ErrRevisionConflict)
}
