package service

import (
	"context"
	"fmt"

	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/store"
	"github.com/ivolkov/go-vault-sync/models"
)

// vaultService is the concrete implementation of VaultService. The blob is
// opaque to the server: no decryption, no inspection, only revision
// bookkeeping.
type vaultService struct {
	vaultRepository store.VaultRepository
	logger          *logger.Logger
}

// NewVaultService constructs a VaultService over the given repository.
func NewVaultService(vaultRepository store.VaultRepository, logger *logger.Logger) VaultService {
	return &vaultService{vaultRepository: vaultRepository, logger: logger}
}

// Revision implements [VaultService].
func (v *vaultService) Revision(ctx context.Context, userID int64) (uint64, error) {
	revision, err := v.vaultRepository.Revision(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get vault revision: %w", err)
	}

	return revision, nil
}

// Download implements [VaultService].
func (v *vaultService) Download(ctx context.Context, userID int64) (models.VaultDownload, error) {
	vault, err := v.vaultRepository.Vault(ctx, userID)
	if err != nil {
		return models.VaultDownload{}, fmt.Errorf("get vault: %w", err)
	}

	return vault, nil
}

// Upload implements [VaultService].
func (v *vaultService) Upload(ctx context.Context, userID int64, req models.VaultUpload) (uint64, error) {
	log := logger.FromContext(ctx)

	if len(req.Blob) == 0 {
		return 0, ErrInvalidDataProvided
	}

	revision, err := v.vaultRepository.Save(ctx, userID, req.Blob, req.BaseRevision, req.DeviceID)
	if err != nil {
		return 0, fmt.Errorf("save vault: %w", err)
	}

	log.Debug().Int64("user_id", userID).Uint64("revision", revision).Msg("vault stored")
	return revision, nil
}
