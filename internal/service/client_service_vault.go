package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ivolkov/go-vault-sync/internal/crypto"
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/store"
	"github.com/ivolkov/go-vault-sync/internal/validators"
	"github.com/ivolkov/go-vault-sync/models"
)

type clientVaultService struct {
	stateStore store.StateStore
	codec      crypto.BlobCodec
	session    *VaultSession
	syncSvc    ClientSyncService
	validator  validators.Validator
	logger     *logger.Logger

	// mu serializes mutations: decrypt, edit, encrypt, and persist form
	// one critical section so concurrent Apply calls cannot lose each
	// other's edits.
	mu sync.Mutex
}

// NewClientVaultService constructs the mutation gateway in front of the
// state store.
func NewClientVaultService(
	stateStore store.StateStore,
	codec crypto.BlobCodec,
	session *VaultSession,
	syncSvc ClientSyncService,
	log *logger.Logger,
) ClientVaultService {
	return &clientVaultService{
		stateStore: stateStore,
		codec:      codec,
		session:    session,
		syncSvc:    syncSvc,
		validator:  validators.NewSnapshotValidator(),
		logger:     log,
	}
}

// Apply implements [ClientVaultService]. The local write is durable before
// the method returns; the sync runs in the background.
func (g *clientVaultService) Apply(ctx context.Context, fn MutationFunc) error {
	if err := g.apply(ctx, fn); err != nil {
		return err
	}

	g.syncSvc.TriggerSync()
	return nil
}

// ApplySync implements [ClientVaultService].
func (g *clientVaultService) ApplySync(ctx context.Context, fn MutationFunc) error {
	if err := g.apply(ctx, fn); err != nil {
		return err
	}

	return g.syncSvc.Sync(ctx)
}

func (g *clientVaultService) apply(ctx context.Context, fn MutationFunc) error {
	key := g.session.Key()
	if key == nil {
		return ErrNotAuthenticated
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	snap, err := g.currentSnapshot(ctx, key)
	if err != nil {
		return err
	}

	if err = fn(snap); err != nil {
		return fmt.Errorf("%w: %v", ErrMutationRejected, err)
	}

	if err = g.validator.Validate(ctx, snap); err != nil {
		return fmt.Errorf("%w: %v", ErrMutationRejected, err)
	}

	blob, err := g.codec.EncryptSnapshot(snap, key)
	if err != nil {
		return fmt.Errorf("encrypt mutated vault: %w", err)
	}

	state, err := g.stateStore.MarkDirty(ctx, blob)
	if err != nil {
		return fmt.Errorf("persist mutation: %w", err)
	}

	g.session.SetSnapshot(snap)
	g.logger.Debug().Uint64("mutation_seq", state.MutationSeq).Msg("local mutation persisted")
	return nil
}

// currentSnapshot returns a private working copy of the vault. The first
// mutation on a device that never synced starts from an empty vault.
func (g *clientVaultService) currentSnapshot(ctx context.Context, key []byte) (*models.VaultSnapshot, error) {
	blob, _, err := g.stateStore.Load(ctx)
	if errors.Is(err, store.ErrVaultNotProvisioned) {
		return models.NewVaultSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load local state: %w", err)
	}

	snap, err := g.codec.DecryptSnapshot(blob, key)
	if err != nil {
		return nil, fmt.Errorf("decrypt local vault: %w", err)
	}
	return snap, nil
}
