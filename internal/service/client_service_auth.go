package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/ivolkov/go-vault-sync/internal/adapter"
	"github.com/ivolkov/go-vault-sync/internal/crypto"
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/store"
	"github.com/ivolkov/go-vault-sync/models"
)

// authProofSalt domain-separates the auth proof from the vault key: the
// server-visible proof and the encryption key are derived from the same
// password but can never substitute for each other.
var authProofSalt = "vault-sync-auth-proof-v1"

type clientAuthService struct {
	stateStore store.StateStore
	adapter    adapter.ServerAdapter
	keyChain   crypto.KeyChain
	codec      crypto.BlobCodec
	session    *VaultSession
	logger     *logger.Logger
}

// NewClientAuthService constructs the client auth boundary.
func NewClientAuthService(
	stateStore store.StateStore,
	serverAdapter adapter.ServerAdapter,
	keyChain crypto.KeyChain,
	codec crypto.BlobCodec,
	session *VaultSession,
	log *logger.Logger,
) ClientAuthService {
	return &clientAuthService{
		stateStore: stateStore,
		adapter:    serverAdapter,
		keyChain:   keyChain,
		codec:      codec,
		session:    session,
		logger:     log,
	}
}

// Register implements [ClientAuthService].
func (a *clientAuthService) Register(ctx context.Context, login, masterPassword string) error {
	salt, err := a.keyChain.GenerateEncryptionSalt()
	if err != nil {
		return fmt.Errorf("generate encryption salt: %w", err)
	}

	key := a.keyChain.DeriveKey(masterPassword, salt)
	proof := a.keyChain.AuthHash(key, authProofSalt)

	user := models.User{
		Login:          login,
		AuthHash:       base64.StdEncoding.EncodeToString(proof),
		EncryptionSalt: base64.StdEncoding.EncodeToString(salt),
	}

	if _, err = a.adapter.Register(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", ErrRegisterOnServer, err)
	}

	a.session.SetKey(key)

	// Provision an empty local vault so the first mutation and the first
	// sync cycle start from well-defined state.
	empty := models.NewVaultSnapshot()
	blob, err := a.codec.EncryptSnapshot(empty, key)
	if err != nil {
		return fmt.Errorf("encrypt initial vault: %w", err)
	}
	if err = a.stateStore.Replace(ctx, blob, 0); err != nil {
		return fmt.Errorf("provision local vault: %w", err)
	}
	a.session.SetSnapshot(empty)

	a.logger.Info().Str("login", login).Msg("account registered, local vault provisioned")
	return nil
}

// Login implements [ClientAuthService].
func (a *clientAuthService) Login(ctx context.Context, login, masterPassword string) error {
	userWithSalt, err := a.adapter.RequestSalt(ctx, login)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginOnServer, err)
	}

	salt, err := base64.StdEncoding.DecodeString(userWithSalt.EncryptionSalt)
	if err != nil {
		return fmt.Errorf("decode encryption salt: %w", err)
	}

	key := a.keyChain.DeriveKey(masterPassword, salt)
	proof := a.keyChain.AuthHash(key, authProofSalt)

	user := models.User{Login: login, AuthHash: base64.StdEncoding.EncodeToString(proof)}
	if _, err = a.adapter.Login(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", ErrLoginOnServer, err)
	}

	a.session.SetKey(key)

	return a.bootstrapReplica(ctx, key)
}

// bootstrapReplica prepares the local replica after login. A vault that
// already exists locally is kept as-is, it may hold offline edits the next
// sync reconciles, and only its decrypted form is loaded into the session.
// Installing server state is fenced on mutation sequence zero: once the key
// is in the session a mutation can land mid-download, and it must not be
// wiped by the bootstrap.
func (a *clientAuthService) bootstrapReplica(ctx context.Context, key []byte) error {
	blob, _, err := a.stateStore.Load(ctx)
	if err == nil {
		snap, decErr := a.codec.DecryptSnapshot(blob, key)
		if decErr != nil {
			return fmt.Errorf("decrypt existing local vault: %w", decErr)
		}
		a.session.SetSnapshot(snap)
		return nil
	}
	if !errors.Is(err, store.ErrVaultNotProvisioned) {
		return fmt.Errorf("load local state: %w", err)
	}

	dl, err := a.adapter.DownloadVault(ctx)
	if errors.Is(err, adapter.ErrNotFound) {
		// Account exists but has never uploaded: start empty at
		// revision 0.
		empty := models.NewVaultSnapshot()
		emptyBlob, encErr := a.codec.EncryptSnapshot(empty, key)
		if encErr != nil {
			return fmt.Errorf("encrypt initial vault: %w", encErr)
		}
		if err = a.stateStore.CommitSync(ctx, emptyBlob, 0, 0); err != nil {
			if errors.Is(err, store.ErrSeqConflict) {
				return a.keepRacedLocalVault(ctx, key)
			}
			return fmt.Errorf("provision local vault: %w", err)
		}
		a.session.SetSnapshot(empty)
		return nil
	}
	if err != nil {
		return fmt.Errorf("download vault: %w", err)
	}

	snap, err := a.codec.DecryptSnapshot(dl.Blob, key)
	if err != nil {
		return fmt.Errorf("decrypt downloaded vault: %w", err)
	}
	if err = a.stateStore.CommitSync(ctx, dl.Blob, dl.Revision, 0); err != nil {
		if errors.Is(err, store.ErrSeqConflict) {
			return a.keepRacedLocalVault(ctx, key)
		}
		return fmt.Errorf("install downloaded vault: %w", err)
	}
	a.session.SetSnapshot(snap)

	a.logger.Info().Uint64("revision", dl.Revision).Msg("local replica bootstrapped from server")
	return nil
}

// keepRacedLocalVault handles a mutation that landed while the bootstrap
// was in flight: the local vault won the fenced commit and stays dirty; it
// is loaded into the session and left for the next sync to reconcile.
func (a *clientAuthService) keepRacedLocalVault(ctx context.Context, key []byte) error {
	blob, _, err := a.stateStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("load local state: %w", err)
	}
	snap, err := a.codec.DecryptSnapshot(blob, key)
	if err != nil {
		return fmt.Errorf("decrypt existing local vault: %w", err)
	}
	a.session.SetSnapshot(snap)
	a.logger.Info().Msg("local mutation raced the bootstrap, keeping local vault")
	return nil
}
