package service

import (
	"github.com/ivolkov/go-vault-sync/internal/adapter"
	"github.com/ivolkov/go-vault-sync/internal/config"
	"github.com/ivolkov/go-vault-sync/internal/crypto"
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/merge"
	"github.com/ivolkov/go-vault-sync/internal/store"
)

// ClientServices bundles the client-side engine: one shared session, the
// sync engine, the mutation gateway, and the auth boundary.
type ClientServices struct {
	Session      *VaultSession
	AuthService  ClientAuthService
	VaultService ClientVaultService
	SyncService  ClientSyncService
	SyncJob      ClientSyncJob
}

// NewClientServices wires the client services over the shared state store
// and server adapter.
func NewClientServices(
	stateStore store.StateStore,
	serverAdapter adapter.ServerAdapter,
	cfg config.ClientSync,
	log *logger.Logger,
) *ClientServices {
	session := NewVaultSession()
	keyChain := crypto.NewKeyChain()
	codec := crypto.NewBlobCodec()
	pruner := merge.NewPruner(cfg.TrashRetention, log)

	syncSvc := NewClientSyncService(stateStore, serverAdapter, codec, pruner, session, cfg.MaxAttempts, log)
	authSvc := NewClientAuthService(stateStore, serverAdapter, keyChain, codec, session, log)
	vaultSvc := NewClientVaultService(stateStore, codec, session, syncSvc, log)

	return &ClientServices{
		Session:      session,
		AuthService:  authSvc,
		VaultService: vaultSvc,
		SyncService:  syncSvc,
		SyncJob:      NewClientSyncJob(syncSvc),
	}
}
