package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/ivolkov/go-vault-sync/internal/adapter"
	"github.com/ivolkov/go-vault-sync/internal/crypto"
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/merge"
	"github.com/ivolkov/go-vault-sync/internal/store"
	"github.com/ivolkov/go-vault-sync/models"
)

const (
	defaultMaxAttempts = 5
	defaultRetryDelay  = 200 * time.Millisecond
)

type inflightSync struct {
	done    chan struct{}
	err     error
	waiters int // callers delegating to this cycle, guarded by clientSyncService.mu
}

type clientSyncService struct {
	stateStore store.StateStore
	adapter    adapter.ServerAdapter
	codec      crypto.BlobCodec
	pruner     *merge.Pruner
	session    *VaultSession
	logger     *logger.Logger

	maxAttempts int
	retryDelay  time.Duration

	mu       sync.Mutex
	inflight *inflightSync
	offline  atomic.Bool
}

// NewClientSyncService constructs the sync engine. maxAttempts caps the
// passes of a single cycle; zero or negative selects the default of 5.
func NewClientSyncService(
	stateStore store.StateStore,
	serverAdapter adapter.ServerAdapter,
	codec crypto.BlobCodec,
	pruner *merge.Pruner,
	session *VaultSession,
	maxAttempts int,
	log *logger.Logger,
) ClientSyncService {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	return &clientSyncService{
		stateStore:  stateStore,
		adapter:     serverAdapter,
		codec:       codec,
		pruner:      pruner,
		session:     session,
		logger:      log,
		maxAttempts: maxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// Sync implements [ClientSyncService]. Exactly one cycle runs at a time;
// callers arriving while one is inflight block until it finishes and share
// its result. A successful cycle completes only once the store is clean, so
// a shared success never predates a delegating caller's mutation.
func (o *clientSyncService) Sync(ctx context.Context) error {
	o.mu.Lock()
	if fl := o.inflight; fl != nil {
		fl.waiters++
		o.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-fl.done:
			return fl.err
		}
	}

	fl := &inflightSync{done: make(chan struct{})}
	o.inflight = fl
	o.mu.Unlock()

	fl.err = o.runCycle(ctx)
	// A caller may have delegated to this cycle after its final commit; a
	// mutation of theirs that slipped in would otherwise be acknowledged by
	// a success that predates it. Re-run until completion observes a clean
	// store (offline cycles park dirty state for later and are exempt).
	for fl.err == nil && !o.offline.Load() && o.localDirty(ctx) {
		fl.err = o.runCycle(ctx)
	}
	close(fl.done)

	o.mu.Lock()
	o.inflight = nil
	o.mu.Unlock()

	return fl.err
}

// localDirty reports whether the store holds an unsynchronized mutation.
// An unprovisioned or unreadable store counts as clean.
func (o *clientSyncService) localDirty(ctx context.Context) bool {
	_, state, err := o.stateStore.Load(ctx)
	return err == nil && state.Dirty
}

// TriggerSync implements [ClientSyncService]. The cycle runs detached from
// the caller's context; failures are logged and surface on the next
// blocking Sync or in Status.
func (o *clientSyncService) TriggerSync() {
	go func() {
		if err := o.Sync(context.Background()); err != nil {
			o.logger.Error().Err(err).Msg("background sync failed")
		}
	}()
}

// Status implements [ClientSyncService].
func (o *clientSyncService) Status(ctx context.Context) models.SyncStatus {
	o.mu.Lock()
	syncing := o.inflight != nil
	o.mu.Unlock()

	var dirty bool
	if _, state, err := o.stateStore.Load(ctx); err == nil {
		dirty = state.Dirty
	}

	return models.SyncStatus{
		Offline: o.offline.Load(),
		Syncing: syncing,
		Dirty:   dirty,
	}
}

// runCycle drives pass until convergence. A pass that lost a race — another
// device won the upload, or a local mutation slipped in mid-flight — is
// retried with the refreshed state; everything else fails the cycle.
func (o *clientSyncService) runCycle(ctx context.Context) error {
	backoff := retry.WithMaxRetries(uint64(o.maxAttempts-1), retry.NewConstant(o.retryDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		passErr := o.pass(ctx)
		if errors.Is(passErr, adapter.ErrOutdated) || errors.Is(passErr, store.ErrSeqConflict) {
			return retry.RetryableError(passErr)
		}
		return passErr
	})
	if err != nil {
		if errors.Is(err, adapter.ErrOutdated) || errors.Is(err, store.ErrSeqConflict) {
			return fmt.Errorf("%w: %v", ErrMaxRetriesReached, err)
		}
		if errors.Is(err, adapter.ErrUnreachable) {
			o.offline.Store(true)
			o.logger.Warn().Err(err).Msg("server unreachable, staying offline")
			return nil
		}
		return err
	}

	o.offline.Store(false)
	return nil
}

// pass executes one reconciliation pass. The mutation sequence captured
// before any network round trip fences the final commit: if a local
// mutation lands mid-pass, the commit is refused and the pass retries
// against the newer state.
func (o *clientSyncService) pass(ctx context.Context) error {
	key := o.session.Key()
	if key == nil {
		return ErrNotAuthenticated
	}

	blob, state, err := o.stateStore.Load(ctx)
	if errors.Is(err, store.ErrVaultNotProvisioned) {
		return o.bootstrap(ctx, key)
	}
	if err != nil {
		return fmt.Errorf("load local state: %w", err)
	}
	seqAtStart := state.MutationSeq

	serverRev, err := o.adapter.FetchRevision(ctx)
	if err != nil {
		return fmt.Errorf("fetch server revision: %w", err)
	}

	switch {
	case serverRev == state.ServerRevision && !state.Dirty:
		return nil
	case serverRev > state.ServerRevision && !state.Dirty:
		return o.adoptServer(ctx, key, seqAtStart)
	case serverRev > state.ServerRevision: // dirty on both sides
		return o.mergeAndUpload(ctx, key, blob, seqAtStart)
	default:
		// Dirty with the server in step, or the server fell behind the
		// local revision (rollback recovery). Both resolve by uploading
		// local state against the local revision.
		return o.uploadLocal(ctx, key, blob, state, seqAtStart)
	}
}

// bootstrap handles the unprovisioned store: adopt the server's vault if it
// has one, otherwise wait for registration or the first mutation to create
// local state. The commit is fenced on mutation sequence zero so a first
// local mutation landing while the download is in flight refuses the adopt;
// the conflict retries the pass, which then merges instead.
func (o *clientSyncService) bootstrap(ctx context.Context, key []byte) error {
	dl, err := o.adapter.DownloadVault(ctx)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap download: %w", err)
	}

	snap, err := o.codec.DecryptSnapshot(dl.Blob, key)
	if err != nil {
		return fmt.Errorf("bootstrap decrypt: %w", err)
	}

	if err = o.stateStore.CommitSync(ctx, dl.Blob, dl.Revision, 0); err != nil {
		return fmt.Errorf("bootstrap commit downloaded vault: %w", err)
	}

	o.session.SetSnapshot(snap)
	return nil
}

// adoptServer handles the clean fast-forward: the server moved ahead and
// there is nothing local to preserve, so the server blob is taken verbatim.
func (o *clientSyncService) adoptServer(ctx context.Context, key []byte, seqAtStart uint64) error {
	dl, err := o.adapter.DownloadVault(ctx)
	if err != nil {
		return fmt.Errorf("download vault: %w", err)
	}

	// Decrypt before adopting: a blob that cannot be opened with our key
	// must never replace working local state.
	snap, err := o.codec.DecryptSnapshot(dl.Blob, key)
	if err != nil {
		return fmt.Errorf("decrypt downloaded vault: %w", err)
	}

	if err = o.stateStore.CommitSync(ctx, dl.Blob, dl.Revision, seqAtStart); err != nil {
		return fmt.Errorf("commit downloaded vault: %w", err)
	}

	o.session.SetSnapshot(snap)
	o.logger.Info().Uint64("revision", dl.Revision).Msg("adopted server vault")
	return nil
}

// uploadLocal pushes the local blob to the server. Expired trash is pruned
// on the way out so tombstones propagate instead of full records.
func (o *clientSyncService) uploadLocal(ctx context.Context, key, blob []byte, state models.SyncState, seqAtStart uint64) error {
	snap, err := o.codec.DecryptSnapshot(blob, key)
	if err != nil {
		return fmt.Errorf("decrypt local vault: %w", err)
	}

	outBlob := blob
	pruned, removed := o.pruner.Prune(snap, time.Now())
	if removed > 0 {
		snap = pruned
		if outBlob, err = o.codec.EncryptSnapshot(snap, key); err != nil {
			return fmt.Errorf("encrypt pruned vault: %w", err)
		}
	}

	newRev, err := o.adapter.UploadVault(ctx, models.VaultUpload{
		Blob:         outBlob,
		BaseRevision: state.ServerRevision,
		DeviceID:     o.session.DeviceID(),
	})
	if err != nil {
		return fmt.Errorf("upload vault: %w", err)
	}

	if err = o.commitUploaded(ctx, outBlob, newRev, seqAtStart); err != nil {
		return err
	}

	o.session.SetSnapshot(snap)
	return nil
}

// mergeAndUpload handles the conflict case: both sides moved. The remote
// snapshot is the merge base; local records win only on a strictly newer
// update timestamp. The merged result is uploaded against the revision that
// was actually downloaded, then committed locally.
func (o *clientSyncService) mergeAndUpload(ctx context.Context, key, blob []byte, seqAtStart uint64) error {
	dl, err := o.adapter.DownloadVault(ctx)
	if err != nil {
		return fmt.Errorf("download vault for merge: %w", err)
	}

	remote, err := o.codec.DecryptSnapshot(dl.Blob, key)
	if err != nil {
		return fmt.Errorf("decrypt remote vault: %w", err)
	}
	local, err := o.codec.DecryptSnapshot(blob, key)
	if err != nil {
		return fmt.Errorf("decrypt local vault: %w", err)
	}

	merged := merge.Snapshots(local, remote)
	merged, _ = o.pruner.Prune(merged, time.Now())

	outBlob, err := o.codec.EncryptSnapshot(merged, key)
	if err != nil {
		return fmt.Errorf("encrypt merged vault: %w", err)
	}

	newRev, err := o.adapter.UploadVault(ctx, models.VaultUpload{
		Blob:         outBlob,
		BaseRevision: dl.Revision,
		DeviceID:     o.session.DeviceID(),
	})
	if err != nil {
		return fmt.Errorf("upload merged vault: %w", err)
	}

	if err = o.commitUploaded(ctx, outBlob, newRev, seqAtStart); err != nil {
		return err
	}

	o.session.SetSnapshot(merged)
	return nil
}

// commitUploaded records a server-accepted upload locally. When the fencing
// check fails — a mutation landed while the upload was in flight — the
// revision is still advanced (the server really does hold newRev now) but
// the blob and the dirty flag stay, so the next pass uploads the newer
// state on top of it.
func (o *clientSyncService) commitUploaded(ctx context.Context, blob []byte, newRev, seqAtStart uint64) error {
	err := o.stateStore.CommitSync(ctx, blob, newRev, seqAtStart)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrSeqConflict) {
		return fmt.Errorf("commit sync result: %w", err)
	}

	if advErr := o.stateStore.AdvanceRevision(ctx, newRev); advErr != nil {
		return fmt.Errorf("advance revision after fenced commit: %w", advErr)
	}

	o.logger.Info().Uint64("revision", newRev).Msg("mutation raced the upload, revision advanced, staying dirty")
	return err
}
