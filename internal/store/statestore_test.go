package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivolkov/go-vault-sync/internal/logger"
)

func newTestStore(t *testing.T) StateStore {
	t.Helper()
	s, err := NewStateStore(":memory:", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStateStore_UnprovisionedLoad(t *testing.T) {
	s := newTestStore(t)

	_, state, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrVaultNotProvisioned)
	assert.False(t, state.Dirty)
	assert.Zero(t, state.MutationSeq)
	assert.Zero(t, state.ServerRevision)
}

func TestStateStore_MarkDirtyIncrementsSeq(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	state, err := s.MarkDirty(ctx, []byte("blob-1"))
	require.NoError(t, err)
	assert.True(t, state.Dirty)
	assert.Equal(t, uint64(1), state.MutationSeq)

	state, err = s.MarkDirty(ctx, []byte("blob-2"))
	require.NoError(t, err)
	assert.True(t, state.Dirty)
	assert.Equal(t, uint64(2), state.MutationSeq)

	blob, loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob-2"), blob)
	assert.Equal(t, state, loaded)
}

func TestStateStore_MarkDirtyAfterSyncStaysDirty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.MarkDirty(ctx, []byte("blob"))
	require.NoError(t, err)
	require.NoError(t, s.CommitSync(ctx, []byte("blob"), 1, 1))

	state, err := s.MarkDirty(ctx, []byte("blob-2"))
	require.NoError(t, err)
	assert.True(t, state.Dirty)
	assert.Equal(t, uint64(2), state.MutationSeq)
	assert.Equal(t, uint64(1), state.ServerRevision, "MarkDirty must not touch the revision")
}

func TestStateStore_CommitSyncClearsDirty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	state, err := s.MarkDirty(ctx, []byte("local"))
	require.NoError(t, err)

	require.NoError(t, s.CommitSync(ctx, []byte("merged"), 7, state.MutationSeq))

	blob, loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("merged"), blob)
	assert.False(t, loaded.Dirty)
	assert.Equal(t, uint64(7), loaded.ServerRevision)
	assert.Equal(t, state.MutationSeq, loaded.MutationSeq)
}

func TestStateStore_CommitSyncFencingConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.MarkDirty(ctx, []byte("seq-1"))
	require.NoError(t, err)
	// A mutation lands mid-cycle: sequence moves to 2.
	_, err = s.MarkDirty(ctx, []byte("seq-2"))
	require.NoError(t, err)

	err = s.CommitSync(ctx, []byte("stale"), 9, 1)
	assert.ErrorIs(t, err, ErrSeqConflict)

	// The conflicting commit must leave every persisted field unchanged.
	blob, state, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("seq-2"), blob)
	assert.True(t, state.Dirty)
	assert.Equal(t, uint64(2), state.MutationSeq)
	assert.Zero(t, state.ServerRevision)
}

func TestStateStore_AdvanceRevisionKeepsDirty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.MarkDirty(ctx, []byte("blob"))
	require.NoError(t, err)

	require.NoError(t, s.AdvanceRevision(ctx, 12))

	blob, state, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), blob)
	assert.True(t, state.Dirty)
	assert.Equal(t, uint64(1), state.MutationSeq)
	assert.Equal(t, uint64(12), state.ServerRevision)
}

func TestStateStore_ReplaceResetsSequence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.MarkDirty(ctx, []byte("local"))
		require.NoError(t, err)
	}

	require.NoError(t, s.Replace(ctx, []byte("fresh-download"), 42))

	blob, state, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh-download"), blob)
	assert.False(t, state.Dirty)
	assert.Zero(t, state.MutationSeq)
	assert.Equal(t, uint64(42), state.ServerRevision)
}

func TestStateStore_SurvivesReopen(t *testing.T) {
	// Crash-recovery scenario: mutate offline, lose all in-memory state,
	// reopen — the dirty flag, sequence, and blob must all be back.
	path := filepath.Join(t.TempDir(), "vault.db")
	ctx := context.Background()

	s, err := NewStateStore(path, logger.Nop())
	require.NoError(t, err)

	var last uint64
	for i := 0; i < 5; i++ {
		state, err := s.MarkDirty(ctx, []byte("offline-edit"))
		require.NoError(t, err)
		last = state.MutationSeq
	}
	require.Equal(t, uint64(5), last)
	require.NoError(t, s.Close())

	reopened, err := NewStateStore(path, logger.Nop())
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	blob, state, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("offline-edit"), blob)
	assert.True(t, state.Dirty)
	assert.Equal(t, uint64(5), state.MutationSeq)
}
