// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/models"
)

// stateStore is the SQLite-backed implementation of [StateStore]. The whole
// device state lives in one row; every write is a single transaction over
// that row, which is what makes the blob+flags atomicity contract hold
// across crashes.
type stateStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewStateStore opens the client database at path (":memory:" for tests),
// applies migrations, and returns a ready [StateStore].
func NewStateStore(path string, log *logger.Logger) (StateStore, error) {
	db, err := openClientDB(path)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	return &stateStore{db: db, logger: log}, nil
}

// Load implements [StateStore].
func (s *stateStore) Load(ctx context.Context) ([]byte, models.SyncState, error) {
	query, args, err := sq.Select("blob", "server_revision", "is_dirty", "mutation_seq").
		From("sync_state").
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return nil, models.SyncState{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var (
		blob  []byte
		state models.SyncState
	)
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&blob, &state.ServerRevision, &state.Dirty, &state.MutationSeq); err != nil {
		return nil, models.SyncState{}, fmt.Errorf("load sync state: %w", err)
	}

	if blob == nil {
		return nil, state, ErrVaultNotProvisioned
	}
	return blob, state, nil
}

// MarkDirty implements [StateStore]. The blob write, the dirty flag, and
// the sequence increment commit together or not at all.
func (s *stateStore) MarkDirty(ctx context.Context, blob []byte) (models.SyncState, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.SyncState{}, fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := sq.Update("sync_state").
		Set("blob", blob).
		Set("is_dirty", true).
		Set("mutation_seq", sq.Expr("mutation_seq + 1")).
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return models.SyncState{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return models.SyncState{}, fmt.Errorf("mark dirty: %w", err)
	}

	var state models.SyncState
	row := tx.QueryRowContext(ctx,
		"SELECT server_revision, is_dirty, mutation_seq FROM sync_state WHERE id = 1")
	if err := row.Scan(&state.ServerRevision, &state.Dirty, &state.MutationSeq); err != nil {
		return models.SyncState{}, fmt.Errorf("read state after mark dirty: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.SyncState{}, fmt.Errorf("%w: %v", ErrCommittingTransaction, err)
	}

	s.logger.Debug().Uint64("mutation_seq", state.MutationSeq).Msg("local mutation persisted")
	return state, nil
}

// CommitSync implements [StateStore]. The fencing check and the write are
// one statement: the UPDATE only matches when the persisted sequence still
// equals expectedSeq, so a conflicting commit leaves every field untouched.
func (s *stateStore) CommitSync(ctx context.Context, blob []byte, serverRevision, expectedSeq uint64) error {
	query, args, err := sq.Update("sync_state").
		Set("blob", blob).
		Set("server_revision", serverRevision).
		Set("is_dirty", false).
		Where(sq.Eq{"id": 1, "mutation_seq": expectedSeq}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("commit synced state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("commit synced state rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSeqConflict
	}

	s.logger.Debug().Uint64("server_revision", serverRevision).Msg("synced state committed")
	return nil
}

// AdvanceRevision implements [StateStore].
func (s *stateStore) AdvanceRevision(ctx context.Context, serverRevision uint64) error {
	query, args, err := sq.Update("sync_state").
		Set("server_revision", serverRevision).
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("advance server revision: %w", err)
	}
	return nil
}

// Replace implements [StateStore].
func (s *stateStore) Replace(ctx context.Context, blob []byte, serverRevision uint64) error {
	query, args, err := sq.Update("sync_state").
		Set("blob", blob).
		Set("server_revision", serverRevision).
		Set("is_dirty", false).
		Set("mutation_seq", 0).
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("replace vault: %w", err)
	}

	s.logger.Info().Uint64("server_revision", serverRevision).Msg("local vault replaced")
	return nil
}

// Close implements [StateStore].
func (s *stateStore) Close() error {
	return s.db.Close()
}
