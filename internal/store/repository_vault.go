package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ivolkov/go-vault-sync/models"
)

// vaultRepository is the PostgreSQL implementation of [VaultRepository].
// One row per user holds the latest accepted blob and its revision; the row
// is locked for the duration of a save so revision assignment is serial per
// user.
type vaultRepository struct {
	db *DB
}

// NewVaultRepository constructs a [VaultRepository] over the given database.
func NewVaultRepository(db *DB) VaultRepository {
	return &vaultRepository{db: db}
}

// Revision implements [VaultRepository].
func (r *vaultRepository) Revision(ctx context.Context, userID int64) (uint64, error) {
	query, args, err := sq.Select("revision").
		From("vaults").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var revision uint64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get vault revision: %w", err)
	}
	return revision, nil
}

// Vault implements [VaultRepository].
func (r *vaultRepository) Vault(ctx context.Context, userID int64) (models.VaultDownload, error) {
	query, args, err := sq.Select("blob", "revision").
		From("vaults").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return models.VaultDownload{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var dl models.VaultDownload
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&dl.Blob, &dl.Revision)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultDownload{}, ErrVaultNotFound
	}
	if err != nil {
		return models.VaultDownload{}, fmt.Errorf("get vault blob: %w", err)
	}
	return dl, nil
}

// Save implements [VaultRepository].
//
// Revision assignment:
//   - no stored vault yet: the blob is inserted at baseRevision+1, so a
//     first upload (base 0) yields revision 1 and a recovery upload after
//     server-side data loss preserves the client's history as a gap;
//   - baseRevision == stored revision: normal advance to revision+1;
//   - baseRevision > stored revision: disaster recovery — the client's blob
//     is authoritative and the gap up to baseRevision+1 is kept as an audit
//     trail of the event;
//   - baseRevision < stored revision: another device already advanced the
//     vault; returns [ErrRevisionConflict].
func (r *vaultRepository) Save(ctx context.Context, userID int64, blob []byte, baseRevision uint64, deviceID string) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	var stored uint64
	err = tx.QueryRowContext(ctx,
		"SELECT revision FROM vaults WHERE user_id = $1 FOR UPDATE", userID).Scan(&stored)

	newRevision := baseRevision + 1
	switch {
	case errors.Is(err, sql.ErrNoRows):
		insert, args, buildErr := sq.Insert("vaults").
			Columns("user_id", "revision", "blob", "device_id").
			Values(userID, newRevision, blob, deviceID).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if buildErr != nil {
			return 0, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, buildErr)
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return 0, fmt.Errorf("insert vault: %w", err)
		}

	case err != nil:
		return 0, fmt.Errorf("lock vault row: %w", err)

	case baseRevision < stored:
		return 0, ErrRevisionConflict

	default:
		update, args, buildErr := sq.Update("vaults").
			Set("revision", newRevision).
			Set("blob", blob).
			Set("device_id", deviceID).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"user_id": userID}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if buildErr != nil {
			return 0, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, buildErr)
		}
		if _, err := tx.ExecContext(ctx, update, args...); err != nil {
			return 0, fmt.Errorf("update vault: %w", err)
		}

		if baseRevision > stored {
			r.db.logger.Warn().
				Int64("user_id", userID).
				Uint64("stored_revision", stored).
				Uint64("base_revision", baseRevision).
				Msg("recovery upload accepted; revision gap preserved")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCommittingTransaction, err)
	}

	return newRevision, nil
}
