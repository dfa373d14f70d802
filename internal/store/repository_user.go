package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ivolkov/go-vault-sync/models"
)

// userRepository is the PostgreSQL implementation of [UserRepository].
type userRepository struct {
	db *DB
}

// NewUserRepository constructs a [UserRepository] over the given database.
func NewUserRepository(db *DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser implements [UserRepository]. The server stores the client's
// auth hash and encryption salt; it never sees the master password or the
// vault key. Returns [ErrLoginAlreadyExists] on a duplicate login.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query, args, err := sq.Insert(user.TableName()).
		Columns("login", "auth_hash", "encryption_salt").
		Values(user.Login, user.AuthHash, user.EncryptionSalt).
		Suffix("RETURNING user_id, login, auth_hash, encryption_salt, created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var created models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&created.UserID, &created.Login, &created.AuthHash,
		&created.EncryptionSalt, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrLoginAlreadyExists
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

// FindUserByLogin implements [UserRepository]. Returns [ErrUserNotFound]
// when no account matches login.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	query, args, err := sq.Select("user_id", "login", "auth_hash", "encryption_salt", "created_at").
		From("users").
		Where(sq.Eq{"login": login}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var user models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&user.UserID, &user.Login, &user.AuthHash,
		&user.EncryptionSalt, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("find user by login: %w", err)
	}

	return user, nil
}
