package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivolkov/go-vault-sync/models"
)

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users (login,auth_hash,encryption_salt) VALUES ($1,$2,$3) RETURNING user_id, login, auth_hash, encryption_salt, created_at").
		WithArgs("alice", "hash", "salt").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "login", "auth_hash", "encryption_salt", "created_at"}).
			AddRow(int64(1), "alice", "hash", "salt", now))

	created, err := repo.CreateUser(context.Background(),
		models.User{Login: "alice", AuthHash: "hash", EncryptionSalt: "salt"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "alice", created.Login)
}

func TestUserRepository_CreateUserDuplicateLogin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users (login,auth_hash,encryption_salt) VALUES ($1,$2,$3) RETURNING user_id, login, auth_hash, encryption_salt, created_at").
		WithArgs("alice", "hash", "salt").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.CreateUser(context.Background(),
		models.User{Login: "alice", AuthHash: "hash", EncryptionSalt: "salt"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestUserRepository_FindUserByLoginNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT user_id, login, auth_hash, encryption_salt, created_at FROM users WHERE login = $1").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
