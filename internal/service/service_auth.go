package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ivolkov/go-vault-sync/internal/config"
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/store"
	"github.com/ivolkov/go-vault-sync/internal/utils"
	"github.com/ivolkov/go-vault-sync/models"
)

// authService is the concrete implementation of AuthService. It handles
// account registration, auth proof verification, and JWT token lifecycle
// using a UserRepository for persistence and HMAC-SHA256 for proof hashing.
type authService struct {
	userRepository store.UserRepository

	// hashKey is the HMAC secret applied to the client's auth proof
	// before storage or comparison. Must match the value used at
	// registration time.
	hashKey string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.ServerAuth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hashKey:        cfg.AuthHashKey,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser implements [AuthService]. The incoming AuthHash — already a
// KDF output on the client — is hashed once more with the server's HMAC key
// before it is persisted.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.AuthHash == "" || user.EncryptionSalt == "" {
		log.Error().Str("login", user.Login).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user.AuthHash = utils.HashString(user.AuthHash, a.hashKey)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login implements [AuthService].
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user lookup ended with error")
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	if !utils.HashEqual(user.AuthHash, foundUser.AuthHash, a.hashKey) {
		return models.User{}, ErrWrongCredentials
	}

	return foundUser, nil
}

// SaltByLogin implements [AuthService]. Only the salt leaves the server; the
// stored auth hash never does.
func (a *authService) SaltByLogin(ctx context.Context, login string) (models.User, error) {
	foundUser, err := a.userRepository.FindUserByLogin(ctx, login)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	return models.User{Login: foundUser.Login, EncryptionSalt: foundUser.EncryptionSalt}, nil
}

// CreateToken implements [AuthService].
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// ParseToken implements [AuthService].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, fmt.Errorf("parse token: %w", err)
	}

	return token, nil
}
