package service

import (
	"github.com/ivolkov/go-vault-sync/internal/config"
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/store"
)

// Services bundles the server-side services consumed by the HTTP handlers.
type Services struct {
	AuthService  AuthService
	VaultService VaultService
}

// NewServices wires the server services over the PostgreSQL repositories.
func NewServices(db *store.DB, cfg *config.ServerConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:  NewAuthService(store.NewUserRepository(db), cfg.Auth, logger),
		VaultService: NewVaultService(store.NewVaultRepository(db), logger),
	}
}
