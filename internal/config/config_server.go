package config

import (
	"fmt"
	"time"
)

// ServerAuth holds the server's token and hashing secrets.
type ServerAuth struct {
	// AuthHashKey is the HMAC key applied to client auth proofs before
	// storage.
	AuthHashKey string
	// TokenSignKey signs and verifies JWT tokens.
	TokenSignKey string
	// TokenIssuer is the "iss" claim of issued tokens.
	TokenIssuer string
	// TokenDuration is the lifetime of issued tokens.
	TokenDuration time.Duration
}

// ServerConfig is the top-level server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	HTTPAddress string
	// RequestTimeout bounds a single inbound request.
	RequestTimeout time.Duration
	// DSN is the PostgreSQL connection string.
	DSN string
	// Auth contains authentication secrets and token parameters.
	Auth ServerAuth
}

// GetServerConfig builds and validates a server-specific config view from
// the merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		DSN:            cfg.Storage.DB.DSN,
		Auth: ServerAuth{
			AuthHashKey:   cfg.Auth.AuthHashKey,
			TokenSignKey:  cfg.Auth.TokenSignKey,
			TokenIssuer:   cfg.Auth.TokenIssuer,
			TokenDuration: cfg.Auth.TokenDuration,
		},
	}

	return serverCfg, serverCfg.validate()
}
