package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the vault server endpoint used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local state database settings for the client.
type ClientDB struct {
	// Path is the SQLite file holding the blob and sync state.
	Path string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains sync engine settings.
type ClientSync struct {
	// Interval defines how often the background sync job runs.
	Interval time.Duration
	// MaxAttempts caps the passes of a single sync cycle. Zero selects
	// the engine default.
	MaxAttempts int
	// TrashRetention is how long trashed items survive before pruning.
	// Zero selects the engine default.
	TrashRetention time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains sync engine settings.
	Sync ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				Path: cfg.Storage.Local.Path,
			},
		},
		Sync: ClientSync{
			Interval:       cfg.Sync.Interval,
			MaxAttempts:    cfg.Sync.MaxAttempts,
			TrashRetention: cfg.Sync.TrashRetention,
		},
	}

	return clientCfg, clientCfg.validate()
}
