package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ivolkov/go-vault-sync/internal/config"
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/service"
	"github.com/ivolkov/go-vault-sync/internal/workers"
)

// Credentials carries the account the daemon runs under. When Register is
// set the account is created first; otherwise an existing account is logged
// into.
type Credentials struct {
	Login          string
	MasterPassword string
	Register       bool
}

// App is the headless sync daemon: it authenticates once on startup and
// keeps the local vault converged with the server until stopped.
type App struct {
	services *service.ClientServices
	workers  workers.Runner
	creds    Credentials
	logger   *logger.Logger
}

// NewApp wires the daemon over the given client services.
func NewApp(services *service.ClientServices, cfg config.ClientSync, creds Credentials, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("no client services provided")
	}

	return &App{
		services: services,
		workers:  workers.New(&syncWorker{job: services.SyncJob, interval: cfg.Interval}),
		creds:    creds,
		logger:   log,
	}, nil
}

// Run authenticates, performs an initial sync, and blocks running the
// background workers until ctx is cancelled.
//
// A failed initial sync is not fatal: the daemon starts offline and the
// periodic job catches up once the server is reachable again.
func (a *App) Run(ctx context.Context) error {
	if a.creds.Register {
		if err := a.services.AuthService.Register(ctx, a.creds.Login, a.creds.MasterPassword); err != nil {
			return fmt.Errorf("register: %w", err)
		}
		a.logger.Info().Str("login", a.creds.Login).Msg("account registered")
	} else {
		if err := a.services.AuthService.Login(ctx, a.creds.Login, a.creds.MasterPassword); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		a.logger.Info().Str("login", a.creds.Login).Msg("logged in")
	}

	if err := a.services.SyncService.Sync(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("initial sync failed, continuing offline")
	}

	a.workers.Run(ctx)
	defer a.workers.Stop()

	<-ctx.Done()
	a.logger.Info().Msg("sync daemon stopped")

	return nil
}

// syncWorker adapts the periodic sync job to the [workers.Worker] contract.
type syncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
}

func (s *syncWorker) Run(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *syncWorker) Stop() {
	s.job.Stop()
}
