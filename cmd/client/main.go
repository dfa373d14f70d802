package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ivolkov/go-vault-sync/internal/adapter"
	"github.com/ivolkov/go-vault-sync/internal/client"
	"github.com/ivolkov/go-vault-sync/internal/config"
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/service"
	"github.com/ivolkov/go-vault-sync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vault-sync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	stateStore, err := store.NewStateStore(cfg.Storage.DB.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local state store")
	}
	defer stateStore.Close()

	services := service.NewClientServices(stateStore, serverAdapter, cfg.Sync, log)

	creds := client.Credentials{
		Login:          os.Getenv("VAULT_LOGIN"),
		MasterPassword: os.Getenv("VAULT_MASTER_PASSWORD"),
		Register:       os.Getenv("VAULT_REGISTER") == "true",
	}
	if creds.Login == "" || creds.MasterPassword == "" {
		log.Fatal().Msg("VAULT_LOGIN and VAULT_MASTER_PASSWORD must be set")
	}

	app, err := client.NewApp(services, cfg.Sync, creds, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
