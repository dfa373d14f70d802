package http

import (
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/service"
)

// Handler bundles the service layer and logger for the HTTP transport.
type Handler struct {
	services *service.Services
	logger   *logger.Logger
}

// NewHandler returns a Handler wired to the given services.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	return &Handler{services: services, logger: logger}
}
