package http

import (
	"errors"
	"net/http"

	"github.com/ivolkov/go-vault-sync/internal/service"
	"github.com/ivolkov/go-vault-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongCredentials:    http.StatusUnauthorized,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrVaultNotFound:      http.StatusNotFound,
	store.ErrRevisionConflict:   http.StatusConflict,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
