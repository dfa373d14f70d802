package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/utils"
	"github.com/ivolkov/go-vault-sync/models"
)

// register creates an account and issues a token for it. The token is
// returned in the "Authorization" response header as a Bearer value.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("error registering user")
		http.Error(w, "error registering user", statusFromError(err))
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("error creating token")
		http.Error(w, "error creating token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}

// login verifies the client's auth proof and issues a token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("error logging in")
		http.Error(w, "error logging in", statusFromError(err))
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("error creating token")
		http.Error(w, "error creating token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}

// params returns the account's key-derivation parameters (login and
// encryption salt) so a device can derive its keys before authenticating.
func (h *Handler) params(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.params").Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	found, err := h.services.AuthService.SaltByLogin(ctx, user.Login)
	if err != nil {
		log.Err(err).Str("func", "*Handler.params").Msg("error getting account params")
		http.Error(w, "error getting account params", statusFromError(err))
		return
	}

	utils.WriteJSON(w, found, http.StatusOK)
}
