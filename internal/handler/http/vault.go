package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/store"
	"github.com/ivolkov/go-vault-sync/internal/utils"
	"github.com/ivolkov/go-vault-sync/models"
)

// revision returns the caller's current vault revision. A user with no
// stored vault gets revision 0, not an error.
func (h *Handler) revision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.revision").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	revision, err := h.services.VaultService.Revision(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.revision").Msg("error getting vault revision")
		http.Error(w, "error getting vault revision", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.RevisionResponse{Revision: revision}, http.StatusOK)
}

// download returns the caller's encrypted vault blob and its revision.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.download").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	vault, err := h.services.VaultService.Download(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrVaultNotFound) {
			http.Error(w, "no vault stored for user", http.StatusNotFound)
			return
		}
		log.Err(err).Str("func", "*Handler.download").Msg("error getting vault")
		http.Error(w, "error getting vault", statusFromError(err))
		return
	}

	utils.WriteJSON(w, vault, http.StatusOK)
}

// upload stores a new encrypted vault blob against its base revision and
// returns the newly assigned revision. Stale base revisions get 409.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.upload").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var uploadRequest models.VaultUpload
	if err := json.NewDecoder(r.Body).Decode(&uploadRequest); err != nil {
		log.Err(err).Str("func", "*Handler.upload").Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	revision, err := h.services.VaultService.Upload(ctx, userID, uploadRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upload").Msg("error saving vault")
		http.Error(w, "error saving vault", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.VaultUploadResult{Revision: revision}, http.StatusOK)
}
