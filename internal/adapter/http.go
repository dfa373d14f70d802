package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ivolkov/go-vault-sync/internal/config"
	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/utils"
	"github.com/ivolkov/go-vault-sync/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: register request: %v", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return user, nil
}

// RequestSalt implements [ServerAdapter]. It POSTs the login to
// POST /api/auth/params and returns a partial [models.User] containing only
// Login and EncryptionSalt. The salt is required to derive the vault key
// before the auth proof can be computed for Login.
func (h *httpServerAdapter) RequestSalt(ctx context.Context, login string) (models.User, error) {
	var foundUser models.User // only login and encryption salt

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: login}).
		SetResult(&foundUser).
		Post("/api/auth/params")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: request salt: %v", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return models.User{Login: login, EncryptionSalt: foundUser.EncryptionSalt}, nil
}

// Login implements [ServerAdapter]. It POSTs the pre-computed auth proof to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	var foundUser models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&foundUser).
		Post("/api/auth/login")
	if err != nil {
		return user, fmt.Errorf("%w: login request: %v", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return user, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return foundUser, nil
}

// FetchRevision implements [ServerAdapter]. It GETs /api/vault/revision and
// decodes the current server revision. Requires a valid bearer token.
func (h *httpServerAdapter) FetchRevision(ctx context.Context) (uint64, error) {
	resp, err := h.authedRequest(ctx).Get("/api/vault/revision")
	if err != nil {
		return 0, fmt.Errorf("%w: fetch revision request: %v", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	var rr models.RevisionResponse
	if err = json.Unmarshal(resp.Body(), &rr); err != nil {
		return 0, fmt.Errorf("decode revision response: %w", err)
	}

	return rr.Revision, nil
}

// DownloadVault implements [ServerAdapter]. It GETs /api/vault and returns
// the encrypted blob together with the revision it carries. Requires a valid
// bearer token. A server that holds no vault yet answers 404, surfaced as an
// error wrapping [ErrNotFound].
func (h *httpServerAdapter) DownloadVault(ctx context.Context) (models.VaultDownload, error) {
	resp, err := h.authedRequest(ctx).Get("/api/vault")
	if err != nil {
		return models.VaultDownload{}, fmt.Errorf("%w: download vault request: %v", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultDownload{}, err
	}

	var vd models.VaultDownload
	if err = json.Unmarshal(resp.Body(), &vd); err != nil {
		return models.VaultDownload{}, fmt.Errorf("decode vault download response: %w", err)
	}

	return vd, nil
}

// UploadVault implements [ServerAdapter]. It PUTs the encrypted blob to
// PUT /api/vault and returns the revision the server assigned. An HTTP 409
// (stale base revision) is surfaced as an error wrapping [ErrOutdated].
// Requires a valid bearer token.
func (h *httpServerAdapter) UploadVault(ctx context.Context, req models.VaultUpload) (uint64, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/api/vault")
	if err != nil {
		return 0, fmt.Errorf("%w: upload vault request: %v", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrConflict) {
			return 0, fmt.Errorf("%w: %v", ErrOutdated, err)
		}
		return 0, err
	}

	var result models.VaultUploadResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return 0, fmt.Errorf("decode vault upload response: %w", err)
	}

	return result.Revision, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
