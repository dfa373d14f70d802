package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivolkov/go-vault-sync/internal/logger"
	"github.com/ivolkov/go-vault-sync/internal/service"
	"github.com/ivolkov/go-vault-sync/models"
)

func newBody(s string) io.Reader { return strings.NewReader(s) }

// newTestRouter wires a full router over permissive mocks so routing and
// middleware order can be exercised end to end.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, u models.User) (models.User, error) { return u, nil },
		loginFn:        func(_ context.Context, u models.User) (models.User, error) { return u, nil },
		saltByLoginFn:  func(_ context.Context, _ string) (models.User, error) { return models.User{}, nil },
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{SignedString: "tok"}, nil
		},
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			return models.Token{UserID: 1}, nil
		},
	}
	vault := &mockVaultService{
		revisionFn: func(_ context.Context, _ int64) (uint64, error) { return 0, nil },
		downloadFn: func(_ context.Context, _ int64) (models.VaultDownload, error) {
			return models.VaultDownload{Blob: []byte{0x01}, Revision: 1}, nil
		},
		uploadFn: func(_ context.Context, _ int64, _ models.VaultUpload) (uint64, error) { return 1, nil },
	}

	h := NewHandler(&service.Services{AuthService: auth, VaultService: vault}, logger.Nop())
	return h.Init()
}

func TestRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		withBearer bool
		wantStatus int
	}{
		{name: "register is public", method: http.MethodPost, target: "/api/auth/register", body: `{"login":"a","auth_hash":"p","encryption_salt":"s"}`, wantStatus: http.StatusOK},
		{name: "login is public", method: http.MethodPost, target: "/api/auth/login", body: `{"login":"a","auth_hash":"p"}`, wantStatus: http.StatusOK},
		{name: "params is public", method: http.MethodPost, target: "/api/auth/params", body: `{"login":"a"}`, wantStatus: http.StatusOK},
		{name: "revision requires auth", method: http.MethodGet, target: "/api/vault/revision", wantStatus: http.StatusUnauthorized},
		{name: "revision with token", method: http.MethodGet, target: "/api/vault/revision", withBearer: true, wantStatus: http.StatusOK},
		{name: "download requires auth", method: http.MethodGet, target: "/api/vault", wantStatus: http.StatusUnauthorized},
		{name: "download with token", method: http.MethodGet, target: "/api/vault", withBearer: true, wantStatus: http.StatusOK},
		{name: "upload with token", method: http.MethodPut, target: "/api/vault", body: `{"blob":"AQ==","base_revision":0}`, withBearer: true, wantStatus: http.StatusOK},
		{name: "wrong method on vault", method: http.MethodDelete, target: "/api/vault", withBearer: true, wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, target: "/api/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, newBody(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			if tt.withBearer {
				req.Header.Set("Authorization", "Bearer some.valid.token")
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRoutes_TraceIDHeaderIsSet(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/params", newBody(`{"login":"a"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestRoutes_TraceIDIsPropagated(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/params", newBody(`{"login":"a"}`))
	req.Header.Set("X-Trace-ID", "trace-from-client")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-from-client", rec.Header().Get("X-Trace-ID"))
}
