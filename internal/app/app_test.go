package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SergeyBogomolovv/store-orders/internal/auth"
	"github.com/SergeyBogomolovv/store-orders/internal/config"
	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticVerifier struct{}

func (staticVerifier) Verify(token string) (entities.Identity, error) {
	if token == "valid" {
		return entities.Identity{UserID: 1, Role: entities.RoleAdmin}, nil
	}
	return entities.Identity{}, entities.ErrUnauthenticated
}

type whoAmI struct{}

func (whoAmI) Init(r chi.Router) {
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(identity.Role))
	})
}

type recorder struct {
	started bool
	closed  bool
	err     error
}

func (r *recorder) Start(context.Context) error {
	r.started = true
	return r.err
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Http: config.Http{Host: "127.0.0.1", Port: "0"},
		Cors: config.CORS{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestApp() *application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(logger, testConfig(), staticVerifier{})
	a.SetHTTPHandlers(whoAmI{})
	return a
}

func TestApplication_Routes(t *testing.T) {
	a := newTestApp()

	testCases := []struct {
		name       string
		path       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{name: "health is public", path: "/healthz", wantStatus: http.StatusOK, wantBody: `"data":"ok"`},
		{name: "metrics are public", path: "/metrics", wantStatus: http.StatusOK, wantBody: "go_goroutines"},
		{name: "api requires token", path: "/whoami", wantStatus: http.StatusUnauthorized, wantBody: "authentication required"},
		{name: "api rejects bad token", path: "/whoami", token: "forged", wantStatus: http.StatusUnauthorized},
		{name: "api with token", path: "/whoami", token: "valid", wantStatus: http.StatusOK, wantBody: "admin"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rr := httptest.NewRecorder()

			a.router.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestApplication_StartStop(t *testing.T) {
	a := newTestApp()
	starter := &recorder{}
	closer := &recorder{}
	a.SetStarters(starter)
	a.SetClosers(closer)

	require.NoError(t, a.Start(context.Background()))
	assert.True(t, starter.started)

	require.NoError(t, a.Stop())
	assert.True(t, closer.closed)
}

func TestApplication_StartFailsOnStarter(t *testing.T) {
	a := newTestApp()
	boom := errors.New("redis unavailable")
	a.SetStarters(&recorder{err: boom})

	err := a.Start(context.Background())

	assert.ErrorIs(t, err, boom)
}
