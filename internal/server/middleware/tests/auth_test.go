package tests

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-courses-api/internal/shared/logger"
)

type fakeAuth struct {
	users map[string]string
	err   error
}

func (f fakeAuth) Authenticate(_ context.Context, email, password string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	if p, ok := f.users[email]; ok && p == password {
		return models.User{ID: 1, EmailAddress: email}, nil
	}
	return models.User{}, fmt.Errorf("%w: authentication failure", serr.ErrInvalidCredentials)
}

// пишет статус и сообщение, как общий рендерер
func statusWriter(w http.ResponseWriter, _ *http.Request, err error) {
	w.WriteHeader(serr.StatusOf(err))
	_, _ = w.Write([]byte(serr.PublicMessage(err)))
}

func newAuthHandler(auth middleware.Authenticator) http.Handler {
	return middleware.BasicAuth(auth, logger.Nop(), statusWriter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(u.EmailAddress))
	}))
}

func TestBasicAuth(t *testing.T) {
	h := newAuthHandler(fakeAuth{users: map[string]string{"joe@smith.com": "joepassword"}})

	tests := []struct {
		name     string
		setAuth  func(r *http.Request)
		wantCode int
		wantBody string
	}{
		{"ok", func(r *http.Request) { r.SetBasicAuth("joe@smith.com", "joepassword") }, http.StatusOK, "joe@smith.com"},
		{"no header", func(r *http.Request) {}, http.StatusUnauthorized, "Access Denied"},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer token") }, http.StatusUnauthorized, "Access Denied"},
		{"wrong password", func(r *http.Request) { r.SetBasicAuth("joe@smith.com", "nope") }, http.StatusUnauthorized, "Access Denied"},
		{"unknown user", func(r *http.Request) { r.SetBasicAuth("who@mail.com", "x") }, http.StatusUnauthorized, "Access Denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			tt.setAuth(req)
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			require.Equal(t, tt.wantCode, rr.Code)
			require.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

// сбой хранилища — не 401
func TestBasicAuth_StorageError(t *testing.T) {
	h := newAuthHandler(fakeAuth{err: serr.ErrInternal})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.SetBasicAuth("joe@smith.com", "joepassword")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
