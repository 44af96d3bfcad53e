package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariahq/aria/pkg/auth"
)

func setupAuthenticator(t *testing.T) (*auth.Authenticator, *auth.SessionStore, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := auth.NewSessionStoreWithClient(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}
	return auth.NewAuthenticator(store), store, cleanup
}

func issueToken(t *testing.T, store *auth.SessionStore, p *auth.Principal) string {
	t.Helper()
	token, tokenHash, err := auth.GenerateToken()
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), tokenHash, p))
	return token
}

func TestAccountAuthPassesPrincipal(t *testing.T) {
	authenticator, store, cleanup := setupAuthenticator(t)
	defer cleanup()

	token := issueToken(t, store, &auth.Principal{AccountID: "acct-1"})

	var got *auth.Principal
	handler := AccountAuth(authenticator, quietLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = auth.PrincipalFrom(r.Context())
		}))

	req := httptest.NewRequest("GET", "/api/account", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "acct-1", got.AccountID)
}

func TestAccountAuthRejectsBeforeHandler(t *testing.T) {
	authenticator, _, cleanup := setupAuthenticator(t)
	defer cleanup()

	called := false
	handler := AccountAuth(authenticator, quietLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/account", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestDeviceAuthMatchesRouteDevice(t *testing.T) {
	authenticator, store, cleanup := setupAuthenticator(t)
	defer cleanup()

	token := issueToken(t, store, &auth.Principal{AccountID: "acct-1", DeviceID: "device-1"})

	router := mux.NewRouter()
	router.Handle("/v1/device/{device_id}/wake-word-sample",
		DeviceAuth(authenticator, quietLogger())(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))).Methods("POST")

	req := httptest.NewRequest("POST", "/v1/device/device-1/wake-word-sample", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Same token against another device's route fails.
	req = httptest.NewRequest("POST", "/v1/device/device-2/wake-word-sample", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
