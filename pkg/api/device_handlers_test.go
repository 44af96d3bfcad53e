package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariahq/aria/pkg/auth"
	"github.com/ariahq/aria/pkg/filestore"
	"github.com/ariahq/aria/pkg/httputil"
	"github.com/ariahq/aria/pkg/middleware"
	"github.com/ariahq/aria/pkg/storage"
)

type deviceTestEnv struct {
	router   *mux.Router
	accounts *fakeAccountRepo
	samples  *fakeSampleRepo
	dataDir  string
}

func setupDeviceEnv(t *testing.T, wakeWords []storage.WakeWord, strict bool) *deviceTestEnv {
	t.Helper()

	dataDir := t.TempDir()
	files, err := filestore.NewFileSystemStore(dataDir)
	require.NoError(t, err)

	accounts := &fakeAccountRepo{account: &storage.Account{ID: "acct-1", Username: "user"}}
	samples := &fakeSampleRepo{}

	handlers := NewDeviceHandlers(
		testLogger(),
		testMetrics(),
		accounts,
		&fakeWakeWordRepo{wakeWords: wakeWords},
		samples,
		files,
		strict,
	)

	router := mux.NewRouter()
	handlers.RegisterRoutes(router.PathPrefix("/v1").Subrouter())

	return &deviceTestEnv{router: router, accounts: accounts, samples: samples, dataDir: dataDir}
}

func sampleFields() map[string]string {
	return map[string]string{
		"wake_word": "hey aria",
		"engine":    "precise",
		"timestamp": "12345",
		"model":     "model-1",
	}
}

func configuredWakeWords() []storage.WakeWord {
	return []storage.WakeWord{
		{ID: "ww-1", AccountID: "acct-1", SettingName: "hey aria", Engine: "precise"},
	}
}

func TestUploadSample(t *testing.T) {
	env := setupDeviceEnv(t, configuredWakeWords(), false)

	req := withPrincipal(
		multipartRequest(t, "/v1/device/device-1/wake-word-sample", sampleFields(), []byte("RIFF audio")),
		&auth.Principal{AccountID: "acct-1", DeviceID: "device-1"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Wake word sample uploaded successfully", resp["message"])

	// The row references a file that exists on disk.
	require.Len(t, env.samples.added, 1)
	sample := env.samples.added[0]
	assert.Equal(t, "ww-1", sample.WakeWordID)
	assert.Equal(t, "acct-1", sample.AccountID)
	assert.Equal(t, "acct-1.12345.wav", sample.AudioFileName)

	content, err := os.ReadFile(filepath.Join(env.dataDir, "wake_word", "hey aria", sample.AudioFileName))
	require.NoError(t, err)
	assert.Equal(t, "RIFF audio", string(content))
}

func TestUploadSampleTwiceSameWakeWord(t *testing.T) {
	env := setupDeviceEnv(t, configuredWakeWords(), false)

	for _, timestamp := range []string{"12345", "12346"} {
		fields := sampleFields()
		fields["timestamp"] = timestamp
		req := withPrincipal(
			multipartRequest(t, "/v1/device/device-1/wake-word-sample", fields, []byte("x")),
			&auth.Principal{AccountID: "acct-1", DeviceID: "device-1"})
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Len(t, env.samples.added, 2)
}

func TestUploadSampleUnconfiguredWakeWord(t *testing.T) {
	env := setupDeviceEnv(t, nil, false)

	req := withPrincipal(
		multipartRequest(t, "/v1/device/device-1/wake-word-sample", sampleFields(), []byte("x")),
		&auth.Principal{AccountID: "acct-1", DeviceID: "device-1"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	// Acknowledged but nothing persisted and nothing written to disk.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.samples.added)
	_, err := os.Stat(filepath.Join(env.dataDir, "wake_word"))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadSampleUnconfiguredWakeWordStrictMode(t *testing.T) {
	env := setupDeviceEnv(t, nil, true)

	req := withPrincipal(
		multipartRequest(t, "/v1/device/device-1/wake-word-sample", sampleFields(), []byte("x")),
		&auth.Principal{AccountID: "acct-1", DeviceID: "device-1"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.samples.added)
}

func TestUploadSampleMissingAudioFile(t *testing.T) {
	env := setupDeviceEnv(t, configuredWakeWords(), false)

	req := withPrincipal(
		multipartRequest(t, "/v1/device/device-1/wake-word-sample", sampleFields(), nil),
		&auth.Principal{AccountID: "acct-1", DeviceID: "device-1"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No audio file included in request", resp.Details["audio_file"])
	assert.Empty(t, env.samples.added)
}

func TestUploadSampleListsEveryMissingField(t *testing.T) {
	env := setupDeviceEnv(t, configuredWakeWords(), false)

	// Only the engine field is present; every other failure is reported.
	req := withPrincipal(
		multipartRequest(t, "/v1/device/device-1/wake-word-sample",
			map[string]string{"engine": "precise"}, nil),
		&auth.Principal{AccountID: "acct-1", DeviceID: "device-1"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "wake_word")
	assert.Contains(t, resp.Details, "timestamp")
	assert.Contains(t, resp.Details, "model")
	assert.Contains(t, resp.Details, "audio_file")
}

// TestUploadSampleValidatesBeforeAccountLookup verifies an invalid payload is
// rejected before any repository read: a device with no account row still gets
// a 400, never a 404.
func TestUploadSampleValidatesBeforeAccountLookup(t *testing.T) {
	env := setupDeviceEnv(t, configuredWakeWords(), false)
	env.accounts.account = nil

	req := withPrincipal(
		multipartRequest(t, "/v1/device/device-1/wake-word-sample", map[string]string{}, nil),
		&auth.Principal{AccountID: "acct-1", DeviceID: "device-1"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.accounts.lookups)
	assert.Empty(t, env.samples.added)
}

// TestUploadSampleAuthFirst verifies the auth gate runs before any
// repository access: a request without credentials never reaches storage.
func TestUploadSampleAuthFirst(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	authenticator := auth.NewAuthenticator(auth.NewSessionStoreWithClient(client))

	env := setupDeviceEnv(t, configuredWakeWords(), false)

	router := mux.NewRouter()
	sub := router.PathPrefix("/v1").Subrouter()
	sub.Use(mux.MiddlewareFunc(middleware.DeviceAuth(authenticator, testLogger())))
	NewDeviceHandlers(
		testLogger(), testMetrics(), env.accounts,
		&fakeWakeWordRepo{wakeWords: configuredWakeWords()},
		env.samples, mustFileStore(t), false,
	).RegisterRoutes(sub)

	req := multipartRequest(t, "/v1/device/device-1/wake-word-sample", sampleFields(), []byte("x"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, env.accounts.lookups)
	assert.Empty(t, env.samples.added)
}

func mustFileStore(t *testing.T) *filestore.FileSystemStore {
	t.Helper()
	store, err := filestore.NewFileSystemStore(t.TempDir())
	require.NoError(t, err)
	return store
}
