package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/killallgit/scriptify/api/apitest"
	"github.com/killallgit/scriptify/api/types"
	"github.com/killallgit/scriptify/internal/database"
	"github.com/killallgit/scriptify/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *apitest.Env) {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)

	env := apitest.New(t, nil)
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	env.Deps.DB = db

	server := NewServer("127.0.0.1:0", ServerOptions{})
	server.SetDependencies(env.Deps)
	require.NoError(t, server.Initialize())
	return server, env
}

func TestServerRoutes(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "version", method: http.MethodGet, path: "/version", expectedStatus: http.StatusOK},
		{name: "docs redirect", method: http.MethodGet, path: "/docs", expectedStatus: http.StatusMovedPermanently},
		{name: "sessions", method: http.MethodGet, path: "/api/v1/sessions", expectedStatus: http.StatusOK},
		{name: "transcript", method: http.MethodGet, path: "/api/v1/transcript", expectedStatus: http.StatusOK},
		{name: "audio", method: http.MethodGet, path: "/api/v1/audio", expectedStatus: http.StatusOK},
		{name: "editor", method: http.MethodGet, path: "/api/v1/editor", expectedStatus: http.StatusOK},
		{name: "preflight", method: http.MethodOptions, path: "/api/v1/sessions", expectedStatus: http.StatusNoContent},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/podcasts", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.Engine().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestServerHealthReportsBackend(t *testing.T) {
	server, env := newTestServer(t)

	w := httptest.NewRecorder()
	server.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var response types.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, env.Deps.BackendName, response.Backend)
	assert.Equal(t, "connected", response.Database["status"])
}

func TestServerTranscribeRateLimited(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	config.Set("rate_limiting.enabled", true)
	config.Set("rate_limiting.transcribe_rps", 1)
	config.Set("rate_limiting.transcribe_burst", 1)
	config.Set("rate_limiting.default_rps", 100)
	config.Set("rate_limiting.default_burst", 100)

	env := apitest.New(t, nil)
	server := NewServer("127.0.0.1:0", ServerOptions{})
	server.SetDependencies(env.Deps)
	require.NoError(t, server.Initialize())

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", bytes.NewReader(nil))
		req.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		server.Engine().ServeHTTP(w, req)
		return w.Code
	}

	// No audio loaded, so the first call is rejected by the handler, not the limiter
	assert.Equal(t, http.StatusBadRequest, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestInitializeWithoutWorkspace(t *testing.T) {
	server := NewServer("127.0.0.1:0", ServerOptions{})
	server.SetDependencies(&types.Dependencies{})
	assert.Error(t, server.Initialize())
}
