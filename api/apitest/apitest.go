// Package apitest builds fully wired handler dependencies for API tests.
package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
	"github.com/killallgit/scriptify/internal/services/capture"
	"github.com/killallgit/scriptify/internal/services/export"
	"github.com/killallgit/scriptify/internal/services/jobs"
	"github.com/killallgit/scriptify/internal/services/sessions"
	"github.com/killallgit/scriptify/internal/services/transcription"
	"github.com/killallgit/scriptify/internal/services/workers"
	"github.com/killallgit/scriptify/internal/services/workspace"
	"github.com/killallgit/scriptify/pkg/download"
)

// Env is an in-memory pipeline behind a set of handler dependencies
type Env struct {
	Deps   *types.Dependencies
	Store  *sessions.Store
	Jobs   jobs.Service
	Worker *workers.Worker
}

// Transcript answers the local-server backend with fixed text
func Transcript(text string, confidence float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"text": text, "confidence": confidence})
	}
}

// New wires a workspace whose transcription backend is served by handler.
// The worker is not started; tests drive it with Worker.ProcessNextJob.
func New(t testing.TB, handler http.HandlerFunc) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if handler == nil {
		handler = Transcript("hello world", 0.95)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := sessions.NewStore(nil)
	jobService := jobs.NewService(jobs.NewRepository())
	ws := workspace.New(
		capture.NewManager(nil, nil),
		store,
		jobService,
		export.NewService(),
		workspace.Config{DefaultLanguage: "en", OutputDir: t.TempDir(), Debounce: time.Millisecond},
	)
	t.Cleanup(func() { _ = ws.Close(context.Background()) })

	backend := transcription.NewLocalServerBackend(transcription.NewHTTPClient(5*time.Second), srv.URL+"/transcribe", "base")
	worker := workers.NewWorker("api-test", jobService, time.Hour)
	worker.RegisterProcessor(workers.NewTranscriptionProcessor(
		jobService,
		transcription.NewService(backend, "en", ""),
		ws,
		time.Minute,
	))

	return &Env{
		Deps: &types.Dependencies{
			Workspace:      ws,
			Downloader:     download.NewDownloader(download.DefaultOptions()),
			BackendName:    backend.Name(),
			MaxUploadBytes: 1 << 20,
			Version:        "test",
		},
		Store:  store,
		Jobs:   jobService,
		Worker: worker,
	}
}

// Workspace returns the wired workspace
func (e *Env) Workspace() *workspace.Workspace {
	return e.Deps.Workspace
}
