package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/killallgit/scriptify/api/apitest"
	"github.com/killallgit/scriptify/api/types"
	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(env *apitest.Env) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), env.Deps, nil)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loadAudio(t *testing.T, env *apitest.Env) {
	t.Helper()
	_, err := env.Workspace().LoadFile("clip.webm", "audio/webm", []byte("fake-webm"))
	require.NoError(t, err)
}

func TestCreateWithoutAudio(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)

	w := doJSON(t, router, http.MethodPost, "/api/v1/transcriptions", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, string(apperrors.ErrCodeEmptyInput), response.Error)
}

func TestCreateAndComplete(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)
	loadAudio(t, env)

	w := doJSON(t, router, http.MethodPost, "/api/v1/transcriptions", types.TranscribeRequest{Language: "fr"})
	require.Equal(t, http.StatusAccepted, w.Code)

	var created types.JobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.Job)
	assert.Equal(t, types.StatusQueued, created.Status)
	assert.Equal(t, models.JobStatusPending, created.Job.Status)
	assert.Equal(t, "fr", created.Job.Language)

	require.NoError(t, env.Worker.ProcessNextJob(context.Background()))

	w = doJSON(t, router, http.MethodGet, "/api/v1/transcriptions/"+created.Job.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched types.JobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, models.JobStatusCompleted, fetched.Job.Status)
	assert.Equal(t, float64(100), fetched.Job.Progress)
	require.NotNil(t, fetched.Job.Result)
	assert.Equal(t, "hello world", fetched.Job.Result.Text)

	w = doJSON(t, router, http.MethodGet, "/api/v1/transcript", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var transcript types.TranscriptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &transcript))
	assert.Equal(t, "hello world", transcript.Text)
	assert.Nil(t, transcript.Progress)
	assert.Nil(t, transcript.Error)
}

func TestGetUnknownJob(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)

	w := doJSON(t, router, http.MethodGet, "/api/v1/transcriptions/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFailedTranscriptionSurfacesError(t *testing.T) {
	env := apitest.New(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	})
	router := setupRouter(env)
	loadAudio(t, env)

	w := doJSON(t, router, http.MethodPost, "/api/v1/transcriptions", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.NoError(t, env.Worker.ProcessNextJob(context.Background()))

	w = doJSON(t, router, http.MethodGet, "/api/v1/transcript", nil)
	var transcript types.TranscriptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &transcript))
	require.NotNil(t, transcript.Error)
	assert.Equal(t, apperrors.ErrCodeBackendError, transcript.Error.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/transcript/error", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, env.Workspace().Error())
}

func TestPutTranscript(t *testing.T) {
	t.Run("save without session", func(t *testing.T) {
		env := apitest.New(t, nil)
		router := setupRouter(env)

		w := doJSON(t, router, http.MethodPut, "/api/v1/transcript", types.TranscriptUpdateRequest{Text: "draft", Save: true})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "draft", env.Store.Transcript())
	})

	t.Run("save commits to current session", func(t *testing.T) {
		env := apitest.New(t, nil)
		router := setupRouter(env)
		session, err := env.Store.CreateSession(context.Background(), "Notes")
		require.NoError(t, err)

		w := doJSON(t, router, http.MethodPut, "/api/v1/transcript", types.TranscriptUpdateRequest{Text: "final text", Save: true})

		require.Equal(t, http.StatusOK, w.Code)
		var response types.TranscriptResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Transcript saved", response.Message)

		stored, err := env.Store.Session(session.ID)
		require.NoError(t, err)
		assert.Equal(t, "final text", stored.Transcript)
	})

	t.Run("edit is committed after debounce", func(t *testing.T) {
		env := apitest.New(t, nil)
		router := setupRouter(env)
		session, err := env.Store.CreateSession(context.Background(), "Notes")
		require.NoError(t, err)

		w := doJSON(t, router, http.MethodPut, "/api/v1/transcript", types.TranscriptUpdateRequest{Text: "typed"})
		require.Equal(t, http.StatusOK, w.Code)

		assert.Eventually(t, func() bool {
			stored, err := env.Store.Session(session.ID)
			return err == nil && stored.Transcript == "typed"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("invalid body", func(t *testing.T) {
		env := apitest.New(t, nil)
		router := setupRouter(env)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/transcript", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProgressWebsocket(t *testing.T) {
	env := apitest.New(t, nil)
	srv := httptest.NewServer(setupRouter(env))
	defer srv.Close()
	loadAudio(t, env)

	job, err := env.Workspace().Transcribe(context.Background(), "")
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/transcriptions/" + job.ID + "/progress"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first ProgressMessage
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "progress", first.Type)
	assert.Equal(t, models.JobStatusPending, first.Job.Status)

	require.NoError(t, env.Worker.ProcessNextJob(context.Background()))

	var frames []ProgressMessage
	for {
		var msg ProgressMessage
		if err := conn.ReadJSON(&msg); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			break
		}
		frames = append(frames, msg)
	}

	require.NotEmpty(t, frames)
	last := frames[len(frames)-1]
	assert.Equal(t, string(models.JobStatusCompleted), last.Type)
	assert.Equal(t, float64(100), last.Job.Progress)

	var previous float64
	for _, frame := range frames {
		assert.GreaterOrEqual(t, frame.Job.Progress, previous)
		previous = frame.Job.Progress
	}
}

func TestProgressWebsocketUnknownJob(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)

	w := doJSON(t, router, http.MethodGet, "/api/v1/transcriptions/missing/progress", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
