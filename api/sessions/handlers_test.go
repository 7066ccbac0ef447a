package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/apitest"
	"github.com/killallgit/scriptify/api/types"
	"github.com/killallgit/scriptify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(env *apitest.Env) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), env.Deps)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) *models.Session {
	t.Helper()
	var response types.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Session)
	return response.Session
}

func TestCreateAndList(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)

	w := do(t, router, http.MethodPost, "/api/v1/sessions", types.CreateSessionRequest{Title: "Standup"})
	require.Equal(t, http.StatusCreated, w.Code)
	first := decodeSession(t, w)
	assert.Equal(t, "Standup", first.Title)

	w = do(t, router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	second := decodeSession(t, w)
	assert.Equal(t, "Session 2", second.Title)

	w = do(t, router, http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list types.SessionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, second.ID, list.CurrentID)
	assert.Equal(t, first.ID, list.Sessions[0].ID)
}

func TestGetRenameSelect(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)
	ctx := context.Background()

	a, err := env.Store.CreateSession(ctx, "A")
	require.NoError(t, err)
	_, err = env.Store.CommitToSession(ctx, a.ID, "alpha")
	require.NoError(t, err)
	_, err = env.Store.CreateSession(ctx, "B")
	require.NoError(t, err)

	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		expectedStatus int
	}{
		{name: "get existing", method: http.MethodGet, path: "/api/v1/sessions/" + a.ID, expectedStatus: http.StatusOK},
		{name: "get unknown", method: http.MethodGet, path: "/api/v1/sessions/nope", expectedStatus: http.StatusNotFound},
		{name: "rename", method: http.MethodPatch, path: "/api/v1/sessions/" + a.ID, body: types.UpdateSessionRequest{Title: "Renamed"}, expectedStatus: http.StatusOK},
		{name: "rename blank title", method: http.MethodPatch, path: "/api/v1/sessions/" + a.ID, body: types.UpdateSessionRequest{Title: "   "}, expectedStatus: http.StatusBadRequest},
		{name: "rename missing title", method: http.MethodPatch, path: "/api/v1/sessions/" + a.ID, body: map[string]string{}, expectedStatus: http.StatusBadRequest},
		{name: "rename unknown", method: http.MethodPatch, path: "/api/v1/sessions/nope", body: types.UpdateSessionRequest{Title: "X"}, expectedStatus: http.StatusNotFound},
		{name: "select unknown", method: http.MethodPost, path: "/api/v1/sessions/nope/select", expectedStatus: http.StatusNotFound},
		{name: "commit unknown", method: http.MethodPut, path: "/api/v1/sessions/nope/transcript", body: types.CommitRequest{Text: "x"}, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	w := do(t, router, http.MethodPost, "/api/v1/sessions/"+a.ID+"/select", nil)
	require.Equal(t, http.StatusOK, w.Code)
	selected := decodeSession(t, w)
	assert.Equal(t, "Renamed", selected.Title)
	assert.Equal(t, "alpha", env.Store.Transcript())
	assert.Equal(t, a.ID, env.Store.CurrentID())
}

func TestSelectFlushesPendingEdit(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)
	ctx := context.Background()

	a, err := env.Store.CreateSession(ctx, "A")
	require.NoError(t, err)
	env.Workspace().UpdateTranscript("unsaved edit")
	b, err := env.Workspace().CreateSession(ctx, "B")
	require.NoError(t, err)

	stored, err := env.Store.Session(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "unsaved edit", stored.Transcript)

	w := do(t, router, http.MethodPost, "/api/v1/sessions/"+a.ID+"/select", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unsaved edit", env.Store.Transcript())

	stored, err = env.Store.Session(b.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Transcript)
}

func TestCommit(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)

	session, err := env.Store.CreateSession(context.Background(), "Notes")
	require.NoError(t, err)

	w := do(t, router, http.MethodPut, "/api/v1/sessions/"+session.ID+"/transcript", types.CommitRequest{Text: "committed"})
	require.Equal(t, http.StatusOK, w.Code)

	committed := decodeSession(t, w)
	assert.Equal(t, "committed", committed.Transcript)
	assert.False(t, committed.UpdatedAt.Before(committed.CreatedAt))
}

func TestDeleteAndReset(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)
	ctx := context.Background()

	a, err := env.Store.CreateSession(ctx, "A")
	require.NoError(t, err)
	b, err := env.Store.CreateSession(ctx, "B")
	require.NoError(t, err)

	w := do(t, router, http.MethodDelete, "/api/v1/sessions/"+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list types.SessionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, a.ID, list.CurrentID)

	w = do(t, router, http.MethodDelete, "/api/v1/sessions/unknown", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodDelete, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Store.Sessions())
	assert.Nil(t, env.Store.Current())
}

func TestPreferences(t *testing.T) {
	env := apitest.New(t, nil)
	router := setupRouter(env)

	w := do(t, router, http.MethodPut, "/api/v1/preferences", models.Preferences{Language: "de", Model: "small", AutoSaveInterval: 60})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/preferences", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var response types.PreferencesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "de", response.Preferences.Language)
	assert.Equal(t, "small", response.Preferences.Model)
	assert.Equal(t, 60, response.Preferences.AutoSaveInterval)

	w = do(t, router, http.MethodPut, "/api/v1/preferences", models.Preferences{AutoSaveInterval: 45})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "de", env.Store.Preferences().Language)
}
