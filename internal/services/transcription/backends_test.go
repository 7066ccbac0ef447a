package transcription

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func request(language string) models.TranscriptionRequest {
	return models.TranscriptionRequest{Audio: webmArtifact(), Language: language}
}

func TestOpenAIBackend(t *testing.T) {
	var body openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"text":"hola","language":"es","segments":[{"start":0,"end":1,"text":"hola"}]}`))
	}))
	defer server.Close()

	backend := NewOpenAIBackend(server.Client(), server.URL, "sk-test", "")
	result, err := backend.Transcribe(context.Background(), request("auto"), nil)
	require.NoError(t, err)

	assert.Equal(t, "data:audio/webm;base64,ZmFrZS13ZWJt", body.File)
	assert.Equal(t, "whisper-1", body.Model)
	assert.Empty(t, body.Language, "auto is omitted")
	assert.Equal(t, "verbose_json", body.ResponseFormat)

	assert.Equal(t, "hola", result.Text)
	assert.Equal(t, 0.9, result.Confidence, "default when not reported")
	assert.Equal(t, "es", result.Language)
	assert.Len(t, result.Segments, 1)
}

func TestOpenAIBackendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewOpenAIBackend(server.Client(), server.URL, "bad", "").Transcribe(context.Background(), request("en"), nil)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeBackendError, appErr.Code)
	assert.Equal(t, http.StatusUnauthorized, appErr.Details["status"])
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	// "é" is two bytes; cutting at 2 would split it
	assert.Equal(t, "a...", truncate("aé", 2))
	assert.Equal(t, "...", truncate("日本", 2))
}

func TestErrorStatusBodyStaysValidUTF8(t *testing.T) {
	body := strings.Repeat("é", maxErrorBody)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "x"+body)
	}))
	defer server.Close()

	_, err := NewLocalServerBackend(server.Client(), server.URL, "").Transcribe(context.Background(), request("en"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeBackendError))
	assert.True(t, utf8.ValidString(err.Error()))
}

func TestAzureBackend(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		text       string
		confidence float64
	}{
		{
			name:       "display text with ranked candidates",
			response:   `{"RecognitionStatus":"Success","DisplayText":"Hello.","NBest":[{"Display":"Hello.","Confidence":0.87}]}`,
			text:       "Hello.",
			confidence: 0.87,
		},
		{
			name:       "falls back to best candidate",
			response:   `{"NBest":[{"Display":"Best guess"},{"Display":"Other"}]}`,
			text:       "Best guess",
			confidence: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "key-1", r.Header.Get("Ocp-Apim-Subscription-Key"))
				assert.Equal(t, "audio/webm", r.Header.Get("Content-Type"))
				assert.Equal(t, "en", r.URL.Query().Get("language"))
				raw, _ := io.ReadAll(r.Body)
				assert.Equal(t, "fake-webm", string(raw))
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			backend := NewAzureBackend(server.Client(), server.URL+"/%s", "westus", "key-1")
			result, err := backend.Transcribe(context.Background(), request("en"), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.text, result.Text)
			assert.Equal(t, tt.confidence, result.Confidence)
			assert.Equal(t, "en", result.Language)
		})
	}
}

func TestLocalServerUnavailableVersusError(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer failing.Close()

	_, err := NewLocalServerBackend(failing.Client(), failing.URL, "").Transcribe(context.Background(), request(""), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeBackendError))

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := closed.URL
	closed.Close()

	_, err = NewLocalServerBackend(http.DefaultClient, url, "").Transcribe(context.Background(), request(""), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeBackendUnavailable))
}

func TestLocalServerDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req localServerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "en", req.Language)
		_, _ = w.Write([]byte(`{"text":"ok","segments":[]}`))
	}))
	defer server.Close()

	result, err := NewLocalServerBackend(server.Client(), server.URL, "").Transcribe(context.Background(), request("auto"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.8, result.Confidence)
	assert.Nil(t, result.Segments)
}

func TestLocalServerMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewLocalServerBackend(server.Client(), server.URL, "").Transcribe(context.Background(), request("en"), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeBackendError))
}

type mockBridge struct {
	mock.Mock
}

func (m *mockBridge) Available() error {
	return m.Called().Error(0)
}

func (m *mockBridge) Invoke(ctx context.Context, procedure string, req BridgeRequest, progress ProgressFunc) (*BridgeResponse, error) {
	args := m.Called(ctx, procedure, req)
	resp, _ := args.Get(0).(*BridgeResponse)
	return resp, args.Error(1)
}

func TestNativeBackend(t *testing.T) {
	bridge := &mockBridge{}
	bridge.On("Invoke", mock.Anything, "transcribe_audio", mock.MatchedBy(func(req BridgeRequest) bool {
		return string(req.AudioData) == "fake-webm" && req.Language == "de"
	})).Return(&BridgeResponse{Text: "hallo", Confidence: 0.7, Language: "de"}, nil)

	result, err := NewNativeBackend(bridge).Transcribe(context.Background(), request("de"), nil)
	require.NoError(t, err)
	assert.Equal(t, "hallo", result.Text)
	assert.Equal(t, 0.7, result.Confidence)
	bridge.AssertExpectations(t)
}

func TestNativeBackendErrorField(t *testing.T) {
	bridge := &mockBridge{}
	bridge.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(&BridgeResponse{Text: "partial", Error: "whisper not installed"}, nil)

	_, err := NewNativeBackend(bridge).Transcribe(context.Background(), request("en"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeBackendError))
	assert.Contains(t, err.Error(), "whisper not installed")
}
