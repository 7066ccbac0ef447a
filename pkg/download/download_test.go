package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

func TestNewDownloader(t *testing.T) {
	options := DefaultOptions()
	downloader := NewDownloader(options)

	if downloader == nil {
		t.Fatal("NewDownloader returned nil")
	}

	if downloader.client == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if downloader.options.Timeout != options.Timeout {
		t.Errorf("Expected timeout %v, got %v", options.Timeout, downloader.options.Timeout)
	}
}

func TestDefaultOptions(t *testing.T) {
	options := DefaultOptions()

	if options.MaxSize != 100*1024*1024 {
		t.Errorf("Expected MaxSize 100MiB, got %v", options.MaxSize)
	}
	if options.Timeout != 2*time.Minute {
		t.Errorf("Expected Timeout 2m, got %v", options.Timeout)
	}
	if !options.ValidateAudio {
		t.Error("Expected ValidateAudio to default to true")
	}
	if !strings.HasPrefix(options.UserAgent, "Scriptify/") {
		t.Errorf("Unexpected User-Agent %q", options.UserAgent)
	}
}

func TestFetch_Success(t *testing.T) {
	audioData := strings.Repeat("audio-data", 128) // 1280 bytes
	modified := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "Scriptify/1.0" {
			t.Errorf("Unexpected User-Agent %q", ua)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("ETag", `"abc"`)
		w.Header().Set("Last-Modified", modified.Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(audioData))
	}))
	defer server.Close()

	var reported int64
	options := DefaultOptions()
	options.ProgressFunc = func(downloaded, total int64) { reported = downloaded }
	downloader := NewDownloader(options)

	result, err := downloader.Fetch(context.Background(), server.URL+"/shows/episode.mp3?token=1")
	if err != nil {
		t.Fatalf("Expected successful download, got error: %v", err)
	}

	if string(result.Data) != audioData {
		t.Errorf("Expected %d bytes, got %d", len(audioData), len(result.Data))
	}
	if result.ContentType != "audio/mpeg" {
		t.Errorf("Expected content type 'audio/mpeg', got %v", result.ContentType)
	}
	if result.Filename != "episode.mp3" {
		t.Errorf("Expected filename episode.mp3, got %q", result.Filename)
	}
	if result.ETag != `"abc"` {
		t.Errorf("Unexpected ETag %q", result.ETag)
	}
	if !result.LastModified.Equal(modified) {
		t.Errorf("Expected Last-Modified %v, got %v", modified, result.LastModified)
	}
	if reported != int64(len(audioData)) {
		t.Errorf("Expected progress to reach %d, got %d", len(audioData), reported)
	}
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		maxSize  int64
		wantCode apperrors.ErrorCode
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name: "html instead of audio",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte("<html>Not audio</html>"))
			},
			wantCode: apperrors.ErrCodeInvalidFormat,
		},
		{
			name: "declared length too large",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "audio/mpeg")
				w.Header().Set("Content-Length", "1000000000")
				w.WriteHeader(http.StatusOK)
			},
			maxSize:  1024,
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name: "streamed body too large",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "audio/mpeg")
				w.(http.Flusher).Flush()
				_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
			},
			maxSize:  1024,
			wantCode: apperrors.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			options := DefaultOptions()
			if tt.maxSize > 0 {
				options.MaxSize = tt.maxSize
			}
			_, err := NewDownloader(options).Fetch(context.Background(), server.URL+"/clip.mp3")
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if code := apperrors.GetCode(err); code != tt.wantCode {
				t.Errorf("Expected code %s, got %s (%v)", tt.wantCode, code, err)
			}
		})
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	downloader := NewDownloader(DefaultOptions())

	for _, raw := range []string{"", "ftp://example.com/a.mp3", "not a url", "/local/file.mp3"} {
		_, err := downloader.Fetch(context.Background(), raw)
		if !apperrors.Is(err, apperrors.ErrCodeValidation) {
			t.Errorf("Fetch(%q) error = %v, want validation error", raw, err)
		}
	}
}

func TestAudioType(t *testing.T) {
	testCases := map[string]string{
		"audio/mpeg":               "audio/mpeg",
		"Audio/Ogg; codecs=opus":   "Audio/Ogg; codecs=opus",
		"application/octet-stream": "",
		"video/webm":               "",
		"":                         "",
	}
	for contentType, expected := range testCases {
		if got := (&Result{ContentType: contentType}).AudioType(); got != expected {
			t.Errorf("AudioType(%q) = %q, expected %q", contentType, got, expected)
		}
	}
}

func TestFilenameFor(t *testing.T) {
	testCases := []struct {
		rawURL      string
		disposition string
		expected    string
	}{
		{"https://cdn.example.com/a/b/talk.ogg", "", "talk.ogg"},
		{"https://cdn.example.com/", "", "download"},
		{"https://cdn.example.com/stream.php", "", "stream"},
		{"https://cdn.example.com/stream", `attachment; filename="../voice memo.m4a"`, "voice memo.m4a"},
	}

	for _, tc := range testCases {
		u, err := url.Parse(tc.rawURL)
		if err != nil {
			t.Fatalf("url.Parse(%q) error = %v", tc.rawURL, err)
		}
		if got := filenameFor(u, tc.disposition); got != tc.expected {
			t.Errorf("filenameFor(%q, %q) = %q, expected %q", tc.rawURL, tc.disposition, got, tc.expected)
		}
	}
}

func TestIsAudioContentType(t *testing.T) {
	testCases := []struct {
		contentType string
		expected    bool
	}{
		{"audio/mpeg", true},
		{"audio/wav", true},
		{"AUDIO/MPEG", true},               // Case insensitive
		{"video/webm", true},               // Browser recordings
		{"application/octet-stream", true}, // Special case for some servers
		{"text/html", false},
		{"image/jpeg", false},
		{"application/json", false},
		{"", false},
	}

	for _, tc := range testCases {
		result := isAudioContentType(tc.contentType)
		if result != tc.expected {
			t.Errorf("isAudioContentType(%q) = %v, expected %v", tc.contentType, result, tc.expected)
		}
	}
}

func TestIsValidAudioExtension(t *testing.T) {
	testCases := []struct {
		ext      string
		expected bool
	}{
		{"mp3", true},
		{"MP3", true}, // Case insensitive
		{"m4a", true},
		{"wav", true},
		{"webm", true},
		{"txt", false},
		{"php", false},
		{"", false},
	}

	for _, tc := range testCases {
		result := isValidAudioExtension(tc.ext)
		if result != tc.expected {
			t.Errorf("isValidAudioExtension(%q) = %v, expected %v", tc.ext, result, tc.expected)
		}
	}
}
