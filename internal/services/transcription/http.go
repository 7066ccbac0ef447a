package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

const maxErrorBody = 512

// NewHTTPClient returns the client shared by the HTTP backends
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// doJSON sends a request and decodes a JSON response into out. Transport
// failures map to BackendUnavailable, everything after a response to BackendError.
func doJSON(ctx context.Context, client *http.Client, backend string, req *http.Request, out any) error {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return apperrors.BackendUnavailable(backend, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.BackendError(backend, fmt.Sprintf("failed to read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.BackendStatusError(backend, resp.StatusCode, truncate(strings.TrimSpace(string(body)), maxErrorBody))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.BackendError(backend, fmt.Sprintf("invalid response body: %v", err))
	}
	return nil
}

func newJSONRequest(url string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// truncate keeps at most n bytes of s without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

func emit(progress ProgressFunc, step string, pct float64, message string) {
	if progress != nil {
		progress(progressUpdate(step, pct, message))
	}
}
