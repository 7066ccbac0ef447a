package transcription

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/killallgit/scriptify/internal/models"
)

const (
	localServerName              = "local"
	localServerDefaultLanguage   = "en"
	localServerDefaultModel      = "base"
	localServerDefaultConfidence = 0.8
)

// LocalServerBackend posts base64 audio as JSON to a transcription server on this machine
type LocalServerBackend struct {
	client *http.Client
	url    string
	model  string
}

// NewLocalServerBackend creates the local server backend
func NewLocalServerBackend(client *http.Client, url, model string) *LocalServerBackend {
	if model == "" {
		model = localServerDefaultModel
	}
	return &LocalServerBackend{client: client, url: url, model: model}
}

type localServerRequest struct {
	AudioData string `json:"audio_data"`
	Language  string `json:"language"`
	Model     string `json:"model"`
}

type localServerResponse struct {
	Text       string           `json:"text"`
	Confidence *float64         `json:"confidence"`
	Segments   []models.Segment `json:"segments"`
}

// Name implements Backend
func (b *LocalServerBackend) Name() string { return localServerName }

// Transcribe implements Backend. A refused connection is BackendUnavailable;
// an error status from a reachable server is BackendError.
func (b *LocalServerBackend) Transcribe(ctx context.Context, req models.TranscriptionRequest, progress ProgressFunc) (*models.TranscriptionResult, error) {
	language := req.LanguageHint()
	if language == "" {
		language = localServerDefaultLanguage
	}
	model := req.Model
	if model == "" {
		model = b.model
	}

	httpReq, err := newJSONRequest(b.url, localServerRequest{
		AudioData: base64.StdEncoding.EncodeToString(req.Audio.Data),
		Language:  language,
		Model:     model,
	})
	if err != nil {
		return nil, err
	}

	emit(progress, models.StepUploading, 10, "Sending audio to local server...")

	var resp localServerResponse
	if err := doJSON(ctx, b.client, localServerName, httpReq, &resp); err != nil {
		return nil, err
	}

	confidence := localServerDefaultConfidence
	if resp.Confidence != nil {
		confidence = *resp.Confidence
	}

	result := &models.TranscriptionResult{
		Text:       resp.Text,
		Confidence: confidence,
		Language:   language,
	}
	if len(resp.Segments) > 0 {
		result.Segments = resp.Segments
	}
	return result, nil
}
