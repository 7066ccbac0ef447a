package transcription

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/killallgit/scriptify/internal/models"
)

const (
	openAIName              = "openai"
	openAIDefaultModel      = "whisper-1"
	openAIDefaultConfidence = 0.9
)

// OpenAIBackend posts audio inline as a data URI to a bearer-token speech API
type OpenAIBackend struct {
	client *http.Client
	apiURL string
	apiKey string
	model  string
}

// NewOpenAIBackend creates the hosted speech API backend. model may be empty
// to use whisper-1.
func NewOpenAIBackend(client *http.Client, apiURL, apiKey, model string) *OpenAIBackend {
	if model == "" {
		model = openAIDefaultModel
	}
	return &OpenAIBackend{client: client, apiURL: apiURL, apiKey: apiKey, model: model}
}

type openAIRequest struct {
	File           string `json:"file"`
	Model          string `json:"model"`
	Language       string `json:"language,omitempty"`
	ResponseFormat string `json:"response_format"`
}

type openAIResponse struct {
	Text       string           `json:"text"`
	Confidence *float64         `json:"confidence"`
	Language   string           `json:"language"`
	Segments   []models.Segment `json:"segments"`
}

// Name implements Backend
func (b *OpenAIBackend) Name() string { return openAIName }

// Transcribe implements Backend
func (b *OpenAIBackend) Transcribe(ctx context.Context, req models.TranscriptionRequest, progress ProgressFunc) (*models.TranscriptionResult, error) {
	model := req.Model
	if model == "" {
		model = b.model
	}

	payload := openAIRequest{
		File:           fmt.Sprintf("data:%s;base64,%s", req.Audio.MIMEType, base64.StdEncoding.EncodeToString(req.Audio.Data)),
		Model:          model,
		Language:       req.LanguageHint(),
		ResponseFormat: "verbose_json",
	}

	httpReq, err := newJSONRequest(b.apiURL, payload)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)

	emit(progress, models.StepUploading, 10, "Uploading audio...")

	var resp openAIResponse
	if err := doJSON(ctx, b.client, openAIName, httpReq, &resp); err != nil {
		return nil, err
	}

	confidence := openAIDefaultConfidence
	if resp.Confidence != nil {
		confidence = *resp.Confidence
	}

	result := &models.TranscriptionResult{
		Text:       resp.Text,
		Confidence: confidence,
		Language:   resp.Language,
	}
	if len(resp.Segments) > 0 {
		result.Segments = resp.Segments
	}
	return result, nil
}
