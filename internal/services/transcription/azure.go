package transcription

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/killallgit/scriptify/internal/models"
)

const (
	azureName              = "azure"
	azureDefaultConfidence = 0.9
	azureDefaultMIMEType   = "audio/wav"
)

// AzureBackend sends raw audio bytes to a subscription-key speech API
type AzureBackend struct {
	client          *http.Client
	endpoint        string
	subscriptionKey string
}

// NewAzureBackend creates the cloud STT backend. endpointTemplate takes the region via %s.
func NewAzureBackend(client *http.Client, endpointTemplate, region, subscriptionKey string) *AzureBackend {
	return &AzureBackend{
		client:          client,
		endpoint:        fmt.Sprintf(endpointTemplate, region),
		subscriptionKey: subscriptionKey,
	}
}

type azureCandidate struct {
	Display    string   `json:"Display"`
	Confidence *float64 `json:"Confidence"`
}

type azureResponse struct {
	RecognitionStatus string           `json:"RecognitionStatus"`
	DisplayText       string           `json:"DisplayText"`
	NBest             []azureCandidate `json:"NBest"`
}

// Name implements Backend
func (b *AzureBackend) Name() string { return azureName }

// Transcribe implements Backend
func (b *AzureBackend) Transcribe(ctx context.Context, req models.TranscriptionRequest, progress ProgressFunc) (*models.TranscriptionResult, error) {
	endpoint := b.endpoint
	if lang := req.LanguageHint(); lang != "" {
		endpoint += "?" + url.Values{"language": {lang}, "format": {"detailed"}}.Encode()
	}

	httpReq, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(req.Audio.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	contentType := req.Audio.MIMEType
	if contentType == "" {
		contentType = azureDefaultMIMEType
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", b.subscriptionKey)

	emit(progress, models.StepUploading, 10, "Uploading audio...")

	var resp azureResponse
	if err := doJSON(ctx, b.client, azureName, httpReq, &resp); err != nil {
		return nil, err
	}

	text := resp.DisplayText
	confidence := azureDefaultConfidence
	if len(resp.NBest) > 0 {
		best := resp.NBest[0]
		if text == "" {
			text = best.Display
		}
		if best.Confidence != nil {
			confidence = *best.Confidence
		}
	}

	return &models.TranscriptionResult{
		Text:       text,
		Confidence: confidence,
		Language:   req.LanguageHint(),
	}, nil
}
