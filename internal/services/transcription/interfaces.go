package transcription

import (
	"context"

	"github.com/killallgit/scriptify/internal/models"
)

// ProgressFunc receives progress for the call it was passed to. It is invoked
// from the goroutine running the call, in emission order.
type ProgressFunc func(update models.ProgressUpdate)

// Backend exchanges audio for text. Implementations do not support
// cancellation beyond the context deadline of the underlying transport.
type Backend interface {
	// Name identifies the backend in results and errors
	Name() string

	// Transcribe runs one request to completion or failure
	Transcribe(ctx context.Context, req models.TranscriptionRequest, progress ProgressFunc) (*models.TranscriptionResult, error)
}

// BridgeRequest is the payload of the native transcribe call
type BridgeRequest struct {
	AudioData []byte `json:"audio_data"`
	Language  string `json:"language,omitempty"`
	MIMEType  string `json:"-"`
}

// BridgeResponse is what the native routine returns. A non-empty Error is a
// failure even when the call itself succeeded.
type BridgeResponse struct {
	Text       string           `json:"text"`
	Confidence float64          `json:"confidence"`
	Language   string           `json:"language"`
	Segments   []models.Segment `json:"segments"`
	Error      string           `json:"error,omitempty"`
}

// Bridge invokes a named procedure in the embedded native routine
type Bridge interface {
	// Available reports whether the routine can be reached from this host
	Available() error

	// Invoke calls the named procedure, streaming progress out of band
	Invoke(ctx context.Context, procedure string, req BridgeRequest, progress ProgressFunc) (*BridgeResponse, error)
}

// TranscriptionService is the client used by the rest of the application
type TranscriptionService interface {
	// Transcribe sends the artifact to the selected backend. language may be
	// empty to use the configured default or "auto" for detection; an empty
	// model leaves the choice to the backend.
	Transcribe(ctx context.Context, audio *models.AudioArtifact, language, model string, progress ProgressFunc) (*models.TranscriptionResult, error)

	// BackendName reports which backend was selected
	BackendName() string
}
