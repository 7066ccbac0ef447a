package transcription

import (
	"context"

	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

const (
	nativeName     = "native"
	procTranscribe = "transcribe_audio"
)

// NativeBackend delegates to the embedded routine through a Bridge
type NativeBackend struct {
	bridge Bridge
}

// NewNativeBackend creates the desktop-embedded backend
func NewNativeBackend(bridge Bridge) *NativeBackend {
	return &NativeBackend{bridge: bridge}
}

// Name implements Backend
func (b *NativeBackend) Name() string { return nativeName }

// Transcribe implements Backend
func (b *NativeBackend) Transcribe(ctx context.Context, req models.TranscriptionRequest, progress ProgressFunc) (*models.TranscriptionResult, error) {
	resp, err := b.bridge.Invoke(ctx, procTranscribe, BridgeRequest{
		AudioData: req.Audio.Data,
		Language:  req.Language,
		MIMEType:  req.Audio.MIMEType,
	}, progress)
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.BackendError(nativeName, err.Error())
	}

	if resp.Error != "" {
		return nil, apperrors.BackendError(nativeName, resp.Error)
	}

	result := &models.TranscriptionResult{
		Text:       resp.Text,
		Confidence: resp.Confidence,
		Language:   resp.Language,
	}
	if len(resp.Segments) > 0 {
		result.Segments = resp.Segments
	}
	return result, nil
}
