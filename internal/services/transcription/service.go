package transcription

import (
	"context"
	"fmt"
	"log"

	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

// Service implements the TranscriptionService interface
type Service struct {
	backend  Backend
	language string
	model    string
}

// NewService creates a transcription service over a selected backend.
// defaultModel overrides the backend's own model and is normally empty.
func NewService(backend Backend, defaultLanguage, defaultModel string) TranscriptionService {
	return &Service{backend: backend, language: defaultLanguage, model: defaultModel}
}

// BackendName reports the selected backend
func (s *Service) BackendName() string {
	return s.backend.Name()
}

// Transcribe validates input, runs the backend, and normalizes the result.
// Progress passed to the caller is non-decreasing and ends at 100 on success;
// after a failure no further updates are delivered.
func (s *Service) Transcribe(ctx context.Context, audio *models.AudioArtifact, language, model string, progress ProgressFunc) (*models.TranscriptionResult, error) {
	if audio == nil || audio.Size() == 0 {
		return nil, apperrors.EmptyInput()
	}
	if !models.IsAudioMIME(audio.MIMEType) {
		return nil, apperrors.InvalidFormat(audio.MIMEType)
	}

	if language == "" {
		language = s.language
	}
	if model == "" {
		model = s.model
	}
	req := models.TranscriptionRequest{Audio: audio, Language: language, Model: model}

	reporter := NewReporter(progress)
	log.Printf("[INFO] Transcribing %d bytes (%s) with %s, language=%q", audio.Size(), audio.MIMEType, s.backend.Name(), language)

	result, err := s.backend.Transcribe(ctx, req, reporter.Func())
	if err != nil {
		reporter.Fail()
		log.Printf("[ERROR] Transcription with %s failed: %v", s.backend.Name(), err)
		return nil, err
	}
	if result == nil {
		reporter.Fail()
		return nil, apperrors.BackendError(s.backend.Name(), "empty response")
	}

	if err := models.ValidateSegments(result.Segments); err != nil {
		reporter.Fail()
		return nil, apperrors.BackendError(s.backend.Name(), fmt.Sprintf("malformed segments: %v", err))
	}

	normalized := *result
	normalized.Confidence = models.ClampConfidence(result.Confidence)
	normalized.Backend = s.backend.Name()
	if normalized.Language == "" {
		normalized.Language = req.LanguageHint()
	}

	reporter.Complete()
	log.Printf("[INFO] Transcription complete: %d chars, %d segments, confidence %.2f", len(normalized.Text), len(normalized.Segments), normalized.Confidence)
	return &normalized, nil
}
