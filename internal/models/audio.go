package models

import (
	"strings"
	"time"
)

// AudioSource records how an artifact was produced
type AudioSource string

const (
	AudioSourceCapture AudioSource = "capture"
	AudioSourceUpload  AudioSource = "upload"
)

// AudioArtifact is an in-memory audio payload ready for playback or transmission.
// Artifacts are never mutated in place; replacing audio creates a new artifact.
type AudioArtifact struct {
	ID        string      `json:"id"`
	Data      []byte      `json:"-"`
	MIMEType  string      `json:"mime_type"`
	Filename  string      `json:"filename,omitempty"`
	Source    AudioSource `json:"source"`
	Duration  float64     `json:"duration"` // seconds, 0 when unknown
	CreatedAt time.Time   `json:"created_at"`
}

// Size returns the payload length in bytes
func (a *AudioArtifact) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// IsAudioMIME reports whether a content type names an audio payload
func IsAudioMIME(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "audio/")
}

// BaseMIME strips parameters such as codecs from a content type
func BaseMIME(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
