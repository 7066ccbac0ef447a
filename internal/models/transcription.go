package models

import "fmt"

// LanguageAuto asks the backend to detect the spoken language
const LanguageAuto = "auto"

// Segment is a time-aligned slice of a transcript, offsets in seconds
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionRequest is constructed per call and never persisted
type TranscriptionRequest struct {
	Audio    *AudioArtifact
	Language string
	Model    string
}

// LanguageHint returns the language to send to a backend, empty for auto-detection
func (r TranscriptionRequest) LanguageHint() string {
	if r.Language == LanguageAuto {
		return ""
	}
	return r.Language
}

// TranscriptionResult is produced once per successful backend call and is not modified afterwards
type TranscriptionResult struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Language   string    `json:"language,omitempty"`
	Segments   []Segment `json:"segments,omitempty"`
	Backend    string    `json:"backend,omitempty"`
}

// HasSegments reports whether the result carries timestamp segments
func (r *TranscriptionResult) HasSegments() bool {
	return r != nil && len(r.Segments) > 0
}

// ClampConfidence bounds a backend-reported score to [0,1]
func ClampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}

// ValidateSegments checks start <= end for each segment and ascending start order.
// Segments are not repaired.
func ValidateSegments(segments []Segment) error {
	for i, s := range segments {
		if s.End < s.Start {
			return fmt.Errorf("segment %d ends before it starts (%.3f < %.3f)", i, s.End, s.Start)
		}
		if i > 0 && s.Start < segments[i-1].Start {
			return fmt.Errorf("segment %d starts before segment %d", i, i-1)
		}
	}
	return nil
}
