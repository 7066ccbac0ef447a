package types

import "github.com/killallgit/scriptify/internal/models"

// TranscribeRequest starts a transcription of the active audio
type TranscribeRequest struct {
	Language string `json:"language"`
}

// AudioURLRequest loads remote audio as the active artifact
type AudioURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// TranscriptUpdateRequest replaces the transcript text
type TranscriptUpdateRequest struct {
	Text string `json:"text"`
	Save bool   `json:"save"`
}

// CreateSessionRequest creates a session
type CreateSessionRequest struct {
	Title string `json:"title"`
}

// UpdateSessionRequest renames a session
type UpdateSessionRequest struct {
	Title string `json:"title" binding:"required"`
}

// CommitRequest writes text into a session
type CommitRequest struct {
	Text string `json:"text"`
}

// EditorUpdateRequest replaces the editor scratch text
type EditorUpdateRequest struct {
	Text string `json:"text"`
}

// BundleRequest exports several formats in one archive
type BundleRequest struct {
	Formats         []string `json:"formats" binding:"required"`
	Filename        string   `json:"filename"`
	Title           string   `json:"title"`
	IncludeMetadata bool     `json:"include_metadata"`
}

// PreferencesRequest replaces stored user defaults
type PreferencesRequest = models.Preferences
