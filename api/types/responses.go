package types

import (
	"github.com/killallgit/scriptify/internal/models"
	"github.com/killallgit/scriptify/internal/services/capture"
	"github.com/killallgit/scriptify/internal/services/sessions"
	"github.com/killallgit/scriptify/internal/services/workspace"
)

// Status constants for API responses
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusQueued = "queued"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Database  map[string]interface{} `json:"database"`
	Backend   string                 `json:"backend,omitempty"`
}

// AudioResponse describes the active audio artifact and capture state
type AudioResponse struct {
	BaseResponse
	Capture capture.Status `json:"capture"`
}

// JobResponse for async job status
type JobResponse struct {
	BaseResponse
	Job *models.Job `json:"job"`
}

// TranscriptResponse for the current transcript
type TranscriptResponse struct {
	BaseResponse
	Text     string                  `json:"text"`
	Session  *models.Session         `json:"session,omitempty"`
	Progress *workspace.ProgressView `json:"progress,omitempty"`
	Error    *workspace.ErrorState   `json:"error,omitempty"`
}

// SessionResponse wraps one session
type SessionResponse struct {
	BaseResponse
	Session *models.Session `json:"session"`
}

// SessionsResponse lists sessions
type SessionsResponse struct {
	BaseResponse
	Sessions  []models.Session `json:"sessions"`
	CurrentID string           `json:"current_id,omitempty"`
	Count     int              `json:"count"`
}

// EditorResponse reports the editor state
type EditorResponse struct {
	BaseResponse
	Editor sessions.EditorState `json:"editor"`
}

// PreferencesResponse reports stored user defaults
type PreferencesResponse struct {
	BaseResponse
	Preferences models.Preferences `json:"preferences"`
}
