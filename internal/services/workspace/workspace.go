package workspace

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/killallgit/scriptify/internal/models"
	"github.com/killallgit/scriptify/internal/services/capture"
	"github.com/killallgit/scriptify/internal/services/export"
	"github.com/killallgit/scriptify/internal/services/jobs"
	"github.com/killallgit/scriptify/internal/services/sessions"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

// ErrorState is the single current error shown to the user
type ErrorState struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	At      time.Time           `json:"at"`
}

// ProgressView is the displayed progress of the current transcription
type ProgressView struct {
	JobID    string  `json:"job_id"`
	Step     string  `json:"step"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message,omitempty"`
}

// Config holds workspace defaults
type Config struct {
	DefaultLanguage string
	DefaultModel    string
	OutputDir       string
	Debounce        time.Duration
	Scheduler       sessions.Scheduler
}

// Workspace is the application state shared by the CLI and HTTP surfaces.
// It owns the pipeline: audio in, transcription jobs, the transcript store
// and exports.
type Workspace struct {
	capture  capture.CaptureService
	store    sessions.StoreService
	jobs     jobs.Service
	exporter export.ExportService
	editor   *sessions.Editor
	autosave *sessions.Debouncer
	cfg      Config
	now      func() time.Time

	mu      sync.RWMutex
	lastErr *ErrorState
	result  *models.TranscriptionResult
}

// New wires a workspace around its collaborators
func New(captureService capture.CaptureService, store sessions.StoreService, jobService jobs.Service, exporter export.ExportService, cfg Config) *Workspace {
	w := &Workspace{
		capture:  captureService,
		store:    store,
		jobs:     jobService,
		exporter: exporter,
		editor:   sessions.NewEditor(store),
		cfg:      cfg,
		now:      time.Now,
	}
	w.autosave = sessions.NewDebouncer(w.commit, cfg.Debounce, cfg.Scheduler)
	return w
}

// Capture returns the audio manager
func (w *Workspace) Capture() capture.CaptureService { return w.capture }

// Store returns the transcript store
func (w *Workspace) Store() sessions.StoreService { return w.store }

// Jobs returns the transcription job service
func (w *Workspace) Jobs() jobs.Service { return w.jobs }

// Editor returns the transcript editor
func (w *Workspace) Editor() *sessions.Editor { return w.editor }

// StartCapture begins recording
func (w *Workspace) StartCapture() error {
	if err := w.capture.StartCapture(); err != nil {
		return w.fail(err)
	}
	w.ClearError()
	return nil
}

// PauseCapture pauses recording
func (w *Workspace) PauseCapture() error {
	return w.fail(w.capture.PauseCapture())
}

// ResumeCapture resumes recording
func (w *Workspace) ResumeCapture() error {
	return w.fail(w.capture.ResumeCapture())
}

// StopCapture finalizes the recording into the active artifact
func (w *Workspace) StopCapture() (*models.AudioArtifact, error) {
	artifact, err := w.capture.StopCapture()
	if err != nil {
		return nil, w.fail(err)
	}
	return artifact, nil
}

// LoadFile makes an uploaded file the active artifact
func (w *Workspace) LoadFile(filename, contentType string, data []byte) (*models.AudioArtifact, error) {
	artifact, err := w.capture.LoadFile(filename, contentType, data)
	if err != nil {
		return nil, w.fail(err)
	}
	w.ClearError()
	return artifact, nil
}

// ClearAudio discards the active artifact along with everything derived from
// it: the result, the working transcript, the current error and the current
// request, whose late result and progress are then ignored. Pending edits are
// committed to their session first.
func (w *Workspace) ClearAudio(ctx context.Context) {
	w.capture.Clear()
	w.jobs.ClearCurrent(ctx)
	w.flushPending(ctx)
	w.editor.Cancel()
	w.store.SetTranscript("")

	w.mu.Lock()
	w.result = nil
	w.lastErr = nil
	w.mu.Unlock()
}

// Transcribe queues the active artifact for transcription. An empty language
// uses the stored preference, then the configured default.
func (w *Workspace) Transcribe(ctx context.Context, language string) (*models.Job, error) {
	prefs := w.store.Preferences()
	if language == "" {
		language = prefs.Language
	}
	if language == "" {
		language = w.cfg.DefaultLanguage
	}
	model := prefs.Model
	if model == "" {
		model = w.cfg.DefaultModel
	}

	job, err := w.jobs.EnqueueTranscription(ctx, w.capture.Artifact(), jobs.WithLanguage(language), jobs.WithModel(model))
	if err != nil {
		return nil, w.fail(err)
	}
	w.ClearError()
	return job, nil
}

// HandleTranscription applies a finished result if it belongs to the current
// request: the result becomes the transcript and is committed to the current
// session. Results from superseded requests are ignored.
func (w *Workspace) HandleTranscription(ctx context.Context, jobID string, result *models.TranscriptionResult) error {
	if !w.isCurrent(ctx, jobID) {
		log.Printf("[DEBUG] Ignoring result of stale job %s", jobID)
		return nil
	}

	w.mu.Lock()
	w.result = result
	w.lastErr = nil
	w.mu.Unlock()

	w.autosave.Cancel()
	w.store.SetTranscript(result.Text)
	if current := w.store.Current(); current != nil {
		if _, err := w.store.CommitToSession(ctx, current.ID, result.Text); err != nil {
			return w.fail(err)
		}
	}
	return nil
}

// HandleTranscriptionFailure records the failure of the current request
func (w *Workspace) HandleTranscriptionFailure(ctx context.Context, jobID string, err error) {
	if !w.isCurrent(ctx, jobID) {
		return
	}
	_ = w.fail(err)
}

// Progress returns the current request's progress, or nil when nothing is in flight
func (w *Workspace) Progress(ctx context.Context) *ProgressView {
	job, err := w.jobs.Current(ctx)
	if err != nil || job == nil || !job.InProgress() {
		return nil
	}
	return &ProgressView{JobID: job.ID, Step: job.Step, Progress: job.Progress, Message: job.Message}
}

// Result returns the most recent applied transcription result
func (w *Workspace) Result() *models.TranscriptionResult {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.result
}

// UpdateTranscript replaces the transcript text and schedules a debounced
// commit to the current session
func (w *Workspace) UpdateTranscript(text string) {
	w.store.SetTranscript(text)
	if current := w.store.Current(); current != nil {
		w.autosave.Schedule(current.ID, text)
	}
}

// SaveTranscript commits the transcript to the current session now
func (w *Workspace) SaveTranscript(ctx context.Context) (*models.Session, error) {
	w.autosave.Cancel()
	current := w.store.Current()
	if current == nil {
		return nil, apperrors.ValidationError("session", "no current session")
	}
	return w.store.CommitToSession(ctx, current.ID, w.store.Transcript())
}

// SaveEditor saves the editor scratch through the same commit path as auto-save
func (w *Workspace) SaveEditor(ctx context.Context) (sessions.EditorState, error) {
	w.autosave.Cancel()
	return w.editor.Save(ctx)
}

// SelectSession flushes pending edits, then switches sessions
func (w *Workspace) SelectSession(ctx context.Context, sessionID string) (*models.Session, error) {
	w.flushPending(ctx)
	return w.store.SelectSession(ctx, sessionID)
}

// CreateSession flushes pending edits, then starts a new current session
func (w *Workspace) CreateSession(ctx context.Context, title string) (*models.Session, error) {
	w.flushPending(ctx)
	return w.store.CreateSession(ctx, title)
}

// DeleteSession flushes pending edits, then removes a session
func (w *Workspace) DeleteSession(ctx context.Context, sessionID string) error {
	w.flushPending(ctx)
	return w.store.DeleteSession(ctx, sessionID)
}

// ResetSessions drops pending edits and removes every session
func (w *Workspace) ResetSessions(ctx context.Context) error {
	w.autosave.Cancel()
	return w.store.Reset(ctx)
}

// ImportTranscript stores an existing transcript as a new current session
func (w *Workspace) ImportTranscript(ctx context.Context, title string, result *models.TranscriptionResult) (*models.Session, error) {
	w.flushPending(ctx)

	session, err := w.store.CreateSession(ctx, title)
	if err != nil {
		return nil, err
	}
	w.store.SetTranscript(result.Text)

	w.mu.Lock()
	w.result = result
	w.mu.Unlock()

	return w.store.CommitToSession(ctx, session.ID, result.Text)
}

// Error returns the current error, or nil
func (w *Workspace) Error() *ErrorState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.lastErr == nil {
		return nil
	}
	state := *w.lastErr
	return &state
}

// ClearError dismisses the current error
func (w *Workspace) ClearError() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastErr = nil
}

// Close flushes any pending auto-save
func (w *Workspace) Close(ctx context.Context) error {
	return w.autosave.Flush(ctx)
}

func (w *Workspace) flushPending(ctx context.Context) {
	if err := w.autosave.Flush(ctx); err != nil {
		log.Printf("[WARN] Flushing pending edit failed: %v", err)
	}
}

func (w *Workspace) commit(ctx context.Context, sessionID, text string) error {
	_, err := w.store.CommitToSession(ctx, sessionID, text)
	return err
}

func (w *Workspace) isCurrent(ctx context.Context, jobID string) bool {
	current, err := w.jobs.Current(ctx)
	return err == nil && current != nil && current.ID == jobID
}

// fail replaces the current error with err and returns it unchanged
func (w *Workspace) fail(err error) error {
	if err == nil {
		return nil
	}

	state := &ErrorState{Code: apperrors.GetCode(err), Message: err.Error(), At: w.now()}
	w.mu.Lock()
	w.lastErr = state
	w.mu.Unlock()
	return err
}
