package jobs

import (
	"context"

	"github.com/killallgit/scriptify/internal/models"
)

// Service tracks transcription requests. Only the most recent request is
// current; enqueueing a new one supersedes the rest, and updates for a
// superseded job are dropped.
type Service interface {
	// Enqueue operations
	EnqueueTranscription(ctx context.Context, audio *models.AudioArtifact, opts ...JobOption) (*models.Job, error)

	// Status and retrieval
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	Current(ctx context.Context) (*models.Job, error)
	Audio(ctx context.Context, jobID string) (*models.AudioArtifact, error)
	ClearCurrent(ctx context.Context)

	// Worker operations (used by the worker)
	ClaimNextJob(ctx context.Context, workerID string) (*models.Job, error)
	UpdateProgress(ctx context.Context, jobID string, update models.ProgressUpdate) error
	CompleteJob(ctx context.Context, jobID string, result *models.TranscriptionResult) error
	FailJob(ctx context.Context, jobID string, err error) error
	Ready() <-chan struct{}

	// Subscriptions
	Subscribe(jobID string) (<-chan models.Job, func(), error)
	Wait(ctx context.Context, jobID string) (*models.Job, error)

	// Maintenance
	CleanupOldJobs(ctx context.Context, keep int) int
}

// JobOption is a functional option for configuring jobs
type JobOption func(*jobConfig)

// jobConfig holds configuration for a job
type jobConfig struct {
	Language string
	Model    string
}

// WithLanguage sets the language hint passed to the backend
func WithLanguage(language string) JobOption {
	return func(cfg *jobConfig) {
		cfg.Language = language
	}
}

// WithModel records the model requested for the job
func WithModel(model string) JobOption {
	return func(cfg *jobConfig) {
		cfg.Model = model
	}
}
