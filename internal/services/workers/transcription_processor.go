package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/killallgit/scriptify/internal/models"
	"github.com/killallgit/scriptify/internal/services/jobs"
	"github.com/killallgit/scriptify/internal/services/transcription"
)

// ResultHandler receives the outcome of a transcription job. Success is
// delivered before the job is marked completed.
type ResultHandler interface {
	HandleTranscription(ctx context.Context, jobID string, result *models.TranscriptionResult) error
	HandleTranscriptionFailure(ctx context.Context, jobID string, err error)
}

// TranscriptionProcessor processes transcription jobs
type TranscriptionProcessor struct {
	jobService           jobs.Service
	transcriptionService transcription.TranscriptionService
	handler              ResultHandler
	timeout              time.Duration
}

// NewTranscriptionProcessor creates a new transcription processor. handler may be nil.
func NewTranscriptionProcessor(
	jobService jobs.Service,
	transcriptionService transcription.TranscriptionService,
	handler ResultHandler,
	timeout time.Duration,
) *TranscriptionProcessor {
	return &TranscriptionProcessor{
		jobService:           jobService,
		transcriptionService: transcriptionService,
		handler:              handler,
		timeout:              timeout,
	}
}

// CanProcess returns true if this processor can handle the job type
func (p *TranscriptionProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeTranscription
}

// ProcessJob runs one transcription and records its progress on the job
func (p *TranscriptionProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	if !p.CanProcess(job.Type) {
		return fmt.Errorf("unsupported job type: %s", job.Type)
	}

	log.Printf("[DEBUG] Processing transcription job %s with backend %s", job.ID, p.transcriptionService.BackendName())

	audio, err := p.jobService.Audio(ctx, job.ID)
	if err != nil {
		return err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	progress := func(update models.ProgressUpdate) {
		if err := p.jobService.UpdateProgress(ctx, job.ID, update); err != nil && !errors.Is(err, jobs.ErrJobSuperseded) {
			log.Printf("[DEBUG] Failed to update job %s progress: %v", job.ID, err)
		}
	}

	result, err := p.transcriptionService.Transcribe(ctx, audio, job.Language, job.Model, progress)
	if err != nil {
		if p.handler != nil {
			p.handler.HandleTranscriptionFailure(ctx, job.ID, err)
		}
		return err
	}

	current, err := p.jobService.GetJob(ctx, job.ID)
	if err == nil && current.Status == models.JobStatusSuperseded {
		log.Printf("[DEBUG] Discarding result of superseded job %s", job.ID)
		return nil
	}

	if p.handler != nil {
		if err := p.handler.HandleTranscription(ctx, job.ID, result); err != nil {
			log.Printf("[WARN] Result handler for job %s failed: %v", job.ID, err)
		}
	}

	if err := p.jobService.CompleteJob(ctx, job.ID, result); err != nil {
		if errors.Is(err, jobs.ErrJobSuperseded) {
			return nil
		}
		return fmt.Errorf("completing job: %w", err)
	}
	return nil
}
