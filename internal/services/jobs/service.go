package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

const (
	// DefaultRetainedJobs is how many finished jobs CleanupOldJobs keeps
	DefaultRetainedJobs = 20

	subscriberBuffer = 16
)

type service struct {
	repo Repository
	now  func() time.Time

	mu          sync.Mutex
	currentID   string
	subscribers map[string][]chan models.Job

	ready chan struct{}
}

// NewService creates a job service on top of repo
func NewService(repo Repository) Service {
	return &service{
		repo:        repo,
		now:         time.Now,
		subscribers: make(map[string][]chan models.Job),
		ready:       make(chan struct{}, 1),
	}
}

func (s *service) EnqueueTranscription(ctx context.Context, audio *models.AudioArtifact, opts ...JobOption) (*models.Job, error) {
	if audio == nil || audio.Size() == 0 {
		return nil, apperrors.EmptyInput()
	}

	cfg := &jobConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	s.mu.Lock()
	previous := s.currentID
	job := &models.Job{
		ID:        uuid.NewString(),
		Type:      models.JobTypeTranscription,
		Status:    models.JobStatusPending,
		Language:  cfg.Language,
		Model:     cfg.Model,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateJob(ctx, job, audio); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("creating job: %w", err)
	}
	s.currentID = job.ID
	s.mu.Unlock()

	if previous != "" {
		s.supersede(ctx, previous)
	}

	log.Printf("[DEBUG] Enqueued %s job %s (%d bytes, language %q)", job.Type, job.ID, audio.Size(), cfg.Language)

	select {
	case s.ready <- struct{}{}:
	default:
	}
	return job, nil
}

func (s *service) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, apperrors.NotFound("job", jobID)
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}
	return job, nil
}

func (s *service) Current(ctx context.Context) (*models.Job, error) {
	s.mu.Lock()
	id := s.currentID
	s.mu.Unlock()

	if id == "" {
		return nil, nil
	}
	return s.GetJob(ctx, id)
}

// ClearCurrent supersedes the current request and leaves no job current
// until the next enqueue
func (s *service) ClearCurrent(ctx context.Context) {
	s.mu.Lock()
	previous := s.currentID
	s.currentID = ""
	s.mu.Unlock()

	if previous != "" {
		s.supersede(ctx, previous)
	}
}

func (s *service) Audio(ctx context.Context, jobID string) (*models.AudioArtifact, error) {
	audio, err := s.repo.GetAudio(ctx, jobID)
	if err != nil {
		return nil, apperrors.NotFound("job audio", jobID)
	}
	return audio, nil
}

func (s *service) ClaimNextJob(ctx context.Context, workerID string) (*models.Job, error) {
	job, err := s.repo.ClaimNextJob(ctx, workerID)
	if err != nil {
		if errors.Is(err, ErrNoJobsAvailable) {
			return nil, err
		}
		return nil, fmt.Errorf("claiming job: %w", err)
	}

	log.Printf("[DEBUG] Worker %s claimed %s job %s", workerID, job.Type, job.ID)
	s.publish(*job)
	return job, nil
}

func (s *service) UpdateProgress(ctx context.Context, jobID string, update models.ProgressUpdate) error {
	job, err := s.repo.UpdateJob(ctx, jobID, func(job *models.Job) error {
		if err := checkActive(job); err != nil {
			return err
		}
		if update.Progress < job.Progress {
			return nil
		}
		job.Progress = update.Progress
		job.Step = update.Step
		job.Message = update.Message
		return nil
	})
	if err != nil {
		return err
	}

	if int(update.Progress)%10 == 0 {
		log.Printf("[DEBUG] Job %s progress: %.0f%% (%s)", jobID, update.Progress, update.Step)
	}
	s.publish(*job)
	return nil
}

func (s *service) CompleteJob(ctx context.Context, jobID string, result *models.TranscriptionResult) error {
	job, err := s.repo.UpdateJob(ctx, jobID, func(job *models.Job) error {
		if err := checkActive(job); err != nil {
			return err
		}
		now := s.now()
		job.Status = models.JobStatusCompleted
		job.Progress = 100
		job.Step = models.StepCompleted
		job.Result = result
		job.CompletedAt = &now
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[DEBUG] Job %s completed successfully", jobID)
	s.finish(*job)
	return nil
}

// FailJob marks the job failed and clears its progress so a stale
// percentage is never shown for the next attempt
func (s *service) FailJob(ctx context.Context, jobID string, cause error) error {
	job, err := s.repo.UpdateJob(ctx, jobID, func(job *models.Job) error {
		if err := checkActive(job); err != nil {
			return err
		}
		now := s.now()
		job.Status = models.JobStatusFailed
		job.Progress = 0
		job.Step = ""
		job.Message = ""
		job.Error = cause.Error()
		job.ErrorCode = string(apperrors.GetCode(cause))
		job.CompletedAt = &now
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[ERROR] Job %s failed: %v", jobID, cause)
	s.finish(*job)
	return nil
}

func (s *service) Ready() <-chan struct{} {
	return s.ready
}

// Subscribe streams snapshots of a job until it finishes. The first value is
// the current snapshot. cancel may be called at any time.
func (s *service) Subscribe(jobID string) (<-chan models.Job, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.repo.GetJob(context.Background(), jobID)
	if err != nil {
		return nil, nil, apperrors.NotFound("job", jobID)
	}

	ch := make(chan models.Job, subscriberBuffer)
	ch <- *job
	if job.IsTerminal() {
		close(ch)
		return ch, func() {}, nil
	}

	s.subscribers[jobID] = append(s.subscribers[jobID], ch)
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subscribers[jobID]
		for i, sub := range subs {
			if sub == ch {
				s.subscribers[jobID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
		if len(s.subscribers[jobID]) == 0 {
			delete(s.subscribers, jobID)
		}
	}
	return ch, cancel, nil
}

// Wait blocks until the job reaches a terminal state
func (s *service) Wait(ctx context.Context, jobID string) (*models.Job, error) {
	updates, cancel, err := s.Subscribe(jobID)
	if err != nil {
		return nil, err
	}
	defer cancel()

	var last models.Job
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case job, ok := <-updates:
			if !ok {
				return s.GetJob(ctx, jobID)
			}
			last = job
			if last.IsTerminal() {
				return &last, nil
			}
		}
	}
}

func (s *service) CleanupOldJobs(ctx context.Context, keep int) int {
	if keep < 0 {
		keep = 0
	}
	deleted := s.repo.DeleteTerminalJobs(ctx, keep)
	if deleted > 0 {
		log.Printf("[DEBUG] Deleted %d finished job(s)", deleted)
	}
	return deleted
}

func (s *service) supersede(ctx context.Context, jobID string) {
	job, err := s.repo.UpdateJob(ctx, jobID, func(job *models.Job) error {
		if job.IsTerminal() {
			return ErrJobTerminal
		}
		now := s.now()
		job.Status = models.JobStatusSuperseded
		job.CompletedAt = &now
		return nil
	})
	if err != nil {
		return
	}

	log.Printf("[DEBUG] Job %s superseded", jobID)
	s.finish(*job)
}

func checkActive(job *models.Job) error {
	switch {
	case job.Status == models.JobStatusSuperseded:
		return ErrJobSuperseded
	case job.IsTerminal():
		return ErrJobTerminal
	}
	return nil
}

// publish delivers a snapshot to subscribers. A slow subscriber loses its
// oldest buffered snapshot rather than blocking the worker.
func (s *service) publish(job models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers[job.ID] {
		deliver(ch, job)
	}
}

// finish publishes the terminal snapshot and closes every subscription
func (s *service) finish(job models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers[job.ID] {
		deliver(ch, job)
		close(ch)
	}
	delete(s.subscribers, job.ID)
}

func deliver(ch chan models.Job, job models.Job) {
	for {
		select {
		case ch <- job:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
