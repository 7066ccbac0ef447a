package jobs

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/killallgit/scriptify/internal/models"
)

// Repository errors
var (
	ErrJobNotFound     = errors.New("job not found")
	ErrNoJobsAvailable = errors.New("no jobs available")
	ErrJobSuperseded   = errors.New("job superseded by a newer request")
	ErrJobTerminal     = errors.New("job already finished")
)

// Repository defines the interface for job storage
type Repository interface {
	// Create operations
	CreateJob(ctx context.Context, job *models.Job, audio *models.AudioArtifact) error

	// Read operations
	GetJob(ctx context.Context, id string) (*models.Job, error)
	GetAudio(ctx context.Context, id string) (*models.AudioArtifact, error)
	GetJobsByStatus(ctx context.Context, status models.JobStatus) ([]*models.Job, error)

	// Update operations
	ClaimNextJob(ctx context.Context, workerID string) (*models.Job, error)
	UpdateJob(ctx context.Context, id string, fn func(job *models.Job) error) (*models.Job, error)

	// Delete operations
	DeleteTerminalJobs(ctx context.Context, keep int) int
}

type record struct {
	job   models.Job
	audio *models.AudioArtifact
	seq   int
}

// memoryRepository keeps jobs for the life of the process. Audio is
// released once a job reaches a terminal state.
type memoryRepository struct {
	mu   sync.Mutex
	jobs map[string]*record
	seq  int
	now  func() time.Time
}

// NewRepository creates an in-memory job repository
func NewRepository() Repository {
	return &memoryRepository{
		jobs: make(map[string]*record),
		now:  time.Now,
	}
}

// CreateJob stores a new job
func (r *memoryRepository) CreateJob(ctx context.Context, job *models.Job, audio *models.AudioArtifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.jobs[job.ID] = &record{job: *job, audio: audio, seq: r.seq}
	return nil
}

// GetJob retrieves a copy of a job by ID
func (r *memoryRepository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	job := rec.job
	return &job, nil
}

// GetAudio retrieves the artifact attached to a job
func (r *memoryRepository) GetAudio(ctx context.Context, id string) (*models.AudioArtifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.jobs[id]
	if !ok || rec.audio == nil {
		return nil, ErrJobNotFound
	}
	return rec.audio, nil
}

// GetJobsByStatus lists jobs with the given status, oldest first
func (r *memoryRepository) GetJobsByStatus(ctx context.Context, status models.JobStatus) ([]*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Job
	for _, rec := range r.ordered() {
		if rec.job.Status == status {
			job := rec.job
			out = append(out, &job)
		}
	}
	return out, nil
}

// ClaimNextJob moves the oldest pending job to processing
func (r *memoryRepository) ClaimNextJob(ctx context.Context, workerID string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.ordered() {
		if !rec.job.CanProcess() {
			continue
		}
		now := r.now()
		rec.job.Status = models.JobStatusProcessing
		rec.job.StartedAt = &now
		job := rec.job
		return &job, nil
	}
	return nil, ErrNoJobsAvailable
}

// UpdateJob applies fn to the stored job under the repository lock
func (r *memoryRepository) UpdateJob(ctx context.Context, id string, fn func(job *models.Job) error) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}

	updated := rec.job
	if err := fn(&updated); err != nil {
		return nil, err
	}
	rec.job = updated
	if updated.IsTerminal() {
		rec.audio = nil
	}

	job := rec.job
	return &job, nil
}

// DeleteTerminalJobs drops all but the newest keep finished jobs
func (r *memoryRepository) DeleteTerminalJobs(ctx context.Context, keep int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var terminal []*record
	for _, rec := range r.ordered() {
		if rec.job.IsTerminal() {
			terminal = append(terminal, rec)
		}
	}

	deleted := 0
	for i := 0; i < len(terminal)-keep; i++ {
		delete(r.jobs, terminal[i].job.ID)
		deleted++
	}
	return deleted
}

func (r *memoryRepository) ordered() []*record {
	out := make([]*record, 0, len(r.jobs))
	for _, rec := range r.jobs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
