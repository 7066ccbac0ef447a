package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/killallgit/scriptify/internal/models"
	"github.com/killallgit/scriptify/internal/services/jobs"
)

// DefaultPollInterval is how often the worker checks for jobs without a wake-up
const DefaultPollInterval = 500 * time.Millisecond

// JobProcessor defines the interface for processing different job types
type JobProcessor interface {
	ProcessJob(ctx context.Context, job *models.Job) error
	CanProcess(jobType models.JobType) bool
}

// Worker drains the job queue one job at a time
type Worker struct {
	id           string
	jobService   jobs.Service
	processors   []JobProcessor
	stopChan     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
	pollInterval time.Duration
}

// NewWorker creates a new worker instance
func NewWorker(id string, jobService jobs.Service, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Worker{
		id:           id,
		jobService:   jobService,
		processors:   make([]JobProcessor, 0),
		stopChan:     make(chan struct{}),
		pollInterval: pollInterval,
	}
}

// RegisterProcessor registers a job processor
func (w *Worker) RegisterProcessor(processor JobProcessor) {
	w.processors = append(w.processors, processor)
}

// Start starts the worker in a goroutine
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop stops the worker gracefully
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	log.Printf("[INFO] Worker %s starting", w.id)
	defer log.Printf("[INFO] Worker %s stopped", w.id)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-w.jobService.Ready():
		case <-ticker.C:
		}

		if err := w.ProcessNextJob(ctx); err != nil {
			log.Printf("[WARN] Worker %s: error processing job: %v", w.id, err)
		}
	}
}

// ProcessNextJob claims and processes the next available job. It returns nil
// when the queue is empty.
func (w *Worker) ProcessNextJob(ctx context.Context) error {
	if len(w.processors) == 0 {
		return fmt.Errorf("no job processors registered")
	}

	job, err := w.jobService.ClaimNextJob(ctx, w.id)
	if err != nil {
		if errors.Is(err, jobs.ErrNoJobsAvailable) {
			return nil
		}
		return err
	}

	var processor JobProcessor
	for _, p := range w.processors {
		if p.CanProcess(job.Type) {
			processor = p
			break
		}
	}

	if processor == nil {
		err := fmt.Errorf("no processor found for job type %s", job.Type)
		w.fail(ctx, job, err)
		return err
	}

	defer w.prune(ctx)

	if err := processor.ProcessJob(ctx, job); err != nil {
		w.fail(ctx, job, err)
		return fmt.Errorf("job processing failed: %w", err)
	}

	log.Printf("[DEBUG] Worker %s completed job %s", w.id, job.ID)
	return nil
}

// prune drops the oldest finished job handles
func (w *Worker) prune(ctx context.Context) {
	if removed := w.jobService.CleanupOldJobs(ctx, jobs.DefaultRetainedJobs); removed > 0 {
		log.Printf("[DEBUG] Worker %s pruned %d finished job(s)", w.id, removed)
	}
}

func (w *Worker) fail(ctx context.Context, job *models.Job, cause error) {
	err := w.jobService.FailJob(ctx, job.ID, cause)
	if err != nil && !errors.Is(err, jobs.ErrJobSuperseded) {
		log.Printf("[WARN] Worker %s: failed to mark job %s as failed: %v", w.id, job.ID, err)
	}
}
