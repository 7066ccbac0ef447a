package models

import "time"

// JobStatus represents the status of a transcription job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusSuperseded JobStatus = "superseded"
)

// JobType represents the type of job to be processed
type JobType string

const (
	JobTypeTranscription JobType = "transcription"
)

// Job is the per-call handle for one transcription request. Progress reported
// on a job belongs to that job only.
type Job struct {
	ID          string               `json:"id"`
	Type        JobType              `json:"type"`
	Status      JobStatus            `json:"status"`
	Language    string               `json:"language,omitempty"`
	Model       string               `json:"model,omitempty"`
	Progress    float64              `json:"progress"`
	Step        string               `json:"step,omitempty"`
	Message     string               `json:"message,omitempty"`
	Result      *TranscriptionResult `json:"result,omitempty"`
	Error       string               `json:"error,omitempty"`
	ErrorCode   string               `json:"error_code,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	StartedAt   *time.Time           `json:"started_at,omitempty"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}

// CanProcess returns true if the job is ready to be processed
func (j *Job) CanProcess() bool {
	return j.Status == JobStatusPending
}

// IsTerminal returns true if the job will not change state again
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted ||
		j.Status == JobStatusFailed ||
		j.Status == JobStatusSuperseded
}

// InProgress reports whether the job's progress should be displayed
func (j *Job) InProgress() bool {
	return j.Status == JobStatusProcessing
}
