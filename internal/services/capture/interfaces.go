package capture

import (
	"context"
	"time"

	"github.com/killallgit/scriptify/internal/models"
)

// State is the lifecycle position of the capture manager
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StatePaused    State = "paused"
	StateReady     State = "ready"
)

// Format describes the PCM layout a device delivers
type Format struct {
	SampleRate int
	Channels   int
}

// Device is an exclusive audio input. Open acquires the hardware and starts
// delivering interleaved frames to sink; Close stops delivery and releases it.
type Device interface {
	Open(sink func(frames []float32)) error
	Close() error
	Format() Format
}

// Prober determines the playback duration of an encoded payload
type Prober interface {
	ProbeDuration(ctx context.Context, data []byte) (float64, error)
}

// Clock is the time source for the elapsed counter
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Status is a point-in-time view of the manager
type Status struct {
	State   State                 `json:"state"`
	Elapsed int                   `json:"elapsed_seconds"`
	Audio   *models.AudioArtifact `json:"audio,omitempty"`
}

// CaptureService produces AudioArtifacts from a microphone or a supplied file
type CaptureService interface {
	// StartCapture acquires the input device and begins buffering audio
	StartCapture() error

	// PauseCapture releases the device but keeps buffered audio; no-op unless recording
	PauseCapture() error

	// ResumeCapture reacquires the device; no-op unless paused
	ResumeCapture() error

	// StopCapture finalizes buffered audio into the active artifact
	StopCapture() (*models.AudioArtifact, error)

	// LoadFile wraps an uploaded payload as the active artifact
	LoadFile(filename, contentType string, data []byte) (*models.AudioArtifact, error)

	// Clear discards the active artifact and releases the device from any state
	Clear()

	// Artifact returns the active artifact, or nil
	Artifact() *models.AudioArtifact

	// Status reports state, elapsed seconds, and the active artifact
	Status() Status
}
