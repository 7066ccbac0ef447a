package capture

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

const deviceName = "microphone"

// Manager implements CaptureService. It owns at most one active artifact and
// at most one open device.
type Manager struct {
	mu sync.Mutex

	device       Device
	prober       Prober
	clock        Clock
	probeTimeout time.Duration

	state    State
	artifact *models.AudioArtifact

	// chunks are appended from the device goroutine; lock order is mu then chunkMu
	chunkMu   sync.Mutex
	chunks    [][]float32
	accepting bool

	// elapsed counter: accumulated active time plus the open interval
	elapsed   time.Duration
	resumedAt time.Time

	probes sync.WaitGroup
}

// Option configures a Manager
type Option func(*Manager)

// WithClock injects the time source used by the elapsed counter
func WithClock(clock Clock) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithProbeTimeout bounds the asynchronous duration probe
func WithProbeTimeout(timeout time.Duration) Option {
	return func(m *Manager) { m.probeTimeout = timeout }
}

// NewManager creates a capture manager. prober may be nil, leaving uploaded
// durations at zero.
func NewManager(device Device, prober Prober, opts ...Option) *Manager {
	m := &Manager{
		device:       device,
		prober:       prober,
		clock:        systemClock{},
		probeTimeout: 15 * time.Second,
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartCapture acquires the input device and begins buffering. Any previous
// artifact is discarded.
func (m *Manager) StartCapture() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateRecording || m.state == StatePaused {
		return nil
	}
	if m.device == nil {
		return apperrors.PermissionDenied(deviceName, nil)
	}

	m.artifact = nil
	m.elapsed = 0
	m.resetChunks()
	m.setAccepting(true)

	if err := m.device.Open(m.appendChunk); err != nil {
		m.setAccepting(false)
		m.state = StateIdle
		return apperrors.PermissionDenied(deviceName, err)
	}

	m.state = StateRecording
	m.resumedAt = m.clock.Now()
	log.Printf("[INFO] Capture started")
	return nil
}

func (m *Manager) appendChunk(frames []float32) {
	m.chunkMu.Lock()
	defer m.chunkMu.Unlock()
	if m.accepting {
		m.chunks = append(m.chunks, frames)
	}
}

func (m *Manager) setAccepting(accepting bool) {
	m.chunkMu.Lock()
	m.accepting = accepting
	m.chunkMu.Unlock()
}

func (m *Manager) resetChunks() {
	m.chunkMu.Lock()
	m.chunks = nil
	m.chunkMu.Unlock()
}

func (m *Manager) takeChunks() [][]float32 {
	m.chunkMu.Lock()
	defer m.chunkMu.Unlock()
	chunks := m.chunks
	m.chunks = nil
	m.accepting = false
	return chunks
}

// PauseCapture releases the device and freezes the elapsed counter
func (m *Manager) PauseCapture() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateRecording {
		return nil
	}

	m.elapsed += m.clock.Now().Sub(m.resumedAt)
	m.state = StatePaused
	m.setAccepting(false)
	if err := m.device.Close(); err != nil {
		log.Printf("[WARN] Failed to release %s on pause: %v", deviceName, err)
	}
	return nil
}

// ResumeCapture reacquires the device after a pause
func (m *Manager) ResumeCapture() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StatePaused {
		return nil
	}

	m.setAccepting(true)
	if err := m.device.Open(m.appendChunk); err != nil {
		m.setAccepting(false)
		return apperrors.PermissionDenied(deviceName, err)
	}
	m.state = StateRecording
	m.resumedAt = m.clock.Now()
	return nil
}

// StopCapture releases the device and encodes buffered chunks into a WAV artifact
func (m *Manager) StopCapture() (*models.AudioArtifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateRecording && m.state != StatePaused {
		if m.artifact != nil {
			return m.artifact, nil
		}
		return nil, apperrors.EmptyInput()
	}

	if m.state == StateRecording {
		m.elapsed += m.clock.Now().Sub(m.resumedAt)
		m.setAccepting(false)
		if err := m.device.Close(); err != nil {
			log.Printf("[WARN] Failed to release %s on stop: %v", deviceName, err)
		}
	}

	chunks := m.takeChunks()
	var total int
	for _, chunk := range chunks {
		total += len(chunk)
	}
	samples := make([]float32, 0, total)
	for _, chunk := range chunks {
		samples = append(samples, chunk...)
	}

	format := m.device.Format()
	m.artifact = &models.AudioArtifact{
		ID:        uuid.NewString(),
		Data:      EncodeWAV(samples, format),
		MIMEType:  wavMIMEType,
		Filename:  "recording.wav",
		Source:    models.AudioSourceCapture,
		Duration:  SampleDuration(len(samples), format),
		CreatedAt: m.clock.Now(),
	}
	m.state = StateReady

	log.Printf("[INFO] Capture stopped: %d samples, %.1fs", len(samples), m.artifact.Duration)
	return m.artifact, nil
}

// LoadFile validates the payload is audio and makes it the active artifact
// without re-encoding. Duration is probed in the background.
func (m *Manager) LoadFile(filename, contentType string, data []byte) (*models.AudioArtifact, error) {
	if len(data) == 0 {
		return nil, apperrors.EmptyInput()
	}

	mimeType := resolveMIMEType(contentType, data)
	if !models.IsAudioMIME(mimeType) {
		return nil, apperrors.InvalidFormat(mimeType)
	}

	artifact := &models.AudioArtifact{
		ID:        uuid.NewString(),
		Data:      data,
		MIMEType:  mimeType,
		Filename:  filename,
		Source:    models.AudioSourceUpload,
		CreatedAt: m.clock.Now(),
	}

	m.mu.Lock()
	m.releaseLocked()
	m.artifact = artifact
	m.state = StateReady
	m.mu.Unlock()

	if m.prober != nil {
		m.probes.Add(1)
		go m.probeDuration(artifact)
	}

	return artifact, nil
}

// resolveMIMEType trusts a specific declared type and sniffs generic or missing ones
func resolveMIMEType(declared string, data []byte) string {
	base := models.BaseMIME(declared)
	if base != "" && base != "application/octet-stream" {
		return base
	}

	detected := models.BaseMIME(mimetype.Detect(data).String())
	// Browser recordings are webm/ogg containers which sniff as video
	switch detected {
	case "video/webm":
		return "audio/webm"
	case "video/ogg":
		return "audio/ogg"
	}
	return detected
}

func (m *Manager) probeDuration(artifact *models.AudioArtifact) {
	defer m.probes.Done()

	ctx, cancel := context.WithTimeout(context.Background(), m.probeTimeout)
	defer cancel()

	duration, err := m.prober.ProbeDuration(ctx, artifact.Data)
	if err != nil {
		log.Printf("[DEBUG] Duration probe failed for %s: %v", artifact.Filename, err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// The artifact may have been replaced or cleared while probing
	if m.artifact == nil || m.artifact.ID != artifact.ID {
		return
	}
	probed := *artifact
	probed.Duration = duration
	m.artifact = &probed
}

// WaitForProbes blocks until background duration probes finish
func (m *Manager) WaitForProbes() {
	m.probes.Wait()
}

// Clear discards audio and releases the device from any state
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.releaseLocked()
	m.artifact = nil
	m.state = StateIdle
}

func (m *Manager) releaseLocked() {
	m.setAccepting(false)
	if m.state == StateRecording {
		if err := m.device.Close(); err != nil {
			log.Printf("[WARN] Failed to release %s: %v", deviceName, err)
		}
	}
	m.resetChunks()
	m.elapsed = 0
	m.resumedAt = time.Time{}
	if m.state == StateRecording || m.state == StatePaused {
		m.state = StateIdle
	}
}

// Artifact returns the active artifact, or nil
func (m *Manager) Artifact() *models.AudioArtifact {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.artifact
}

// Status reports the current state and elapsed whole seconds
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	elapsed := m.elapsed
	if m.state == StateRecording {
		elapsed += m.clock.Now().Sub(m.resumedAt)
	}

	return Status{
		State:   m.state,
		Elapsed: int(elapsed / time.Second),
		Audio:   m.artifact,
	}
}
