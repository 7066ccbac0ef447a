package capture

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

// PortAudioDevice reads the default system input through PortAudio
type PortAudioDevice struct {
	mu              sync.Mutex
	format          Format
	framesPerBuffer int
	stream          *portaudio.Stream
	buffer          []float32
	running         bool
	done            chan struct{}
}

// NewPortAudioDevice creates a device; the hardware is not touched until Open
func NewPortAudioDevice(sampleRate, channels, framesPerBuffer int) *PortAudioDevice {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	if channels <= 0 {
		channels = 1
	}
	if framesPerBuffer <= 0 {
		framesPerBuffer = 1024
	}
	return &PortAudioDevice{
		format:          Format{SampleRate: sampleRate, Channels: channels},
		framesPerBuffer: framesPerBuffer,
	}
}

// Format returns the PCM layout delivered to the sink
func (d *PortAudioDevice) Format() Format {
	return d.format
}

// Open initializes PortAudio, opens the default input stream and starts reading
func (d *PortAudioDevice) Open(sink func(frames []float32)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	d.buffer = make([]float32, d.framesPerBuffer*d.format.Channels)
	stream, err := portaudio.OpenDefaultStream(d.format.Channels, 0, float64(d.format.SampleRate), d.framesPerBuffer, d.buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open input stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start input stream: %w", err)
	}

	d.stream = stream
	d.running = true
	d.done = make(chan struct{})
	go d.readLoop(stream, sink, d.done)

	return nil
}

func (d *PortAudioDevice) readLoop(stream *portaudio.Stream, sink func([]float32), done chan struct{}) {
	defer close(done)

	for {
		d.mu.Lock()
		running := d.running
		d.mu.Unlock()
		if !running {
			return
		}

		if err := stream.Read(); err != nil {
			// Input overflow is recoverable; anything else ends the loop on Close
			time.Sleep(10 * time.Millisecond)
			continue
		}

		frames := make([]float32, len(d.buffer))
		copy(frames, d.buffer)
		sink(frames)
	}
}

// Close stops the read loop and releases the input stream
func (d *PortAudioDevice) Close() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	stream := d.stream
	d.stream = nil
	done := d.done
	d.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-time.After(250 * time.Millisecond):
			log.Printf("[WARN] Capture read loop did not exit in time")
		}
	}

	var closeErr error
	if stream != nil {
		if err := stream.Stop(); err != nil {
			closeErr = err
		}
		if err := stream.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	if err := portaudio.Terminate(); err != nil && closeErr == nil {
		closeErr = err
	}

	if closeErr != nil {
		return fmt.Errorf("failed to release input device: %w", closeErr)
	}
	return nil
}
