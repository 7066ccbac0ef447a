package ffmpeg

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	probe := New("", 30*time.Second, "")
	if probe.ffprobePath != "ffprobe" {
		t.Errorf("Expected ffprobePath to default to 'ffprobe', got %s", probe.ffprobePath)
	}
	if probe.timeout != 30*time.Second {
		t.Errorf("Expected timeout to be 30s, got %v", probe.timeout)
	}
}

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		duration float64
		wantErr  bool
	}{
		{
			name:     "format duration",
			raw:      `{"format":{"duration":"12.5","size":"4096","bit_rate":"256000","format_name":"wav"},"streams":[{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000","channels":1}]}`,
			duration: 12.5,
		},
		{
			name:     "stream duration fallback",
			raw:      `{"format":{"format_name":"ogg"},"streams":[{"codec_type":"audio","codec_name":"opus","sample_rate":"48000","channels":2,"duration":"3.25"}]}`,
			duration: 3.25,
		},
		{
			name:    "no duration",
			raw:     `{"format":{"format_name":"wav"},"streams":[]}`,
			wantErr: true,
		},
		{
			name:    "malformed output",
			raw:     `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata, err := parseMetadata([]byte(tt.raw), "test.wav")
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				var procErr *ProcessingError
				if !errors.As(err, &procErr) {
					t.Errorf("Expected ProcessingError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if metadata.Duration != tt.duration {
				t.Errorf("Expected duration %v, got %v", tt.duration, metadata.Duration)
			}
		})
	}
}

func TestProbeDurationEmpty(t *testing.T) {
	probe := New("ffprobe", time.Second, t.TempDir())
	if _, err := probe.ProbeDuration(context.Background(), nil); !errors.Is(err, ErrInvalidAudioFile) {
		t.Errorf("Expected ErrInvalidAudioFile, got %v", err)
	}
}

// Only runs when ffprobe is installed
func TestGetMetadataFileNotFound(t *testing.T) {
	probe := New("ffprobe", 5*time.Second, "")
	if err := probe.ValidateBinary(); err != nil {
		t.Skipf("ffprobe not available: %v", err)
	}

	_, err := probe.GetMetadata(context.Background(), "/nonexistent/file.wav")
	if err == nil {
		t.Fatal("Expected error for non-existent file")
	}
	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Errorf("Expected ProcessingError, got %T", err)
	}
}
