package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// FFprobe reads container metadata from audio files
type FFprobe struct {
	ffprobePath string
	timeout     time.Duration
	tempDir     string
}

// New creates a prober. An empty tempDir uses the OS default.
func New(ffprobePath string, timeout time.Duration, tempDir string) *FFprobe {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFprobe{
		ffprobePath: ffprobePath,
		timeout:     timeout,
		tempDir:     tempDir,
	}
}

// ValidateBinary checks that ffprobe is on the path
func (f *FFprobe) ValidateBinary() error {
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}
	return nil
}

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		Bitrate    string `json:"bit_rate"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
		Duration   string `json:"duration"`
	} `json:"streams"`
}

// GetMetadata extracts metadata from an audio file using ffprobe
func (f *FFprobe) GetMetadata(ctx context.Context, filePath string) (*AudioMetadata, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-select_streams", "a:0",
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("metadata_extraction", filePath, err, stderr.String())
	}

	return parseMetadata(stdout.Bytes(), filePath)
}

// ProbeDuration writes data to a temp file and returns its duration in seconds
func (f *FFprobe) ProbeDuration(ctx context.Context, data []byte) (float64, error) {
	if len(data) == 0 {
		return 0, ErrInvalidAudioFile
	}

	tmp, err := os.CreateTemp(f.tempDir, "probe-*.audio")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTempFileCreation, err)
	}
	defer func() {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil {
			log.Printf("[WARN] Failed to remove probe file %s: %v", tmp.Name(), rmErr)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("%w: %v", ErrTempFileCreation, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTempFileCreation, err)
	}

	metadata, err := f.GetMetadata(ctx, tmp.Name())
	if err != nil {
		return 0, err
	}
	return metadata.Duration, nil
}

// parseMetadata converts ffprobe JSON output to AudioMetadata
func parseMetadata(raw []byte, filePath string) (*AudioMetadata, error) {
	var output ffprobeOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		return nil, NewProcessingError("metadata_parsing", filePath, err, "")
	}

	metadata := &AudioMetadata{Format: output.Format.FormatName}

	if output.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil {
			metadata.Duration = duration
		}
	}
	if output.Format.Size != "" {
		if size, err := strconv.ParseInt(output.Format.Size, 10, 64); err == nil {
			metadata.Size = size
		}
	}
	if output.Format.Bitrate != "" {
		if bitrate, err := strconv.Atoi(output.Format.Bitrate); err == nil {
			metadata.Bitrate = bitrate
		}
	}

	for _, stream := range output.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		metadata.Codec = stream.CodecName
		metadata.Channels = stream.Channels
		if sampleRate, err := strconv.Atoi(stream.SampleRate); err == nil {
			metadata.SampleRate = sampleRate
		}
		// Some containers only carry a per-stream duration
		if metadata.Duration == 0 && stream.Duration != "" {
			if duration, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
				metadata.Duration = duration
			}
		}
		break
	}

	if metadata.Duration <= 0 {
		return nil, NewProcessingError("metadata_validation", filePath,
			fmt.Errorf("%w: could not determine audio duration", ErrInvalidAudioFile), "")
	}

	return metadata, nil
}
