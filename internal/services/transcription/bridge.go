package transcription

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

// ScriptBridge runs the embedded Whisper helper as a child process. Audio is
// handed over through a temp file; progress is read from stderr and the
// result from stdout.
type ScriptBridge struct {
	PythonPath string
	ScriptPath string
	ModelSize  string
	TempDir    string

	now func() time.Time
}

// NewScriptBridge creates a bridge for the helper script
func NewScriptBridge(pythonPath, scriptPath, modelSize, tempDir string) *ScriptBridge {
	if pythonPath == "" {
		pythonPath = "python3"
	}
	if modelSize == "" {
		modelSize = "base"
	}
	return &ScriptBridge{
		PythonPath: pythonPath,
		ScriptPath: scriptPath,
		ModelSize:  modelSize,
		TempDir:    tempDir,
		now:        time.Now,
	}
}

// Available checks the interpreter and script exist
func (b *ScriptBridge) Available() error {
	if _, err := exec.LookPath(b.PythonPath); err != nil {
		return fmt.Errorf("python interpreter not found: %w", err)
	}
	if _, err := os.Stat(b.ScriptPath); err != nil {
		return fmt.Errorf("transcription script not found: %w", err)
	}
	return nil
}

// Invoke implements Bridge. Only the transcribe procedure is exposed.
func (b *ScriptBridge) Invoke(ctx context.Context, procedure string, req BridgeRequest, progress ProgressFunc) (*BridgeResponse, error) {
	if procedure != procTranscribe {
		return nil, fmt.Errorf("unknown procedure: %s", procedure)
	}

	audioPath, err := b.writeTempAudio(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to remove temp audio %s: %v", audioPath, err)
		}
	}()

	language := req.Language
	if language == "" {
		language = models.LanguageAuto
	}

	cmd := exec.CommandContext(ctx, b.PythonPath, b.ScriptPath,
		"--audio-path", audioPath,
		"--language", language,
		"--model-size", b.ModelSize,
	)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to capture helper stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, apperrors.BackendUnavailable(nativeName, err)
	}

	emit(progress, models.StepInitializing, 0, "Starting transcription...")

	tail := b.pumpStderr(stderr, progress)
	waitErr := cmd.Wait()

	var resp BridgeResponse
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &resp); err != nil {
		if waitErr != nil {
			return nil, apperrors.BackendError(nativeName, fmt.Sprintf("helper exited: %v: %s", waitErr, tail))
		}
		return nil, apperrors.BackendError(nativeName, fmt.Sprintf("failed to parse helper output: %v", err))
	}
	if waitErr != nil && resp.Error == "" {
		resp.Error = fmt.Sprintf("helper exited: %v", waitErr)
	}
	if resp.Error == "" {
		emit(progress, models.StepCompleted, 100, "Transcription completed!")
	}
	return &resp, nil
}

func (b *ScriptBridge) writeTempAudio(req BridgeRequest) (string, error) {
	dir := b.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	path := filepath.Join(dir, "audio_"+uuid.NewString()+extensionFor(req.MIMEType))
	if err := os.WriteFile(path, req.AudioData, 0600); err != nil {
		return "", fmt.Errorf("failed to write temp audio: %w", err)
	}
	return path, nil
}

// pumpStderr feeds helper log lines to the parser and returns the last few lines
func (b *ScriptBridge) pumpStderr(r io.Reader, progress ProgressFunc) string {
	parser := NewStderrParser(b.now)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	// tqdm redraws with carriage returns
	scanner.Split(scanLinesOrCR)

	var tail []string
	for scanner.Scan() {
		line := scanner.Text()
		log.Printf("[DEBUG] native: %s", line)
		for _, update := range parser.Parse(line) {
			if progress != nil {
				progress(update)
			}
		}
		if strings.TrimSpace(line) != "" {
			tail = append(tail, line)
			if len(tail) > 5 {
				tail = tail[1:]
			}
		}
	}
	return strings.Join(tail, "; ")
}

func scanLinesOrCR(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func extensionFor(mimeType string) string {
	switch models.BaseMIME(mimeType) {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	case "audio/flac", "audio/x-flac":
		return ".flac"
	case "audio/mp4", "audio/x-m4a", "audio/aac":
		return ".m4a"
	default:
		return ".webm"
	}
}
