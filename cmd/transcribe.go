package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/killallgit/scriptify/internal/models"
	"github.com/killallgit/scriptify/internal/services/export"
	"github.com/killallgit/scriptify/internal/services/workspace"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
	"github.com/spf13/cobra"
)

// transcribeCmd represents the transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file-or-url>",
	Short: "Transcribe an audio file",
	Long: `Transcribe an audio file or an http(s) audio URL with the configured
backend and store the result in a session.

Example:
  scriptify transcribe lecture.mp3
  scriptify transcribe https://example.com/memo.m4a
  scriptify transcribe interview.wav --language de --session "Interview"
  scriptify transcribe talk.webm --format srt --output talk.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().String("language", "", "language code (defaults to the stored preference)")
	transcribeCmd.Flags().String("session", "", "create a new session with this title before transcribing")
	addOutputFlags(transcribeCmd)
}

// addOutputFlags registers the flags that control where a transcript is written
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "txt", "output format (txt, srt, vtt, docx, pdf)")
	cmd.Flags().StringP("output", "o", "", "write the transcript to this file instead of stdout")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, appOptions{})
	if err != nil {
		return err
	}
	defer app.close(context.Background())

	if err := loadAudio(ctx, app, args[0]); err != nil {
		return err
	}

	if title, _ := cmd.Flags().GetString("session"); title != "" {
		if _, err := app.workspace.CreateSession(ctx, title); err != nil {
			return err
		}
	}

	language, _ := cmd.Flags().GetString("language")
	if _, err := transcribeArtifact(ctx, app, language, cmd.ErrOrStderr()); err != nil {
		return err
	}
	return writeTranscript(cmd, app.workspace)
}

// loadAudio makes a local file or an http(s) URL the active artifact
func loadAudio(ctx context.Context, app *application, source string) error {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		remote, err := app.downloader.Fetch(ctx, source)
		if err != nil {
			return err
		}
		_, err = app.workspace.LoadFile(remote.Filename, remote.AudioType(), remote.Data)
		return err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}
	_, err = app.workspace.LoadFile(filepath.Base(source), "", data)
	return err
}

// transcribeArtifact runs the active artifact through the worker and reports progress
func transcribeArtifact(ctx context.Context, app *application, language string, progress io.Writer) (*models.Job, error) {
	job, err := app.workspace.Transcribe(ctx, language)
	if err != nil {
		return nil, err
	}

	updates, cancel, err := app.jobs.Subscribe(job.ID)
	if err != nil {
		return nil, err
	}
	defer cancel()

	app.start(ctx)

	last := *job
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return finishedJob(ctx, app, last.ID)
			}
			if update.Progress != last.Progress || update.Step != last.Step {
				fmt.Fprintf(progress, "[%3.0f%%] %s %s\n", update.Progress, update.Step, update.Message)
			}
			last = update
			if update.IsTerminal() {
				return finishedJob(ctx, app, update.ID)
			}
		}
	}
}

func finishedJob(ctx context.Context, app *application, jobID string) (*models.Job, error) {
	job, err := app.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	switch job.Status {
	case models.JobStatusCompleted:
		return job, nil
	case models.JobStatusFailed:
		if state := app.workspace.Error(); state != nil {
			return job, apperrors.New(state.Code, state.Message)
		}
		return job, fmt.Errorf("transcription failed: %s", job.Error)
	default:
		return job, fmt.Errorf("transcription %s", job.Status)
	}
}

// writeTranscript renders the current transcript per the --format and --output flags
func writeTranscript(cmd *cobra.Command, ws *workspace.Workspace) error {
	formatKey, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	format, err := export.ParseFormat(formatKey)
	if err != nil {
		return err
	}

	name := ""
	if output != "" {
		name = filepath.Base(output)
	}
	out, err := ws.Export(format, workspace.ExportOptions{Filename: name})
	if err != nil {
		return err
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(out.Data)
		if err == nil && format == export.FormatTXT {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return err
	}
	if err := os.WriteFile(output, out.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Transcript written to %s\n", output)
	return nil
}
