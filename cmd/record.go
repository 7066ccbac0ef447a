package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// recordCmd represents the record command
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone",
	Long: `Record audio from the default input device until the duration elapses
or the command is interrupted, then optionally transcribe it.

Example:
  scriptify record --duration 30s --save-audio note.wav
  scriptify record --transcribe --format vtt --output note.vtt`,
	Args: cobra.NoArgs,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().Duration("duration", 0, "stop after this long (0 = until interrupted)")
	recordCmd.Flags().String("save-audio", "", "write the recording to this WAV file")
	recordCmd.Flags().Bool("transcribe", false, "transcribe the recording when it stops")
	recordCmd.Flags().String("language", "", "language code (defaults to the stored preference)")
	addOutputFlags(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, appOptions{microphone: true})
	if err != nil {
		return err
	}
	defer app.close(context.Background())

	if err := app.workspace.StartCapture(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Recording... press Ctrl+C to stop")

	waitForStop(ctx, durationFlag(cmd, "duration"))

	artifact, err := app.workspace.StopCapture()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Recorded %.1fs of audio\n", artifact.Duration)

	if path, _ := cmd.Flags().GetString("save-audio"); path != "" {
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write recording: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Recording written to %s\n", path)
	}

	if transcribe, _ := cmd.Flags().GetBool("transcribe"); !transcribe {
		return nil
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	language, _ := cmd.Flags().GetString("language")
	if _, err := transcribeArtifact(runCtx, app, language, cmd.ErrOrStderr()); err != nil {
		return err
	}
	return writeTranscript(cmd, app.workspace)
}

// waitForStop blocks until the duration elapses, an interrupt arrives or ctx ends
func waitForStop(ctx context.Context, duration time.Duration) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if duration <= 0 {
		<-sigCtx.Done()
		return
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-sigCtx.Done():
	}
}

func durationFlag(cmd *cobra.Command, name string) time.Duration {
	d, _ := cmd.Flags().GetDuration(name)
	return d
}
