package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/killallgit/scriptify/pkg/transcript"
	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <path-or-url>",
	Short: "Import an existing transcript into a new session",
	Long: `Import a txt, srt, vtt or json transcript from a file or an http(s) URL.
The transcript becomes a new session and can be converted on the way out.

Example:
  scriptify import talk.srt
  scriptify import https://example.com/captions.vtt --title "Keynote"
  scriptify import talk.srt --format vtt --output talk.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("title", "", "session title (defaults to the file name)")
	importCmd.Flags().String("as", "", "force the input format (vtt, srt, json, text)")
	importCmd.Flags().String("format", "", "also export the imported transcript in this format")
	importCmd.Flags().StringP("output", "o", "", "write the export to this file instead of stdout")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	source := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loaded, err := transcript.NewFetcher(transcript.DefaultFetchOptions()).Load(ctx, source)
	if err != nil {
		return err
	}

	format := loaded.Format
	if as, _ := cmd.Flags().GetString("as"); as != "" {
		format = transcript.TranscriptFormat(strings.ToLower(as))
	}

	parsed, err := transcript.NewParser().Parse(loaded.Content, format)
	if err != nil {
		return fmt.Errorf("failed to parse transcript: %w", err)
	}

	app, err := newApplication(ctx, cfg, appOptions{})
	if err != nil {
		return err
	}
	defer app.close(context.Background())

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	session, err := app.workspace.ImportTranscript(ctx, title, parsed.ToResult("import"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d segment(s) into session %s (%s)\n", len(parsed.Segments), session.ID, session.Title)

	if exportFormat, _ := cmd.Flags().GetString("format"); exportFormat == "" {
		return nil
	}
	return writeTranscript(cmd, app.workspace)
}
