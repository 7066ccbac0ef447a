package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/killallgit/scriptify/internal/services/export"
	"github.com/killallgit/scriptify/internal/services/workspace"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a session transcript",
	Long: `Export the transcript of the current (or given) session.

Timed formats (srt, vtt) need segments, which only exist for a transcript
produced or imported in the same run. Use "transcribe" or "import" with
--format for those.

Example:
  scriptify export --format docx
  scriptify export --session 3f6c... --format pdf --metadata
  scriptify export --bundle txt,pdf,docx --output-dir ./exports
  scriptify export --zip`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("session", "", "session to export (defaults to the current one)")
	exportCmd.Flags().String("format", "txt", "output format (txt, srt, vtt, docx, pdf)")
	exportCmd.Flags().StringSlice("bundle", nil, "export several formats into one zip archive")
	exportCmd.Flags().Bool("zip", false, "bundle the formats listed in export.formats")
	exportCmd.Flags().String("filename", "", "base file name (defaults to a timestamped name)")
	exportCmd.Flags().String("title", "", "document title")
	exportCmd.Flags().Bool("metadata", false, "include session metadata in the document")
	exportCmd.Flags().String("output-dir", "", "directory for exported files (overrides config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.Export.OutputDir = dir
	}

	app, err := newApplication(ctx, cfg, appOptions{})
	if err != nil {
		return err
	}
	defer app.close(context.Background())

	if id, _ := cmd.Flags().GetString("session"); id != "" {
		if _, err := app.workspace.SelectSession(ctx, id); err != nil {
			return err
		}
	}
	if app.workspace.Store().Current() == nil {
		return fmt.Errorf("no session to export")
	}

	if zip, _ := cmd.Flags().GetBool("zip"); zip && !cmd.Flags().Changed("bundle") {
		if err := cmd.Flags().Set("bundle", strings.Join(cfg.Export.Formats, ",")); err != nil {
			return err
		}
	}

	out, err := renderExport(cmd, app.workspace)
	if err != nil {
		return err
	}

	path, err := app.workspace.SaveExport(ctx, out)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	fmt.Fprintln(cmd.OutOrStdout(), abs)
	return nil
}

func renderExport(cmd *cobra.Command, ws *workspace.Workspace) (*export.Output, error) {
	filename, _ := cmd.Flags().GetString("filename")
	title, _ := cmd.Flags().GetString("title")
	metadata, _ := cmd.Flags().GetBool("metadata")
	opts := workspace.ExportOptions{Filename: filename, Title: title, IncludeMetadata: metadata}

	bundle, _ := cmd.Flags().GetStringSlice("bundle")
	if len(bundle) > 0 {
		formats := make([]export.Format, 0, len(bundle))
		for _, key := range bundle {
			format, err := export.ParseFormat(key)
			if err != nil {
				return nil, err
			}
			formats = append(formats, format)
		}
		return ws.ExportBundle(formats, opts)
	}

	key, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(key)
	if err != nil {
		return nil, err
	}
	return ws.Export(format, opts)
}
