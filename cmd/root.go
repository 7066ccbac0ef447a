package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/scriptify/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scriptify",
	Short: "Audio transcription workspace",
	Long: `Scriptify - record or upload audio, transcribe it and export the transcript

Features:
  • Microphone capture with pause and resume
  • Uploads of audio files with duration probing
  • Transcription through a cloud, local or embedded backend
  • Editable transcript sessions persisted between runs
  • Exports to txt, srt, vtt, docx and pdf`,
	SilenceUsage:      true,
	PersistentPreRunE: setupFromFlags,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("config", "", fmt.Sprintf("settings file (default %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// setupFromFlags applies the logging flags before any subcommand runs
func setupFromFlags(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		config.SetConfigFile(path)
	}

	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	return setupLogging(level, jsonLogs, cmd.ErrOrStderr())
}

// loadConfig loads the configuration when a command needs it.
// version and help never call it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("error initializing config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	// The settings file level applies unless --log-level was given
	if flag := cmd.Flags().Lookup("log-level"); flag != nil && !flag.Changed && cfg.Logging.Level != "" {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := setupLogging(cfg.Logging.Level, jsonLogs, cmd.ErrOrStderr()); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
