package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api"
	"github.com/killallgit/scriptify/api/types"
	"github.com/killallgit/scriptify/pkg/config"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Scriptify API server with the configured settings.

The server accepts audio uploads and capture controls, runs transcription
jobs in the background and streams their progress over WebSocket.

Example:
  scriptify serve
  scriptify serve --port 9090
  scriptify serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

// listenAddress resolves the flag overrides against the settings file
func listenAddress(cfg *config.Config, host string, port int) (string, error) {
	if host == "" {
		host = cfg.Server.Host
	}
	if port == 0 {
		port = cfg.Server.Port
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid port %d", port)
	}
	return fmt.Sprintf("%s:%d", host, port), nil
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load config (lazy loading - only when serve command is run)
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	address, err := listenAddress(cfg, serverHost, serverPort)
	if err != nil {
		return err
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, appOptions{microphone: true})
	if err != nil {
		return err
	}
	app.start(ctx)

	server := api.NewServer(address, api.ServerOptions{
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	})
	server.SetDependencies(&types.Dependencies{
		DB:             app.db,
		Workspace:      app.workspace,
		Downloader:     app.downloader,
		BackendName:    app.backend.Name(),
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Version:        Version,
	})
	if err := server.Initialize(); err != nil {
		app.close(context.Background())
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	log.Printf("[INFO] Starting Scriptify API server on %s (backend %s)", address, app.backend.Name())

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	var runErr error
	select {
	case <-ctx.Done():
		log.Printf("[INFO] Shutting down server...")
	case runErr = <-serverErr:
		log.Printf("[ERROR] %v", runErr)
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server forced to shutdown: %v", err)
		if runErr == nil {
			runErr = err
		}
	}
	app.close(shutdownCtx)

	if runErr == nil {
		log.Printf("[INFO] Server gracefully stopped")
	}
	return runErr
}

// commandContext returns the command's context, or Background when run outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
