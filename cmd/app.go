package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/killallgit/scriptify/internal/database"
	"github.com/killallgit/scriptify/internal/models"
	"github.com/killallgit/scriptify/internal/services/capture"
	"github.com/killallgit/scriptify/internal/services/cleanup"
	"github.com/killallgit/scriptify/internal/services/export"
	"github.com/killallgit/scriptify/internal/services/jobs"
	"github.com/killallgit/scriptify/internal/services/sessions"
	"github.com/killallgit/scriptify/internal/services/transcription"
	"github.com/killallgit/scriptify/internal/services/workers"
	"github.com/killallgit/scriptify/internal/services/workspace"
	"github.com/killallgit/scriptify/pkg/config"
	"github.com/killallgit/scriptify/pkg/download"
	"github.com/killallgit/scriptify/pkg/ffmpeg"
)

// application is the wired pipeline shared by every command
type application struct {
	cfg        *config.Config
	db         *database.DB
	capture    *capture.Manager
	jobs       jobs.Service
	workspace  *workspace.Workspace
	worker     *workers.Worker
	cleanup    *cleanup.Service
	backend    transcription.Backend
	downloader *download.Downloader
}

// appOptions selects optional collaborators
type appOptions struct {
	// microphone opens the system input device for capture commands
	microphone bool
	// backend overrides the configured transcription backend (tests)
	backend transcription.Backend
}

// newApplication opens the store and wires capture, transcription, jobs and exports
func newApplication(ctx context.Context, cfg *config.Config, opts appOptions) (*application, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	store, err := sessions.Open(ctx, sessions.NewGormPersister(db.DB, cfg.Store.Name),
		sessions.WithDefaultPreferences(models.Preferences{AutoSaveInterval: cfg.AutoSave.Interval}))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load session store: %w", err)
	}

	var device capture.Device
	if opts.microphone {
		device = capture.NewPortAudioDevice(cfg.Capture.SampleRate, cfg.Capture.Channels, cfg.Capture.FramesPerBuffer)
	}

	var prober capture.Prober
	probe := ffmpeg.New(cfg.Processing.FFprobePath, cfg.Processing.ProbeTimeout, cfg.Storage.TempDir)
	if err := probe.ValidateBinary(); err != nil {
		log.Printf("[WARN] Duration probing disabled: %v", err)
	} else {
		prober = probe
	}
	manager := capture.NewManager(device, prober, capture.WithProbeTimeout(cfg.Processing.ProbeTimeout))

	backend := opts.backend
	if backend == nil {
		backend, _, err = transcription.Select(cfg, nil, nil)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	jobService := jobs.NewService(jobs.NewRepository())
	ws := workspace.New(manager, store, jobService, export.NewService(), workspace.Config{
		DefaultLanguage: cfg.Transcription.Language,
		DefaultModel:    cfg.Transcription.Model,
		OutputDir:       cfg.Export.OutputDir,
		Debounce:        cfg.AutoSave.Debounce,
	})

	worker := workers.NewWorker("transcriber", jobService, workers.DefaultPollInterval)
	worker.RegisterProcessor(workers.NewTranscriptionProcessor(
		jobService,
		transcription.NewService(backend, cfg.Transcription.Language, cfg.Transcription.Model),
		ws,
		cfg.Transcription.Timeout,
	))

	return &application{
		cfg:       cfg,
		db:        db,
		capture:   manager,
		jobs:      jobService,
		workspace: ws,
		worker:    worker,
		cleanup:   cleanup.NewService(cfg.Storage.MaxTempAge, cfg.Storage.CleanupInterval, cfg.Native.TempDir, cfg.Storage.TempDir),
		backend:   backend,
		downloader: download.NewDownloader(download.Options{
			MaxSize:       cfg.Server.MaxUploadBytes,
			Timeout:       cfg.Transcription.Timeout,
			UserAgent:     "Scriptify/" + Version,
			ValidateAudio: true,
		}),
	}, nil
}

// start launches the background worker and temp file cleanup
func (a *application) start(ctx context.Context) {
	a.worker.Start(ctx)
	a.cleanup.Start(ctx)
}

// close flushes pending edits and releases every resource
func (a *application) close(ctx context.Context) {
	if err := a.workspace.Close(ctx); err != nil {
		log.Printf("[WARN] Failed to flush pending transcript edit: %v", err)
	}
	a.capture.Clear()
	a.worker.Stop()
	a.cleanup.Stop()
	if err := a.db.Close(); err != nil {
		log.Printf("[WARN] Failed to close database: %v", err)
	}
}
