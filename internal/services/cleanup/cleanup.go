package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// TempFilePrefix marks audio files written for the native bridge
const TempFilePrefix = "audio_"

// Service handles cleanup of temporary files
type Service struct {
	dirs            []string
	maxAge          time.Duration
	cleanupInterval time.Duration
	now             func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a cleanup service sweeping each of dirs
func NewService(maxAge, cleanupInterval time.Duration, dirs ...string) *Service {
	return &Service{
		dirs:            dirs,
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
		now:             time.Now,
	}
}

// Start runs one sweep immediately and then one per interval until Stop
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.Sweep()

	interval := s.cleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-ctx.Done():
				log.Println("[INFO] Cleanup service stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Cleanup service started (interval: %v, max age: %v)", interval, s.maxAge)
}

// Stop stops the cleanup service and waits for the loop to exit
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Sweep removes bridge temp files older than the max age and returns how many were removed
func (s *Service) Sweep() int {
	removed := 0
	for _, dir := range s.dirs {
		removed += s.sweepDir(dir)
	}
	if removed > 0 {
		log.Printf("[DEBUG] Removed %d stale temp file(s)", removed)
	}
	return removed
}

func (s *Service) sweepDir(dir string) int {
	if dir == "" {
		return 0
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0
	}

	removed := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip files with errors
		}
		if info.IsDir() || !strings.HasPrefix(info.Name(), TempFilePrefix) {
			return nil
		}

		if s.now().Sub(info.ModTime()) > s.maxAge {
			log.Printf("[DEBUG] Removing old temp file: %s", path)
			if err := os.Remove(path); err != nil {
				log.Printf("[WARN] Failed to remove temp file %s: %v", path, err)
				return nil
			}
			removed++
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] Cleanup walk error: %v", err)
	}
	return removed
}
