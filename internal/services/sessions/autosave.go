package sessions

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before an edit is committed
const DefaultDebounce = time.Second

// Timer is a pending scheduled call
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d. Tests substitute a manual scheduler.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// CommitFunc persists text into a session
type CommitFunc func(ctx context.Context, sessionID, text string) error

// Debouncer coalesces rapid transcript edits into a single commit after a
// quiet period. Flush commits the pending edit immediately; the debounced
// path and an explicit save converge on the same commit call.
type Debouncer struct {
	mu        sync.Mutex
	scheduler Scheduler
	delay     time.Duration
	commit    CommitFunc

	timer     Timer
	pending   bool
	sessionID string
	text      string
	lastErr   error
}

// NewDebouncer creates a debouncer; a nil scheduler uses real timers
func NewDebouncer(commit CommitFunc, delay time.Duration, scheduler Scheduler) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if scheduler == nil {
		scheduler = realScheduler{}
	}
	return &Debouncer{scheduler: scheduler, delay: delay, commit: commit}
}

// Schedule records the latest text for a session and restarts the quiet period.
// Switching sessions flushes the previous session's pending edit first.
func (d *Debouncer) Schedule(sessionID, text string) {
	if sessionID == "" {
		return
	}

	d.mu.Lock()
	if d.pending && d.sessionID != sessionID {
		prevID, prevText := d.sessionID, d.text
		d.stopLocked()
		d.mu.Unlock()
		d.run(prevID, prevText)
		d.mu.Lock()
	}

	d.stopLocked()
	d.pending = true
	d.sessionID = sessionID
	d.text = text
	d.timer = d.scheduler.AfterFunc(d.delay, d.fire)
	d.mu.Unlock()
}

// Flush commits any pending edit now
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return nil
	}
	sessionID, text := d.sessionID, d.text
	d.stopLocked()
	d.mu.Unlock()

	return d.commit(ctx, sessionID, text)
}

// Cancel drops any pending edit without committing
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Pending reports whether an edit is waiting for the quiet period
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// LastError returns the error from the most recent timer-driven commit
func (d *Debouncer) LastError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	sessionID, text := d.sessionID, d.text
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.run(sessionID, text)
}

func (d *Debouncer) run(sessionID, text string) {
	err := d.commit(context.Background(), sessionID, text)
	if err != nil {
		log.Printf("[WARN] Auto-save of session %s failed: %v", sessionID, err)
	}
	d.mu.Lock()
	d.lastErr = err
	d.mu.Unlock()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
}
