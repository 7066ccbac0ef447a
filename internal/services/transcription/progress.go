package transcription

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/killallgit/scriptify/internal/models"
)

func progressUpdate(step string, pct float64, message string) models.ProgressUpdate {
	return models.ProgressUpdate{Step: step, Progress: pct, Message: message}
}

// Reporter scopes a progress stream to one call. It drops values lower than
// the last one delivered and goes silent once the call finishes or fails, so
// late events from an abandoned backend never reach the consumer.
type Reporter struct {
	mu     sync.Mutex
	sink   ProgressFunc
	last   float64
	seen   bool
	closed bool
}

// NewReporter wraps sink; a nil sink discards updates
func NewReporter(sink ProgressFunc) *Reporter {
	return &Reporter{sink: sink}
}

// Report forwards an update if it does not move progress backwards
func (r *Reporter) Report(update models.ProgressUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	update.Progress = math.Max(0, math.Min(100, update.Progress))
	if r.seen && update.Progress < r.last {
		return
	}
	r.last = update.Progress
	r.seen = true
	if r.sink != nil {
		r.sink(update)
	}
}

// Func returns Report as a ProgressFunc for passing to backends
func (r *Reporter) Func() ProgressFunc {
	return r.Report
}

// Complete emits a final 100 unless one was already delivered, then closes
func (r *Reporter) Complete() {
	r.mu.Lock()
	done := r.seen && r.last >= 100
	r.mu.Unlock()

	if !done {
		r.Report(progressUpdate(models.StepCompleted, 100, "Transcription completed!"))
	}
	r.close()
}

// Fail closes the stream without a terminal event
func (r *Reporter) Fail() {
	r.close()
}

// Last returns the highest progress delivered so far
func (r *Reporter) Last() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Reporter) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

var chunkPercentRegex = regexp.MustCompile(`\|?\s*(\d+(?:\.\d+)?)%`)

// StderrParser turns the native helper's stderr log lines into progress updates
type StderrParser struct {
	now       func() time.Time
	last      float64
	stepStart time.Time
	formatted bool
}

// NewStderrParser creates a parser; now may be nil to use the wall clock
func NewStderrParser(now func() time.Time) *StderrParser {
	if now == nil {
		now = time.Now
	}
	return &StderrParser{now: now, stepStart: now()}
}

// Parse returns the updates implied by one stderr line, possibly none
func (p *StderrParser) Parse(line string) []models.ProgressUpdate {
	line = strings.TrimSpace(line)
	if line == "" || strings.Contains(line, "UserWarning") || strings.Contains(line, "warnings.warn") {
		return nil
	}

	var updates []models.ProgressUpdate
	step := func(name string, pct float64, message string) {
		p.last = pct
		p.stepStart = p.now()
		updates = append(updates, progressUpdate(name, pct, message))
	}

	switch {
	case strings.Contains(line, "Loading Whisper model"):
		step(models.StepLoadingModel, 20, "Loading Whisper model...")
	case strings.Contains(line, "Preparing audio"):
		step(models.StepPreparingAudio, 40, "Preparing audio...")
	case strings.Contains(line, "Chunking audio"):
		step(models.StepChunkingAudio, 60, "Chunking audio...")
	case strings.Contains(line, "Transcribing chunks"):
		if pct, ok := chunkPercent(line); ok {
			total := 60 + pct/100*30
			p.last = total
			updates = append(updates, progressUpdate(models.StepTranscribing, total,
				"Transcribing chunks... "+strconv.FormatFloat(pct, 'f', 0, 64)+"%"))
		} else if p.last < 80 {
			p.last = 80
			updates = append(updates, progressUpdate(models.StepTranscribing, 80, "Transcribing chunks..."))
		}
	case strings.Contains(line, "Formatting result"):
		p.formatted = true
		step(models.StepFormatting, 95, "Formatting result...")
	}

	// Long silent steps get a small time-based bump, capped below formatting
	elapsed := p.now().Sub(p.stepStart)
	if elapsed > 3*time.Second && p.last < 85 && !p.formatted {
		bumped := p.last + math.Min(elapsed.Seconds()*0.2, 2)
		if bumped > p.last {
			p.last = bumped
			updates = append(updates, progressUpdate(models.StepProcessing, bumped, "Processing..."))
		}
	}

	return updates
}

// chunkPercent extracts the progress-bar percentage, e.g. "Transcribing chunks:  40%|████"
func chunkPercent(line string) (float64, bool) {
	head, _, found := strings.Cut(line, "%")
	if !found {
		return 0, false
	}
	if i := strings.LastIndex(head, "|"); i >= 0 {
		head = head[i+1:]
	}
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return 0, false
	}
	if m := chunkPercentRegex.FindStringSubmatch(fields[len(fields)-1] + "%"); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		return v, err == nil
	}
	return 0, false
}
