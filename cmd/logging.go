package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
)

var logLevels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// levelWriter filters log lines by their bracketed level prefix and
// optionally re-encodes them as JSON objects. Lines without a prefix are info.
type levelWriter struct {
	mu       sync.Mutex
	out      io.Writer
	min      int
	jsonLogs bool
	now      func() time.Time
}

type jsonLine struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"msg"`
}

func (w *levelWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	level, message := splitLevel(line)
	if logLevels[level] < w.min {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.jsonLogs {
		if _, err := w.out.Write(p); err != nil {
			return 0, err
		}
		return len(p), nil
	}

	data, err := json.Marshal(jsonLine{
		Time:    w.now().UTC().Format(time.RFC3339Nano),
		Level:   level,
		Message: message,
	})
	if err != nil {
		return 0, err
	}
	if _, err := w.out.Write(append(data, '\n')); err != nil {
		return 0, err
	}
	return len(p), nil
}

// splitLevel finds the first [LEVEL] tag and returns the level and the text after it
func splitLevel(line string) (string, string) {
	for level := range logLevels {
		tag := "[" + strings.ToUpper(level) + "]"
		if i := strings.Index(line, tag); i >= 0 {
			return level, strings.TrimSpace(line[i+len(tag):])
		}
	}
	return "info", line
}

// setupLogging points the standard logger at out, dropping lines below level
func setupLogging(level string, jsonLogs bool, out io.Writer) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	if level == "warning" {
		level = "warn"
	}
	min, ok := logLevels[level]
	if !ok {
		return fmt.Errorf("invalid log level %q (use debug, info, warn, error)", level)
	}

	if jsonLogs {
		log.SetFlags(0)
	} else {
		log.SetFlags(log.LstdFlags)
	}
	log.SetOutput(&levelWriter{out: out, min: min, jsonLogs: jsonLogs, now: time.Now})
	return nil
}
