package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAged(t *testing.T, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(nested, 0755))

	stale := filepath.Join(dir, "audio_old.wav")
	staleNested := filepath.Join(nested, "audio_older.webm")
	fresh := filepath.Join(dir, "audio_new.wav")
	unrelated := filepath.Join(dir, "notes.txt")

	writeAged(t, stale, 2*time.Hour)
	writeAged(t, staleNested, 3*time.Hour)
	writeAged(t, fresh, time.Minute)
	writeAged(t, unrelated, 5*time.Hour)

	svc := NewService(time.Hour, time.Hour, dir, filepath.Join(dir, "missing"), "")
	assert.Equal(t, 2, svc.Sweep())

	assert.NoFileExists(t, stale)
	assert.NoFileExists(t, staleNested)
	assert.FileExists(t, fresh)
	assert.FileExists(t, unrelated)
}

func TestStartStop(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "audio_old.wav")
	writeAged(t, stale, 2*time.Hour)

	svc := NewService(time.Hour, 10*time.Millisecond, dir)
	svc.Start(context.Background())
	svc.Start(context.Background())
	assert.NoFileExists(t, stale, "first sweep runs on start")

	svc.Stop()
	svc.Stop()
}
