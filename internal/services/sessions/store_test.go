package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// memoryPersister records every saved snapshot
type memoryPersister struct {
	mu      sync.Mutex
	loaded  *Snapshot
	saves   []Snapshot
	saveErr error
}

func (p *memoryPersister) Load(ctx context.Context) (*Snapshot, error) {
	return p.loaded, nil
}

func (p *memoryPersister) Save(ctx context.Context, snapshot Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves = append(p.saves, snapshot)
	return nil
}

func (p *memoryPersister) last() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves[len(p.saves)-1]
}

func TestStore_CreateSession(t *testing.T) {
	ctx := context.Background()
	persister := &memoryPersister{}
	store := NewStore(persister, WithClock(newFakeClock()))

	store.SetTranscript("leftover")
	first, err := store.CreateSession(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Session 1", first.Title)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.Empty(t, store.Transcript())

	second, err := store.CreateSession(ctx, "  Interview  ")
	require.NoError(t, err)
	assert.Equal(t, "Interview", second.Title)
	assert.NotEqual(t, first.ID, second.ID)

	assert.Equal(t, second.ID, store.CurrentID())
	require.Len(t, store.Sessions(), 2)
	assert.Equal(t, first.ID, store.Sessions()[0].ID)

	assert.Len(t, persister.saves, 2)
	assert.Equal(t, second.ID, persister.last().CurrentID)
}

func TestStore_CommitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewStore(&memoryPersister{}, WithClock(clock))

	session, err := store.CreateSession(ctx, "Notes")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	once, err := store.CommitToSession(ctx, session.ID, "hello world")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	twice, err := store.CommitToSession(ctx, session.ID, "hello world")
	require.NoError(t, err)

	assert.Equal(t, once.Transcript, twice.Transcript)
	assert.Len(t, store.Sessions(), 1)
	assert.True(t, twice.UpdatedAt.After(once.UpdatedAt))
	assert.False(t, twice.UpdatedAt.Before(twice.CreatedAt))
}

func TestStore_UpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewStore(nil, WithClock(clock))

	session, err := store.CreateSession(ctx, "Skewed")
	require.NoError(t, err)

	clock.Set(session.CreatedAt.Add(-time.Hour))
	updated, err := store.CommitToSession(ctx, session.ID, "text")
	require.NoError(t, err)
	assert.Equal(t, session.CreatedAt, updated.UpdatedAt)

	renamed, err := store.RenameSession(ctx, session.ID, "Renamed")
	require.NoError(t, err)
	assert.False(t, renamed.UpdatedAt.Before(renamed.CreatedAt))
}

func TestStore_CommitUnknownSession(t *testing.T) {
	store := NewStore(nil)

	_, err := store.CommitToSession(context.Background(), "missing", "text")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestStore_DeleteSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(&memoryPersister{}, WithClock(newFakeClock()))

	a, err := store.CreateSession(ctx, "A")
	require.NoError(t, err)
	b, err := store.CreateSession(ctx, "B")
	require.NoError(t, err)
	_, err = store.CommitToSession(ctx, a.ID, "alpha")
	require.NoError(t, err)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(ctx, "nope"))
		assert.Len(t, store.Sessions(), 2)
	})

	t.Run("deleting current promotes first remaining", func(t *testing.T) {
		require.Equal(t, b.ID, store.CurrentID())
		require.NoError(t, store.DeleteSession(ctx, b.ID))
		assert.Equal(t, a.ID, store.CurrentID())
		assert.Equal(t, "alpha", store.Transcript())
	})

	t.Run("deleting the last leaves none current", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(ctx, a.ID))
		assert.Empty(t, store.CurrentID())
		assert.Nil(t, store.Current())
		assert.Empty(t, store.Sessions())
		assert.Empty(t, store.Transcript())
	})
}

func TestStore_DeleteCurrentLoadsPromotedTranscript(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil, WithClock(newFakeClock()))

	a, err := store.CreateSession(ctx, "A")
	require.NoError(t, err)
	_, err = store.CommitToSession(ctx, a.ID, "alpha secret")
	require.NoError(t, err)
	b, err := store.CreateSession(ctx, "B")
	require.NoError(t, err)
	_, err = store.CommitToSession(ctx, b.ID, "beta")
	require.NoError(t, err)

	_, err = store.SelectSession(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "alpha secret", store.Transcript())

	require.NoError(t, store.DeleteSession(ctx, a.ID))
	assert.Equal(t, b.ID, store.CurrentID())
	assert.Equal(t, "beta", store.Transcript())

	// deleting a non-current session leaves the working transcript alone
	c, err := store.CreateSession(ctx, "C")
	require.NoError(t, err)
	store.SetTranscript("draft")
	require.NoError(t, store.DeleteSession(ctx, b.ID))
	assert.Equal(t, c.ID, store.CurrentID())
	assert.Equal(t, "draft", store.Transcript())
}

func TestStore_SelectSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil, WithClock(newFakeClock()))

	a, err := store.CreateSession(ctx, "A")
	require.NoError(t, err)
	_, err = store.CommitToSession(ctx, a.ID, "alpha text")
	require.NoError(t, err)
	_, err = store.CreateSession(ctx, "B")
	require.NoError(t, err)
	assert.Empty(t, store.Transcript())

	selected, err := store.SelectSession(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, selected.ID)
	assert.Equal(t, "alpha text", store.Transcript())

	_, err = store.SelectSession(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestStore_RenameValidation(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)

	session, err := store.CreateSession(ctx, "Old")
	require.NoError(t, err)

	_, err = store.RenameSession(ctx, session.ID, "   ")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))

	_, err = store.RenameSession(ctx, "missing", "New")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestStore_ResetAndPreferences(t *testing.T) {
	ctx := context.Background()
	persister := &memoryPersister{}
	store := NewStore(persister)

	_, err := store.CreateSession(ctx, "A")
	require.NoError(t, err)

	prefs := models.Preferences{Language: "fr", Model: "small", Service: "local", AutoSaveInterval: 60}
	require.NoError(t, store.SetPreferences(ctx, prefs))
	assert.Equal(t, prefs, store.Preferences())

	require.NoError(t, store.Reset(ctx))
	assert.Empty(t, store.Sessions())
	assert.Empty(t, store.CurrentID())
	assert.Equal(t, prefs, persister.last().Preferences)
}

func TestStore_SaveFailure(t *testing.T) {
	persister := &memoryPersister{saveErr: errors.New("disk full")}
	store := NewStore(persister)

	_, err := store.CreateSession(context.Background(), "A")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDatabaseQuery, apperrors.GetCode(err))
	assert.Empty(t, store.Sessions())
	assert.Empty(t, store.CurrentID())
}

func TestStore_SaveFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	persister := &memoryPersister{}
	store := NewStore(persister, WithClock(newFakeClock()))

	a, err := store.CreateSession(ctx, "A")
	require.NoError(t, err)
	a, err = store.CommitToSession(ctx, a.ID, "alpha")
	require.NoError(t, err)
	b, err := store.CreateSession(ctx, "B")
	require.NoError(t, err)
	prefs := models.Preferences{Language: "en"}
	require.NoError(t, store.SetPreferences(ctx, prefs))

	before := store.Sessions()
	persister.saveErr = errors.New("disk full")

	_, err = store.CreateSession(ctx, "C")
	assert.Error(t, err)
	_, err = store.CommitToSession(ctx, a.ID, "changed")
	assert.Error(t, err)
	_, err = store.RenameSession(ctx, a.ID, "Renamed")
	assert.Error(t, err)
	_, err = store.SelectSession(ctx, a.ID)
	assert.Error(t, err)
	assert.Error(t, store.DeleteSession(ctx, b.ID))
	assert.Error(t, store.SetPreferences(ctx, models.Preferences{Language: "de"}))
	assert.Error(t, store.Reset(ctx))

	assert.Equal(t, before, store.Sessions())
	assert.Equal(t, b.ID, store.CurrentID())
	assert.Empty(t, store.Transcript())
	assert.Equal(t, prefs, store.Preferences())
}

func TestOpen(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		snapshot       *Snapshot
		wantCurrent    string
		wantTranscript string
	}{
		{
			name: "restores current session transcript",
			snapshot: &Snapshot{
				Sessions: []models.Session{
					{ID: "a", Title: "A", Transcript: "alpha", CreatedAt: created, UpdatedAt: created},
				},
				CurrentID: "a",
			},
			wantCurrent:    "a",
			wantTranscript: "alpha",
		},
		{
			name: "drops a dangling current id",
			snapshot: &Snapshot{
				Sessions:  []models.Session{{ID: "a", Title: "A", CreatedAt: created, UpdatedAt: created}},
				CurrentID: "gone",
			},
		},
		{
			name: "nil snapshot is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(context.Background(), &memoryPersister{loaded: tt.snapshot})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCurrent, store.CurrentID())
			assert.Equal(t, tt.wantTranscript, store.Transcript())
		})
	}
}

func TestOpenDefaultPreferences(t *testing.T) {
	defaults := models.Preferences{AutoSaveInterval: 30}

	store, err := Open(context.Background(), &memoryPersister{}, WithDefaultPreferences(defaults))
	require.NoError(t, err)
	assert.Equal(t, defaults, store.Preferences())

	saved := models.Preferences{Language: "de", AutoSaveInterval: 300}
	store, err = Open(context.Background(), &memoryPersister{loaded: &Snapshot{Preferences: saved}}, WithDefaultPreferences(defaults))
	require.NoError(t, err)
	assert.Equal(t, saved, store.Preferences())
}
