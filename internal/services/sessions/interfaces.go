package sessions

import (
	"context"
	"time"

	"github.com/killallgit/scriptify/internal/models"
)

// Snapshot is the persisted form of the store
type Snapshot struct {
	Sessions    []models.Session
	CurrentID   string
	Preferences models.Preferences
}

// Persister loads the store at startup and saves it after each mutation
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// Clock is the time source for session timestamps
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// StoreService holds the current transcript and the session list
type StoreService interface {
	// SetTranscript replaces the current transcript without persisting it
	SetTranscript(text string)

	// Transcript returns the current transcript text
	Transcript() string

	// CommitToSession writes text into the session and bumps its updated-at
	CommitToSession(ctx context.Context, sessionID, text string) (*models.Session, error)

	// CreateSession allocates an empty session and makes it current
	CreateSession(ctx context.Context, title string) (*models.Session, error)

	// DeleteSession removes a session; unknown ids are ignored
	DeleteSession(ctx context.Context, sessionID string) error

	// SelectSession makes a session current and loads its transcript
	SelectSession(ctx context.Context, sessionID string) (*models.Session, error)

	// RenameSession changes a session title
	RenameSession(ctx context.Context, sessionID, title string) (*models.Session, error)

	// Reset removes every session
	Reset(ctx context.Context) error

	// Sessions lists sessions in creation order
	Sessions() []models.Session

	// Session returns one session
	Session(sessionID string) (*models.Session, error)

	// Current returns the current session, or nil
	Current() *models.Session

	// Preferences returns the stored user defaults
	Preferences() models.Preferences

	// SetPreferences replaces the stored user defaults
	SetPreferences(ctx context.Context, prefs models.Preferences) error
}
