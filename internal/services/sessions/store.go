package sessions

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

// Store implements StoreService. It is the single owner of the session list;
// every mutation is staged on a copy, written through the persister, and only
// then applied, so a failed save leaves the store as it was.
type Store struct {
	mu sync.RWMutex

	persister Persister
	clock     Clock

	transcript  string
	sessions    []models.Session
	currentID   string
	preferences models.Preferences
}

// Option configures a Store
type Option func(*Store)

// WithClock injects the timestamp source
func WithClock(clock Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithDefaultPreferences seeds the preferences of a store that has none saved
func WithDefaultPreferences(prefs models.Preferences) Option {
	return func(s *Store) { s.preferences = prefs }
}

// NewStore creates an empty store. persister may be nil for an in-memory store.
func NewStore(persister Persister, opts ...Option) *Store {
	s := &Store{persister: persister, clock: systemClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads its persisted state
func Open(ctx context.Context, persister Persister, opts ...Option) (*Store, error) {
	s := NewStore(persister, opts...)
	if persister == nil {
		return s, nil
	}

	snapshot, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session store: %w", err)
	}
	if snapshot != nil {
		s.sessions = snapshot.Sessions
		if snapshot.Preferences != (models.Preferences{}) {
			s.preferences = snapshot.Preferences
		}
		s.currentID = snapshot.CurrentID
		if s.indexOf(s.currentID) < 0 {
			s.currentID = ""
		}
		if cur := s.currentLocked(); cur != nil {
			s.transcript = cur.Transcript
		}
	}
	log.Printf("[INFO] Loaded %d session(s)", len(s.sessions))
	return s, nil
}

// SetTranscript implements StoreService
func (s *Store) SetTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
}

// Transcript implements StoreService
func (s *Store) Transcript() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcript
}

// CommitToSession implements StoreService. Committing the same text twice
// leaves the text and session count unchanged and only advances updated-at.
func (s *Store) CommitToSession(ctx context.Context, sessionID, text string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(sessionID)
	if i < 0 {
		return nil, apperrors.NotFound("session", sessionID)
	}

	next := s.cloneSessions()
	next[i].Transcript = text
	s.touch(&next[i])

	if err := s.saveLocked(ctx, next, s.currentID, s.preferences); err != nil {
		return nil, err
	}
	s.sessions = next
	session := next[i]
	return &session, nil
}

// CreateSession implements StoreService
func (s *Store) CreateSession(ctx context.Context, title string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		title = fmt.Sprintf("Session %d", len(s.sessions)+1)
	}

	now := s.clock.Now()
	session := models.Session{
		ID:        uuid.NewString(),
		Title:     title,
		Position:  s.nextPosition(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	next := append(s.cloneSessions(), session)
	if err := s.saveLocked(ctx, next, session.ID, s.preferences); err != nil {
		return nil, err
	}
	s.sessions = next
	s.currentID = session.ID
	s.transcript = ""
	return &session, nil
}

// DeleteSession implements StoreService. Deleting the current session promotes
// the first remaining session and loads its transcript, or leaves none current
// and an empty transcript.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(sessionID)
	if i < 0 {
		return nil
	}

	next := make([]models.Session, 0, len(s.sessions)-1)
	next = append(next, s.sessions[:i]...)
	next = append(next, s.sessions[i+1:]...)

	currentID := s.currentID
	transcript := s.transcript
	if currentID == sessionID {
		currentID, transcript = "", ""
		if len(next) > 0 {
			currentID, transcript = next[0].ID, next[0].Transcript
		}
	}

	if err := s.saveLocked(ctx, next, currentID, s.preferences); err != nil {
		return err
	}
	s.sessions = next
	s.currentID = currentID
	s.transcript = transcript
	return nil
}

// SelectSession implements StoreService
func (s *Store) SelectSession(ctx context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(sessionID)
	if i < 0 {
		return nil, apperrors.NotFound("session", sessionID)
	}

	if err := s.saveLocked(ctx, s.sessions, sessionID, s.preferences); err != nil {
		return nil, err
	}
	s.currentID = sessionID
	s.transcript = s.sessions[i].Transcript
	session := s.sessions[i]
	return &session, nil
}

// RenameSession implements StoreService
func (s *Store) RenameSession(ctx context.Context, sessionID, title string) (*models.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.ValidationError("title", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(sessionID)
	if i < 0 {
		return nil, apperrors.NotFound("session", sessionID)
	}

	next := s.cloneSessions()
	next[i].Title = title
	s.touch(&next[i])

	if err := s.saveLocked(ctx, next, s.currentID, s.preferences); err != nil {
		return nil, err
	}
	s.sessions = next
	session := next[i]
	return &session, nil
}

// Reset implements StoreService
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveLocked(ctx, nil, "", s.preferences); err != nil {
		return err
	}
	s.sessions = nil
	s.currentID = ""
	return nil
}

// Sessions implements StoreService
func (s *Store) Sessions() []models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Session implements StoreService
func (s *Store) Session(sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(sessionID)
	if i < 0 {
		return nil, apperrors.NotFound("session", sessionID)
	}
	session := s.sessions[i]
	return &session, nil
}

// Current implements StoreService
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLocked()
}

// CurrentID returns the current session id, empty when none
func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// Preferences implements StoreService
func (s *Store) Preferences() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferences
}

// SetPreferences implements StoreService
func (s *Store) SetPreferences(ctx context.Context, prefs models.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveLocked(ctx, s.sessions, s.currentID, prefs); err != nil {
		return err
	}
	s.preferences = prefs
	return nil
}

func (s *Store) currentLocked() *models.Session {
	i := s.indexOf(s.currentID)
	if i < 0 {
		return nil
	}
	session := s.sessions[i]
	return &session
}

func (s *Store) indexOf(sessionID string) int {
	if sessionID == "" {
		return -1
	}
	for i := range s.sessions {
		if s.sessions[i].ID == sessionID {
			return i
		}
	}
	return -1
}

func (s *Store) nextPosition() int {
	next := 0
	for _, session := range s.sessions {
		if session.Position >= next {
			next = session.Position + 1
		}
	}
	return next
}

// touch advances updated-at, never below created-at
func (s *Store) touch(session *models.Session) {
	now := s.clock.Now()
	if now.Before(session.CreatedAt) {
		now = session.CreatedAt
	}
	session.UpdatedAt = now
}

func (s *Store) cloneSessions() []models.Session {
	out := make([]models.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// saveLocked persists a staged state; the caller applies it only on success
func (s *Store) saveLocked(ctx context.Context, sessions []models.Session, currentID string, prefs models.Preferences) error {
	if s.persister == nil {
		return nil
	}

	snapshot := Snapshot{
		Sessions:    make([]models.Session, len(sessions)),
		CurrentID:   currentID,
		Preferences: prefs,
	}
	copy(snapshot.Sessions, sessions)

	if err := s.persister.Save(ctx, snapshot); err != nil {
		return apperrors.DatabaseError("save sessions", err)
	}
	return nil
}
