package sessions

import (
	"context"
	"sync"

	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

// EditorMode is the state of a transcript editing surface
type EditorMode string

const (
	ModeViewing EditorMode = "viewing"
	ModeEditing EditorMode = "editing"
)

// EditorState is a snapshot of the editor
type EditorState struct {
	Mode    EditorMode `json:"mode"`
	Scratch string     `json:"scratch,omitempty"`
}

// Editor is the Viewing/Editing state machine. Edits go to a scratch copy
// and reach the store only on Save.
type Editor struct {
	mu      sync.Mutex
	store   StoreService
	mode    EditorMode
	scratch string
}

// NewEditor creates an editor in Viewing mode
func NewEditor(store StoreService) *Editor {
	return &Editor{store: store, mode: ModeViewing}
}

// Edit enters Editing with a scratch copy of the current transcript.
// Already editing is a no-op that keeps the scratch.
func (e *Editor) Edit() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode != ModeEditing {
		e.mode = ModeEditing
		e.scratch = e.store.Transcript()
	}
	return e.stateLocked()
}

// Update replaces the scratch text; only valid while editing
func (e *Editor) Update(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode != ModeEditing {
		return apperrors.ValidationError("mode", "editor is not in editing mode")
	}
	e.scratch = text
	return nil
}

// Save writes the scratch to the store, commits it to the current session
// if there is one, and returns to Viewing
func (e *Editor) Save(ctx context.Context) (EditorState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode != ModeEditing {
		return e.stateLocked(), nil
	}

	e.store.SetTranscript(e.scratch)
	if current := e.store.Current(); current != nil {
		if _, err := e.store.CommitToSession(ctx, current.ID, e.scratch); err != nil {
			return e.stateLocked(), err
		}
	}

	e.mode = ModeViewing
	e.scratch = ""
	return e.stateLocked(), nil
}

// Cancel discards the scratch and returns to Viewing
func (e *Editor) Cancel() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.mode = ModeViewing
	e.scratch = ""
	return e.stateLocked()
}

// State returns the current mode and scratch text
func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Editor) stateLocked() EditorState {
	return EditorState{Mode: e.mode, Scratch: e.scratch}
}
