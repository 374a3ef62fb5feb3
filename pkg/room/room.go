package room

import (
	"sync"

	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/goccy/go-json"
)

// Room is an isolated collaboration session.
// All the state is accessed through Update which serializes
// every change made to the same room.
type Room struct {
	id     string
	mu     sync.Mutex
	state  State
	closed bool
}

// State is the shared state of a room.
type State struct {
	Participants Roster
	Editor       EditorState
	Canvas       CanvasState
	Group        Group
}

func newRoom(id string) *Room {
	return &Room{id: id, state: State{Editor: newEditor(), Canvas: newCanvas(), Group: newGroup()}}
}

func (r *Room) Id() string { return r.id }

// Update runs fn under the room lock.
// Returns ErrNotFound when the room was removed from the store.
func (r *Room) Update(fn func(s *State)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrNotFound
	}
	fn(&r.state)
	return nil
}

// Drop removes the participant along with its cursor.
// Reports whether the participant has been there.
func (s *State) Drop(pid string) bool {
	if !s.Participants.Remove(pid) {
		return false
	}
	s.Editor.RemoveCursor(pid)
	return true
}

// IsMember reports whether pid is a current participant.
func (s *State) IsMember(pid string) bool { return s.Participants.Has(pid) }

// MoveCursor upserts the cursor of a current participant.
func (s *State) MoveCursor(pid string, c api.Cursor) error {
	if !s.IsMember(pid) {
		return ErrStale
	}
	s.Editor.SetCursor(pid, c)
	return nil
}

// DropCursor removes the cursor of a current participant.
func (s *State) DropCursor(pid string) error {
	if !s.IsMember(pid) {
		return ErrStale
	}
	s.Editor.RemoveCursor(pid)
	return nil
}

// EditorSnapshot returns the editor state for a current participant.
func (s *State) EditorSnapshot(pid string) (api.SyncEditorResponse, error) {
	if !s.IsMember(pid) {
		return api.SyncEditorResponse{}, ErrStale
	}
	return s.Editor.Snapshot(), nil
}

// CanvasSnapshot returns all the canvas objects for a current participant.
func (s *State) CanvasSnapshot(pid string) ([]json.RawMessage, error) {
	if !s.IsMember(pid) {
		return nil, ErrStale
	}
	return s.Canvas.Objects(), nil
}
