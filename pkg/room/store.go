package room

import (
	"sync"

	"github.com/gofrs/uuid"
)

// Store keeps all the rooms of the process in memory.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	newId func() string
}

// Info is a short summary of a room.
type Info struct {
	Id           string `json:"roomId"`
	Participants int    `json:"participants"`
	Objects      int    `json:"objects"`
}

func NewStore() *Store { return &Store{rooms: make(map[string]*Room), newId: newRoomId} }

func newRoomId() string { return uuid.Must(uuid.NewV4()).String() }

// Create makes a new empty room.
func (s *Store) Create() *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newId()
	for s.rooms[id] != nil {
		id = s.newId()
	}
	r := newRoom(id)
	s.rooms[id] = r
	return r
}

func (s *Store) Find(id string) (*Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.rooms[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

// Update runs fn with the state of the room with the id.
func (s *Store) Update(id string, fn func(s *State)) error {
	r, err := s.Find(id)
	if err != nil {
		return err
	}
	return r.Update(fn)
}

// Join adds the participant into the room, a repeated join does nothing.
// The fn callback runs right after under the same room lock.
func (s *Store) Join(id, pid string, fn func(s *State)) error {
	return s.Update(id, func(st *State) {
		st.Participants.Add(pid)
		if fn != nil {
			fn(st)
		}
	})
}

// Leave removes the participant and its cursor from the room.
// The fn callback runs under the same room lock and gets whether
// the participant has been there. The room is deleted when
// no participants left.
func (s *Store) Leave(id, pid string, fn func(s *State, left bool)) (deleted bool, err error) {
	r, err := s.Find(id)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false, ErrNotFound
	}
	left := r.state.Drop(pid)
	if fn != nil {
		fn(&r.state, left)
	}
	if r.state.Participants.Len() == 0 {
		r.closed = true
		deleted = true
	}
	r.mu.Unlock()

	if deleted {
		s.mu.Lock()
		if s.rooms[id] == r {
			delete(s.rooms, id)
		}
		s.mu.Unlock()
	}
	return deleted, nil
}

// Info returns a summary of the room.
func (s *Store) Info(id string) (info Info, err error) {
	err = s.Update(id, func(st *State) {
		info = Info{Id: id, Participants: st.Participants.Len(), Objects: st.Canvas.Len()}
	})
	return
}

func (s *Store) Len() int { s.mu.RLock(); defer s.mu.RUnlock(); return len(s.rooms) }
