// Package api defines the wire protocol between browser clients and the coordinator.
//
// Each message is a JSON-encoded "packet" of the following structure:
//
//	t - (required) one of the predefined event names;
//	p - (optional) packet payload with arbitrary data.
//
// Packets differentiate by their event names with which it is possible
// to unwrap the payload into distinct request/response data structures.
//
// Example:
//
//	{"t":"join-room","p":{"roomId":"0b3c...","participantId":"4e1f...","name":"ann"}}
package api

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

type (
	// PT is a packet type, the name of an event.
	PT string
	// Room is embedded into every request that targets a room.
	Room struct {
		Rid string `json:"roomId"`
	}
	// RoomParticipant addresses one participant of a room.
	RoomParticipant struct {
		Room
		Pid string `json:"participantId"`
	}
)

type In struct {
	T       PT              `json:"t"`
	Payload json.RawMessage `json:"p,omitempty"` // RawMessage for 2-pass unmarshal
}

type Out struct {
	T       PT  `json:"t"`
	Payload any `json:"p,omitempty"`
}

// Client to server.
const (
	CreateRoom     PT = "create-room"
	JoinRoom       PT = "join-room"
	LeaveRoom      PT = "leave-room"
	EditorReady    PT = "editor-ready"
	CodeChange     PT = "code-change"
	LanguageChange PT = "language-change"
	InputChange    PT = "input-change"
	OutputChange   PT = "output-change"
	CursorChange   PT = "cursor-change"
	RemoveCursor   PT = "remove-cursor"
	CanvasReady    PT = "canvas-ready"
	ObjectAdded    PT = "object-added"
	ObjectModified PT = "object-modified"
	ObjectRemoved  PT = "object-removed"
	CanvasCleared  PT = "canvas-cleared"
	MediaReady     PT = "media-ready"
	MediaToggle    PT = "media-toggle"
)

// Server to client.
const (
	RoomCreated    PT = "room-created"
	RoomJoined     PT = "room-joined"
	RoomNotFound   PT = "room-not-found"
	SyncEditor     PT = "sync-editor"
	UpdateCode     PT = "update-code"
	UpdateLanguage PT = "update-language"
	UpdateInput    PT = "update-input"
	UpdateOutput   PT = "update-output"
	UpdateCursor   PT = "update-cursor"
	UserLeft       PT = "user-left"
	SyncCanvas     PT = "sync-canvas"
	AddObject      PT = "add-object"
	UpdateObject   PT = "update-object"
	RemoveObject   PT = "remove-object"
	ClearCanvas    PT = "clear-canvas"
	PeerJoined     PT = "peer-joined"
	UpdateMedia    PT = "update-media"
	PeerLeft       PT = "peer-left"
	Error          PT = "error"
)

func (p PT) String() string { return string(p) }

// IsKnown reports whether p is one of the client events.
func (p PT) IsKnown() bool {
	switch p {
	case CreateRoom, JoinRoom, LeaveRoom,
		EditorReady, CodeChange, LanguageChange, InputChange, OutputChange, CursorChange, RemoveCursor,
		CanvasReady, ObjectAdded, ObjectModified, ObjectRemoved, CanvasCleared,
		MediaReady, MediaToggle:
		return true
	}
	return false
}

var (
	ErrMalformed = errors.New("malformed")
	ErrUnknown   = errors.New("unknown packet type")
)

// Decode reads one inbound packet.
func Decode(data []byte) (In, error) {
	var in In
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !in.T.IsKnown() {
		return in, fmt.Errorf("%w: %q", ErrUnknown, in.T)
	}
	return in, nil
}

// Encode writes one outbound packet.
func Encode(t PT, payload any) ([]byte, error) { return json.Marshal(Out{T: t, Payload: payload}) }

// UnwrapChecked unwraps the payload and returns ErrMalformed
// when it can't be decoded.
func UnwrapChecked[T any](data []byte) (*T, error) {
	out := new(T)
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}
