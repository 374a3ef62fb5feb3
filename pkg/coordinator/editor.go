package coordinator

import (
	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/cocode-dev/cocode/pkg/room"
)

// handleEditorReady sends the full editor state to a participant
// that has just opened the editor.
func (h *Hub) handleEditorReady(u *User, rq api.EditorReadyRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		snap, err := s.EditorSnapshot(rq.Pid)
		if err != nil {
			return err
		}
		u.Notify(api.SyncEditor, snap)
		return nil
	})
}

// handleCodeChange keeps the whole text and forwards only the changes.
func (h *Hub) handleCodeChange(u *User, rq api.CodeChangeRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		s.Editor.SetCode(rq.Code)
		return h.broadcast(s, u, api.UpdateCode, api.UpdateCodeResponse{Changes: rq.Changes})
	})
}

func (h *Hub) handleLanguageChange(u *User, rq api.LanguageChangeRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		s.Editor.SetLanguage(rq.Language)
		return h.broadcast(s, u, api.UpdateLanguage, api.UpdateLanguageResponse{Language: rq.Language})
	})
}

func (h *Hub) handleInputChange(u *User, rq api.InputChangeRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		s.Editor.SetInput(rq.Input)
		return h.broadcast(s, u, api.UpdateInput, api.UpdateInputResponse{Input: rq.Input})
	})
}

func (h *Hub) handleOutputChange(u *User, rq api.OutputChangeRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		s.Editor.SetOutput(rq.Output)
		return h.broadcast(s, u, api.UpdateOutput, api.UpdateOutputResponse{Output: rq.Output})
	})
}

// handleCursorChange moves the cursor of a room participant.
// Moves of a participant that has already left are dropped.
func (h *Hub) handleCursorChange(u *User, rq api.CursorChangeRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		if err := s.MoveCursor(rq.Pid, api.Cursor{Name: rq.Name, Position: rq.Position}); err != nil {
			return err
		}
		return h.broadcast(s, u, api.UpdateCursor,
			api.UpdateCursorResponse{Pid: rq.Pid, Name: rq.Name, Position: rq.Position})
	})
}

func (h *Hub) handleRemoveCursor(u *User, rq api.RemoveCursorRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		if err := s.DropCursor(rq.Pid); err != nil {
			return err
		}
		return h.broadcast(s, u, api.UserLeft, api.UserLeftResponse{Pid: rq.Pid})
	})
}
