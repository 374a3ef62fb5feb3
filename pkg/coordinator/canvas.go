package coordinator

import (
	"fmt"

	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/cocode-dev/cocode/pkg/room"
)

func (h *Hub) handleCanvasReady(u *User, rq api.CanvasReadyRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		objects, err := s.CanvasSnapshot(rq.Pid)
		if err != nil {
			return err
		}
		u.Notify(api.SyncCanvas, api.SyncCanvasResponse{AllObjects: objects})
		return nil
	})
}

func (h *Hub) handleObjectAdded(u *User, rq api.ObjectRequest) error {
	o, err := canvasObject(rq)
	if err != nil {
		return err
	}
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		s.Canvas.Add(o)
		return h.broadcast(s, u, api.AddObject, api.ObjectResponse{ObjectData: o.Data})
	})
}

// handleObjectModified changes only the objects the room already has,
// otherwise the change is dropped without a broadcast.
func (h *Hub) handleObjectModified(u *User, rq api.ObjectRequest) error {
	o, err := canvasObject(rq)
	if err != nil {
		return err
	}
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		if !s.Canvas.Modify(o) {
			return fmt.Errorf("object %q: %w", o.Id, room.ErrStale)
		}
		return h.broadcast(s, u, api.UpdateObject, api.ObjectResponse{ObjectData: o.Data})
	})
}

// handleObjectRemoved forwards the removal even for unknown objects.
func (h *Hub) handleObjectRemoved(u *User, rq api.ObjectRequest) error {
	o, err := canvasObject(rq)
	if err != nil {
		return err
	}
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		s.Canvas.Remove(o.Id)
		return h.broadcast(s, u, api.RemoveObject, api.ObjectResponse{ObjectData: o.Data})
	})
}

func (h *Hub) handleCanvasCleared(u *User, rq api.CanvasClearedRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		s.Canvas.Clear()
		return h.broadcast(s, u, api.ClearCanvas, nil)
	})
}

func canvasObject(rq api.ObjectRequest) (room.Object, error) {
	o, err := room.ParseObject(rq.Object)
	if err != nil {
		return o, fmt.Errorf("%w: %v", api.ErrMalformed, err)
	}
	return o, nil
}
