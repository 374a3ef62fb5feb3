package coordinator

import (
	"errors"
	"fmt"

	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/cocode-dev/cocode/pkg/logger"
	"github.com/cocode-dev/cocode/pkg/room"
)

// handleCreateRoom makes a new room. The creator is subscribed to the room
// at once and joins it either with the same request when it has
// the participant id or with the following join-room.
func (h *Hub) handleCreateRoom(u *User, rq api.CreateRoomRequest) error {
	if !u.CanStart() {
		return room.ErrStale
	}
	if prev := u.close(); prev.Active() {
		h.release(u, prev)
	}

	r := h.rooms.Create()
	roomsActive.Set(float64(h.rooms.Len()))
	rid := r.Id()
	log := u.log.Extend(u.log.With().Str(logger.RoomField, rid))

	err := r.Update(func(s *room.State) {
		s.Group.Subscribe(u)
		u.subscribe(rid)
		u.Notify(api.RoomCreated, api.RoomCreatedResponse{Room: api.Room{Rid: rid}})
		if rq.Pid == "" {
			return
		}
		s.Participants.Add(rq.Pid)
		u.associate(rid, rq.Pid, rq.Name)
		u.Notify(api.RoomJoined, api.RoomJoinedResponse{Room: api.Room{Rid: rid}, Ice: h.ice})
	})
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	log.Info().Str(logger.ParticipantField, rq.Pid).Msg("Room created")
	return nil
}

// handleJoinRoom adds the participant into an existing room.
// A repeated join of the same participant is answered as the first one.
// A connection is in one room at a time: the previous room is left
// only after the join has succeeded, and a new participant id
// in the same room replaces the old one.
func (h *Hub) handleJoinRoom(u *User, rq api.JoinRoomRequest) error {
	if rq.Rid == "" || rq.Pid == "" {
		return fmt.Errorf("%w: join needs roomId and participantId", api.ErrMalformed)
	}
	if !u.CanStart() {
		return room.ErrStale
	}

	prev := u.Session()
	swap := prev.State == Associated && prev.Rid == rq.Rid && prev.Pid != rq.Pid
	err := h.rooms.Join(rq.Rid, rq.Pid, func(s *room.State) {
		s.Group.Subscribe(u)
		if swap && s.Drop(prev.Pid) {
			h.departed(s, u, prev.Pid)
		}
		u.associate(rq.Rid, rq.Pid, rq.Name)
		u.Notify(api.RoomJoined, api.RoomJoinedResponse{Room: rq.Room, Ice: h.ice})
	})
	if errors.Is(err, room.ErrNotFound) {
		u.log.Debug().Str(logger.RoomField, rq.Rid).Msg("no room to join")
		u.Notify(api.RoomNotFound, rq.Room)
		return nil
	}
	if err != nil {
		return fmt.Errorf("join room: %w", err)
	}
	if prev.Active() && prev.Rid != rq.Rid {
		h.release(u, prev)
	}
	u.log.Info().Str(logger.RoomField, rq.Rid).Str(logger.ParticipantField, rq.Pid).Msg("Joined")
	return nil
}

// handleLeaveRoom ends the session of the connection in the room.
func (h *Hub) handleLeaveRoom(u *User, rq api.LeaveRoomRequest) error {
	s := u.Session()
	if !s.Owns(rq.Rid) || (rq.Pid != "" && rq.Pid != s.Pid) {
		return room.ErrStale
	}
	if prev := u.close(); prev.Active() {
		h.release(u, prev)
	}
	u.log.Info().Str(logger.RoomField, rq.Rid).Str(logger.ParticipantField, s.Pid).Msg("Left")
	return nil
}
