package coordinator

import (
	"fmt"

	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/cocode-dev/cocode/pkg/room"
)

// Media signaling only relays peer metadata,
// the media goes directly between the browsers.

func (h *Hub) handleMediaReady(u *User, rq api.MediaReadyRequest) error {
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		if !s.IsMember(rq.Pid) {
			return room.ErrStale
		}
		return h.broadcast(s, u, api.PeerJoined, api.PeerJoinedResponse{
			Pid:          rq.Pid,
			Name:         rq.Name,
			VideoEnabled: rq.VideoEnabled,
			AudioEnabled: rq.AudioEnabled,
		})
	})
}

func (h *Hub) handleMediaToggle(u *User, rq api.MediaToggleRequest) error {
	if !rq.Kind.IsValid() {
		return fmt.Errorf("%w: media kind %q", api.ErrMalformed, rq.Kind)
	}
	return h.inRoom(u, rq.Rid, func(s *room.State) error {
		if !s.IsMember(rq.Pid) {
			return room.ErrStale
		}
		return h.broadcast(s, u, api.UpdateMedia,
			api.UpdateMediaResponse{Pid: rq.Pid, Kind: rq.Kind, Enabled: rq.Enabled})
	})
}
