package room

import (
	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/cocode-dev/cocode/pkg/com"
)

// Sink is a connection subscribed to a room.
// Send must not block.
type Sink interface {
	Id() com.Uid
	Send(data []byte)
}

// Group is the broadcast group of a room.
type Group struct {
	members map[com.Uid]Sink
}

func newGroup() Group { return Group{members: make(map[com.Uid]Sink)} }

func (g *Group) Subscribe(s Sink)       { g.members[s.Id()] = s }
func (g *Group) Unsubscribe(id com.Uid) { delete(g.members, id) }

// Broadcast sends the packet to every member except the one with the from id.
// The packet is encoded once. Returns the number of receivers.
func (g *Group) Broadcast(from com.Uid, t api.PT, payload any) (int, error) {
	if len(g.members) == 0 {
		return 0, nil
	}
	data, err := api.Encode(t, payload)
	if err != nil {
		return 0, err
	}
	n := 0
	for id, s := range g.members {
		if id == from {
			continue
		}
		s.Send(data)
		n++
	}
	return n, nil
}
