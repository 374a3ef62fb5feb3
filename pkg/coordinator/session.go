package coordinator

// State is a connection state within the session protocol.
//
//	Unassociated ──create──> Subscribed ──join──> Associated
//	     │                                           │
//	     └──────────────────join─────────────────────┤
//	                                                 │ leave, disconnect
//	                                               Closed
//
// Subscribed is a connection that created a room but hasn't
// joined it as a participant yet, it already gets the room broadcasts.
// Closed after an explicit leave may start over with create or join,
// a closed transport can't.
type State uint8

const (
	Unassociated State = iota
	Subscribed
	Associated
	Closed
)

func (s State) String() string {
	switch s {
	case Unassociated:
		return "unassociated"
	case Subscribed:
		return "subscribed"
	case Associated:
		return "associated"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the association of a connection with a room.
type Session struct {
	State State
	Rid   string
	Pid   string
	Name  string
}

// Active means the connection is in the room broadcast group.
func (s Session) Active() bool { return s.State == Subscribed || s.State == Associated }

// Owns reports whether the connection may send room events for rid.
func (s Session) Owns(rid string) bool { return rid != "" && s.Active() && s.Rid == rid }
