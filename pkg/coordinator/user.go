package coordinator

import (
	"sync"

	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/cocode-dev/cocode/pkg/com"
	"github.com/cocode-dev/cocode/pkg/logger"
)

// transport is the user network connection.
type transport interface {
	Write(data []byte) bool
	Close()
}

// User is a browser connection.
type User struct {
	id   com.Uid
	conn transport
	log  *logger.Logger

	mu   sync.Mutex
	sess Session
	gone bool
}

func NewUser(conn transport, log *logger.Logger) *User {
	id := com.NewUid()
	return &User{
		id:   id,
		conn: conn,
		log:  log.Extend(log.With().Str(logger.ConnField, id.Short())),
	}
}

func (u *User) Id() com.Uid    { return u.id }
func (u *User) String() string { return u.id.String() }

// Send puts already encoded data into the connection queue.
func (u *User) Send(data []byte) { u.conn.Write(data) }

// Notify sends a packet to the user without waiting.
func (u *User) Notify(t api.PT, payload any) {
	data, err := api.Encode(t, payload)
	if err != nil {
		u.log.Error().Err(err).Str("t", t.String()).Msg("couldn't encode")
		return
	}
	u.log.Debug().Str(logger.DirectionField, "→").Msg(t.String())
	u.Send(data)
}

func (u *User) Disconnect() { u.conn.Close() }

func (u *User) Session() Session { u.mu.Lock(); defer u.mu.Unlock(); return u.sess }

// CanStart reports whether the connection may create or join a room.
func (u *User) CanStart() bool { u.mu.Lock(); defer u.mu.Unlock(); return !u.gone }

func (u *User) subscribe(rid string) {
	u.mu.Lock()
	u.sess = Session{State: Subscribed, Rid: rid}
	u.mu.Unlock()
}

func (u *User) associate(rid, pid, name string) {
	u.mu.Lock()
	u.sess = Session{State: Associated, Rid: rid, Pid: pid, Name: name}
	u.mu.Unlock()
}

// close ends the session and returns the one it was.
func (u *User) close() Session {
	u.mu.Lock()
	defer u.mu.Unlock()
	prev := u.sess
	if prev.Active() {
		u.sess = Session{State: Closed, Rid: prev.Rid, Pid: prev.Pid}
	}
	return prev
}

// terminate is close for the gone transport.
func (u *User) terminate() Session {
	u.mu.Lock()
	u.gone = true
	u.mu.Unlock()
	return u.close()
}
