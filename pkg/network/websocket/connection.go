package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// deadlinedConn is a websocket connection with the write deadline.
type deadlinedConn struct {
	sock *websocket.Conn
	wt   time.Duration
	once sync.Once
}

func (conn *deadlinedConn) setup(fn func(conn *websocket.Conn)) { fn(conn.sock) }

func (conn *deadlinedConn) close() (err error) {
	conn.once.Do(func() { err = conn.sock.Close() })
	return
}

func (conn *deadlinedConn) read() (message []byte, err error) {
	_, message, err = conn.sock.ReadMessage()
	return
}

func (conn *deadlinedConn) write(t int, mess []byte) error {
	if err := conn.sock.SetWriteDeadline(time.Now().Add(conn.wt)); err != nil {
		return err
	}
	return conn.sock.WriteMessage(t, mess)
}
