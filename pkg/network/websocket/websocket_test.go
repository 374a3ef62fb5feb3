package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cocode-dev/cocode/pkg/logger"
	"github.com/gorilla/websocket"
)

func newEchoServer(t *testing.T, opts Options) (*httptest.Server, chan *WS) {
	t.Helper()
	conns := make(chan *WS, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := DefaultUpgrader.NewServer(w, r, opts, logger.Nop())
		if err != nil {
			t.Errorf("no socket, %v", err)
			return
		}
		ws.SetMessageHandler(func(m []byte, _ error) { ws.Write(m) })
		ws.Listen()
		conns <- ws
	}))
	t.Cleanup(srv.Close)
	return srv, conns
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	addr := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		t.Fatalf("couldn't connect to %v because of %v", addr, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestEcho(t *testing.T) {
	srv, _ := newEchoServer(t, Options{})
	c := dial(t, srv)

	for _, m := range []string{"a", `{"t":"x"}`, strings.Repeat("z", 4096)} {
		if err := c.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
			t.Fatal(err)
		}
		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, got, err := c.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != m {
			t.Errorf("expected %q, got %q", m, got)
		}
	}
}

func TestServerCloseEndsListen(t *testing.T) {
	srv, conns := newEchoServer(t, Options{})
	_ = dial(t, srv)
	ws := <-conns

	ws.Close()
	ws.Close()
	select {
	case <-ws.Done:
	case <-time.After(3 * time.Second):
		t.Fatal("connection didn't stop")
	}
	if ws.Write([]byte("late")) {
		t.Errorf("write after close should fail")
	}
}

func TestClientDisconnectEndsListen(t *testing.T) {
	srv, conns := newEchoServer(t, Options{})
	c := dial(t, srv)
	ws := <-conns

	_ = c.Close()
	select {
	case <-ws.Done:
	case <-time.After(3 * time.Second):
		t.Fatal("server didn't notice the disconnect")
	}
}

func TestSlowPeerOverflow(t *testing.T) {
	conn := NewServerWithConn(nil, Options{SendQueue: 2}, logger.Nop())
	// pumps aren't running, so the queue just fills up
	if !conn.Write([]byte("1")) || !conn.Write([]byte("2")) {
		t.Fatal("queue should accept two messages")
	}
	if conn.Write([]byte("3")) {
		t.Errorf("overflow should be rejected")
	}
	select {
	case <-conn.closing:
	default:
		t.Errorf("slow connection should be closed")
	}
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		allowed []string
		origin  string
		ok      bool
	}{
		{allowed: nil, origin: "http://evil.com", ok: true},
		{allowed: []string{"*"}, origin: "http://evil.com", ok: true},
		{allowed: []string{"http://localhost:5173/"}, origin: "http://localhost:5173", ok: true},
		{allowed: []string{"http://localhost:5173"}, origin: "http://evil.com", ok: false},
		{allowed: []string{"http://localhost:5173"}, origin: "", ok: true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := NewUpgrader(tt.allowed...).CheckOrigin(r); got != tt.ok {
			t.Errorf("%v with %q: expected %v, got %v", tt.allowed, tt.origin, tt.ok, got)
		}
	}
}
