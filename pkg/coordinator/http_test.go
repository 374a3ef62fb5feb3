package coordinator

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/cocode-dev/cocode/pkg/logger"
	"github.com/cocode-dev/cocode/pkg/room"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type client struct {
	t    *testing.T
	conn *websocket.Conn
}

func newTestServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(Router(h, logger.Nop(), nil))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *client {
	t.Helper()
	addr := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		t.Fatalf("couldn't connect to %v because of %v", addr, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return &client{t: t, conn: c}
}

func (c *client) send(pt api.PT, payload any) {
	c.t.Helper()
	data, err := api.Encode(pt, payload)
	if err != nil {
		c.t.Fatal(err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.t.Fatal(err)
	}
}

// expect reads packets until one of the type pt.
func (c *client) expect(pt api.PT, v any) {
	c.t.Helper()
	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.t.Fatalf("no %v: %v", pt, err)
		}
		var p packet
		if err := json.Unmarshal(data, &p); err != nil {
			c.t.Fatal(err)
		}
		if p.T != pt {
			continue
		}
		if v != nil {
			if err := json.Unmarshal(p.P, v); err != nil {
				c.t.Fatal(err)
			}
		}
		return
	}
}

func TestWebsocketSession(t *testing.T) {
	h := newTestHub()
	srv := newTestServer(t, h)
	a, b := dial(t, srv), dial(t, srv)

	var created api.RoomCreatedResponse
	a.send(api.CreateRoom, nil)
	a.expect(api.RoomCreated, &created)
	a.send(api.JoinRoom, api.JoinRoomRequest{RoomParticipant: rp(created.Rid, "a"), Name: "ann"})
	a.expect(api.RoomJoined, nil)

	b.send(api.JoinRoom, api.JoinRoomRequest{RoomParticipant: rp(created.Rid, "b"), Name: "bob"})
	b.expect(api.RoomJoined, nil)

	a.send(api.CodeChange, api.CodeChangeRequest{
		Room: api.Room{Rid: created.Rid}, Code: "x = 1", Changes: json.RawMessage(`[1]`)})
	var code api.UpdateCodeResponse
	b.expect(api.UpdateCode, &code)
	if string(code.Changes) != `[1]` {
		t.Errorf("wrong changes %s", code.Changes)
	}

	b.send(api.EditorReady, rp(created.Rid, "b"))
	var snap api.SyncEditorResponse
	b.expect(api.SyncEditor, &snap)
	if snap.Code == nil || *snap.Code != "x = 1" {
		t.Errorf("wrong code %v", snap.Code)
	}

	_ = a.conn.Close()
	var left api.PeerLeftResponse
	b.expect(api.PeerLeft, &left)
	if left.Pid != "a" {
		t.Errorf("wrong peer left %v", left.Pid)
	}
	b.expect(api.UserLeft, nil)

	_ = b.conn.Close()
	deadline := time.Now().Add(3 * time.Second)
	for h.rooms.Len() > 0 || h.crowd.Len() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("rooms %v and users %v are still there", h.rooms.Len(), h.crowd.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRoutes(t *testing.T) {
	h := newTestHub()
	srv := newTestServer(t, h)
	r := h.rooms.Create()
	_ = h.rooms.Join(r.Id(), "p", nil)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/healthz", status: http.StatusOK, body: "ok"},
		{path: "/api/rooms/" + r.Id(), status: http.StatusOK,
			body: `{"roomId":"` + r.Id() + `","participants":1,"objects":0}`},
		{path: "/api/rooms/nope", status: http.StatusNotFound, body: room.ErrNotFound.Error()},
		{path: "/nope", status: http.StatusNotFound},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + test.path)
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = resp.Body.Close() }()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != test.status {
				t.Errorf("status %v, expected %v", resp.StatusCode, test.status)
			}
			if test.body != "" && strings.TrimSpace(string(body)) != test.body {
				t.Errorf("body %q, expected %q", body, test.body)
			}
		})
	}
}
