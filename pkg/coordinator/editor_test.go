package coordinator

import (
	"testing"

	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/goccy/go-json"
)

func TestEditorChanges(t *testing.T) {
	h := newTestHub()
	rid, a, b, ac, bc := pair(t, h)
	room := api.Room{Rid: rid}

	send(t, h, a, api.CodeChange, api.CodeChangeRequest{
		Room: room, Code: "print(1)", Changes: json.RawMessage(`[{"text":"print(1)"}]`)})
	send(t, h, a, api.LanguageChange, api.LanguageChangeRequest{Room: room, Language: "python"})
	send(t, h, b, api.InputChange, api.InputChangeRequest{Room: room, Input: "42"})
	send(t, h, b, api.OutputChange, api.OutputChangeRequest{Room: room, Output: "1"})

	if got := bc.types(); !equalTypes(got, []api.PT{api.UpdateCode, api.UpdateLanguage}) {
		t.Errorf("b got %v", got)
	}
	if got := ac.types(); !equalTypes(got, []api.PT{api.UpdateInput, api.UpdateOutput}) {
		t.Errorf("a got %v", got)
	}
	if got := last[api.UpdateCodeResponse](t, bc, api.UpdateCode); string(got.Changes) != `[{"text":"print(1)"}]` {
		t.Errorf("changes aren't forwarded as is, %s", got.Changes)
	}
	if got := last[api.UpdateLanguageResponse](t, bc, api.UpdateLanguage); got.Language != "python" {
		t.Errorf("wrong language %v", got.Language)
	}

	c, cc := connect(h)
	send(t, h, c, api.JoinRoom, api.JoinRoomRequest{RoomParticipant: rp(rid, "c")})
	send(t, h, c, api.EditorReady, rp(rid, "c"))
	snap := last[api.SyncEditorResponse](t, cc, api.SyncEditor)
	if snap.Code == nil || *snap.Code != "print(1)" || snap.Language != "python" ||
		snap.Input != "42" || snap.Output != "1" {
		t.Errorf("late joiner got a wrong editor, %+v", snap)
	}
	if got := last[api.SyncEditorResponse](t, cc, api.SyncEditor); got.Cursors == nil {
		t.Errorf("cursors should be an empty object")
	}
	for _, f := range []*fakeConn{ac, bc} {
		for _, pt := range f.types() {
			if pt == api.SyncEditor {
				t.Errorf("sync-editor went to someone else")
			}
		}
	}
}

func TestCursors(t *testing.T) {
	h := newTestHub()
	rid, a, b, _, bc := pair(t, h)
	pos := api.Position{LineNumber: 3, Column: 7}

	send(t, h, a, api.CursorChange, api.CursorChangeRequest{RoomParticipant: rp(rid, "a"), Name: "ann", Position: pos})
	got := last[api.UpdateCursorResponse](t, bc, api.UpdateCursor)
	if got.Pid != "a" || got.Name != "ann" || got.Position != pos {
		t.Errorf("wrong cursor update %+v", got)
	}

	t.Run("remove then move", func(t *testing.T) {
		send(t, h, a, api.RemoveCursor, rp(rid, "a"))
		if left := last[api.UserLeftResponse](t, bc, api.UserLeft); left.Pid != "a" {
			t.Errorf("wrong user left %v", left.Pid)
		}
		send(t, h, a, api.CursorChange, api.CursorChangeRequest{RoomParticipant: rp(rid, "a"), Name: "ann"})

		send(t, h, b, api.EditorReady, rp(rid, "b"))
		cursors := last[api.SyncEditorResponse](t, bc, api.SyncEditor).Cursors
		if len(cursors) != 1 {
			t.Errorf("expected exactly one cursor, got %v", cursors)
		}
		if c, ok := cursors["a"]; !ok || c.Position != (api.Position{}) {
			t.Errorf("expected the last cursor of a, got %+v", cursors)
		}
	})

	t.Run("of non-members", func(t *testing.T) {
		bc.reset()
		send(t, h, a, api.RemoveCursor, rp(rid, "ghost"))
		send(t, h, a, api.CursorChange, api.CursorChangeRequest{RoomParticipant: rp(rid, "ghost")})
		if len(bc.packets()) > 0 {
			t.Errorf("cursor events of a non-member are forwarded, %v", bc.types())
		}
	})
}
