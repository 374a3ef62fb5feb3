package coordinator

import (
	"testing"

	"github.com/cocode-dev/cocode/pkg/logger"
)

func TestSession(t *testing.T) {
	tests := []struct {
		name   string
		s      Session
		active bool
		owns   bool
	}{
		{name: "new", s: Session{}},
		{name: "subscribed", s: Session{State: Subscribed, Rid: "r"}, active: true, owns: true},
		{name: "associated", s: Session{State: Associated, Rid: "r", Pid: "p"}, active: true, owns: true},
		{name: "other room", s: Session{State: Associated, Rid: "x", Pid: "p"}, active: true},
		{name: "closed", s: Session{State: Closed, Rid: "r", Pid: "p"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.s.Active(); got != test.active {
				t.Errorf("active %v, expected %v", got, test.active)
			}
			if got := test.s.Owns("r"); got != test.owns {
				t.Errorf("owns %v, expected %v", got, test.owns)
			}
		})
	}
	if (Session{}).Owns("") {
		t.Errorf("empty room id is owned")
	}
}

func TestUserSessionTransitions(t *testing.T) {
	u := NewUser(&fakeConn{}, logger.Nop())
	if !u.CanStart() || u.Session().State != Unassociated {
		t.Fatalf("wrong new user")
	}
	u.subscribe("r")
	u.associate("r", "p", "ann")
	if prev := u.close(); prev.State != Associated || prev.Pid != "p" {
		t.Errorf("close returned %+v", prev)
	}
	if s := u.Session(); s.State != Closed || !u.CanStart() {
		t.Errorf("explicit close should allow a new session, %+v", s)
	}
	if prev := u.close(); prev.Active() {
		t.Errorf("second close returned an active session")
	}
	u.terminate()
	if u.CanStart() {
		t.Errorf("terminated user can start")
	}
}
