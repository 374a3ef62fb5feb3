package service

import (
	"context"
	"errors"
	"testing"
)

type testService struct {
	name string
	err  error
	log  *[]string
}

func (t *testService) Run() { *t.log = append(*t.log, "run "+t.name) }
func (t *testService) Shutdown(context.Context) error {
	*t.log = append(*t.log, "stop "+t.name)
	return t.err
}
func (t *testService) String() string { return t.name }

// stopOnly is served by someone else and only needs the shutdown.
type stopOnly struct {
	name string
	log  *[]string
}

func (s stopOnly) Shutdown(context.Context) error {
	*s.log = append(*s.log, "stop "+s.name)
	return nil
}

func TestGroup(t *testing.T) {
	var log []string
	boom := errors.New("boom")

	g := Group{}
	g.Add(&testService{name: "a", log: &log}, "not a service")
	g.Add(stopOnly{name: "hub", log: &log})
	g.Add(&testService{name: "b", err: boom, log: &log})
	g.Add(&testService{name: "c", err: context.Canceled, log: &log})

	g.Start()
	err := g.Shutdown(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected the boom error, got %v", err)
	}

	want := []string{"run a", "run b", "run c", "stop c", "stop b", "stop hub", "stop a"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("expected %v, got %v", want, log)
			break
		}
	}
}
