package com

import (
	"sync"
	"sync/atomic"
	"testing"
)

type testClient struct {
	id Uid
	c  int32
}

func (t *testClient) change(n int) { atomic.AddInt32(&t.c, int32(n)) }

func TestPointerValue(t *testing.T) {
	m := NewMap[Uid, *testClient]()
	c := testClient{id: NewUid()}
	m.Put(c.id, &c)
	fc, _ := m.Find(c.id)
	c.change(100)
	fc2, _ := m.Find(c.id)

	if !(c.c == fc.c && c.c == fc2.c) {
		t.Errorf("not expected change, o: %v != %v != %v", c.c, fc.c, fc2.c)
	}
}

func TestFindEmptyKey(t *testing.T) {
	m := NewMap[string, int]()
	m.Put("", 1)
	if _, err := m.Find(""); err != ErrNotFound {
		t.Errorf("empty key should not be found, got %v", err)
	}
}

func TestPop(t *testing.T) {
	m := NewMap[string, int]()
	m.Put("a", 1)

	v, ok := m.Pop("a")
	if !ok || v != 1 {
		t.Fatalf("expected (1, true), got (%v, %v)", v, ok)
	}
	if _, ok = m.Pop("a"); ok {
		t.Errorf("second pop should miss")
	}
	if m.Len() != 0 {
		t.Errorf("map should be empty")
	}
}

func TestConcurrentPut(t *testing.T) {
	m := NewMap[Uid, int]()
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			m.Put(NewUid(), i)
		}()
	}
	wg.Wait()
	if m.Len() != n {
		t.Errorf("expected %v elements, got %v", n, m.Len())
	}
}

func TestUidShort(t *testing.T) {
	id := NewUid()
	s := id.Short()
	if len(s) != 7 || s[3] != '.' {
		t.Errorf("unexpected short form %q of %v", s, id)
	}
	if _, err := NewMap[Uid, int]().Find(Uid{}); err != ErrNotFound {
		t.Errorf("zero uid should not be found, got %v", err)
	}
}
