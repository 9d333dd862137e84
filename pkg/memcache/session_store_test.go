package memcache

import (
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore[string](time.Minute)

	s.Set("a", "hello")

	got, ok := s.Get("a")
	if !ok {
		t.Fatalf("key missing")
	}
	if got != "hello" {
		t.Fatalf("got=%q want=hello", got)
	}

	if _, ok := s.Get("missing"); ok {
		t.Fatalf("unexpected hit for missing key")
	}
}

func TestStore_Expiry(t *testing.T) {
	s := NewStore[int](10 * time.Millisecond)

	s.Set("a", 1)
	time.Sleep(25 * time.Millisecond)

	if _, ok := s.Get("a"); ok {
		t.Fatalf("expired entry still readable")
	}
	if s.Len() != 0 {
		t.Fatalf("expired entry not cleaned up, len=%d", s.Len())
	}
}

func TestStore_TouchExtendsTTL(t *testing.T) {
	s := NewStore[int](40 * time.Millisecond)

	s.Set("a", 1)
	time.Sleep(25 * time.Millisecond)
	s.Touch("a")
	time.Sleep(25 * time.Millisecond)

	// 50ms since Set, but only 25ms since Touch.
	if _, ok := s.Get("a"); !ok {
		t.Fatalf("touched entry expired")
	}
}

func TestStore_Delete(t *testing.T) {
	s := NewStore[int](time.Minute)

	s.Set("a", 1)
	s.Set("b", 2)
	s.Delete("a")

	if _, ok := s.Get("a"); ok {
		t.Fatalf("deleted key still present")
	}
	if s.Len() != 1 {
		t.Fatalf("len=%d want=1", s.Len())
	}
}
