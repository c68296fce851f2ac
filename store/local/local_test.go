package local

import (
	"fmt"
	"testing"
	"time"
)

func TestGetExpiresAtBoundary(t *testing.T) {
	s := New(Config{TTL: 10 * time.Second, MaxEntries: 4})
	t0 := time.Unix(1700000000, 0)

	s.Set("k", []byte("v"), t0)

	if v, ok := s.Get("k", t0.Add(9*time.Second)); !ok || string(v) != "v" {
		t.Fatalf("entry younger than TTL should hit, ok=%v v=%q", ok, v)
	}
	if _, ok := s.Get("k", t0.Add(10*time.Second)); ok {
		t.Fatalf("entry exactly TTL old must be expired")
	}
	if s.Len() != 0 {
		t.Fatalf("lazy expiry should remove the entry, len=%d", s.Len())
	}
}

func TestEvictsOldestInsertion(t *testing.T) {
	var evicted []string
	s := New(Config{
		TTL:        time.Hour,
		MaxEntries: 2,
		OnEvict:    func(k string) { evicted = append(evicted, k) },
	})
	t0 := time.Unix(1700000000, 0)

	s.Set("a", []byte("A"), t0)
	s.Set("b", []byte("B"), t0.Add(time.Second))
	s.Set("c", []byte("C"), t0.Add(2*time.Second))

	now := t0.Add(3 * time.Second)
	if _, ok := s.Get("a", now); ok {
		t.Fatalf("oldest insertion should have been evicted")
	}
	if _, ok := s.Get("b", now); !ok {
		t.Fatalf("b should survive")
	}
	if _, ok := s.Get("c", now); !ok {
		t.Fatalf("c should survive")
	}
	if s.Len() != 2 {
		t.Fatalf("capacity must hold after overflow, len=%d", s.Len())
	}
	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("expected eviction callback for a, got %v", evicted)
	}
}

// Reads do not refresh insertion time: an entry read constantly is still
// the eviction victim if it was written first.
func TestReadsDoNotRefreshRecency(t *testing.T) {
	s := New(Config{TTL: time.Hour, MaxEntries: 2})
	t0 := time.Unix(1700000000, 0)

	s.Set("hot", []byte("H"), t0)
	s.Set("cold", []byte("C"), t0.Add(time.Second))
	for i := 0; i < 10; i++ {
		s.Get("hot", t0.Add(2*time.Second))
	}
	s.Set("new", []byte("N"), t0.Add(3*time.Second))

	if _, ok := s.Get("hot", t0.Add(4*time.Second)); ok {
		t.Fatalf("frequently-read oldest write must still be evicted")
	}
	if _, ok := s.Get("cold", t0.Add(4*time.Second)); !ok {
		t.Fatalf("cold should survive")
	}
}

func TestOverwriteKeepsSingleEntry(t *testing.T) {
	s := New(Config{TTL: time.Hour, MaxEntries: 4})
	t0 := time.Unix(1700000000, 0)

	s.Set("k", []byte("v1"), t0)
	s.Set("k", []byte("v2"), t0.Add(time.Second))

	if v, ok := s.Get("k", t0.Add(2*time.Second)); !ok || string(v) != "v2" {
		t.Fatalf("overwrite should return the newest value, ok=%v v=%q", ok, v)
	}
	if s.Len() != 1 {
		t.Fatalf("overwrite must not grow the store, len=%d", s.Len())
	}
}

func TestOverwriteRefreshesExpiry(t *testing.T) {
	s := New(Config{TTL: 10 * time.Second, MaxEntries: 4})
	t0 := time.Unix(1700000000, 0)

	s.Set("k", []byte("v1"), t0)
	s.Set("k", []byte("v2"), t0.Add(8*time.Second))

	// 12s after the first write, 4s after the second: still live.
	if _, ok := s.Get("k", t0.Add(12*time.Second)); !ok {
		t.Fatalf("rewrite should restart the TTL window")
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := New(Config{TTL: time.Hour, MaxEntries: 8})
	t0 := time.Unix(1700000000, 0)

	for i := 0; i < 4; i++ {
		s.Set(fmt.Sprintf("k%d", i), []byte("v"), t0)
	}
	s.Delete("k0")
	if s.Len() != 3 {
		t.Fatalf("delete should shrink the store, len=%d", s.Len())
	}
	s.Delete("missing") // no-op

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("clear should drop everything, len=%d", s.Len())
	}
}

func TestExpireCallback(t *testing.T) {
	var expired []string
	s := New(Config{
		TTL:        time.Second,
		MaxEntries: 4,
		OnExpire:   func(k string) { expired = append(expired, k) },
	})
	t0 := time.Unix(1700000000, 0)

	s.Set("k", []byte("v"), t0)
	s.Get("k", t0.Add(time.Second))

	if len(expired) != 1 || expired[0] != "k" {
		t.Fatalf("expected expire callback for k, got %v", expired)
	}
}
