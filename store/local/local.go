// Package local implements the default in-process tier: a bounded map with
// insertion timestamps, lazy TTL expiry on read, and oldest-insertion
// eviction on write.
//
// Eviction is FIFO-by-write, not true LRU: reads do not refresh an entry's
// timestamp, so an entry read often but written once still ages out
// relative to other writes. Swap in store/ristretto or store/bigcache for
// richer policies; the default never changes eviction order silently.
package local

import (
	"sync"
	"time"

	"github.com/propsvc/tiercache/store"
)

type entry struct {
	value      []byte
	insertedAt time.Time
}

// Config tunes the store. TTL and MaxEntries must be positive; the cache
// validates them before construction.
type Config struct {
	TTL        time.Duration
	MaxEntries int

	// OnEvict/OnExpire observe capacity evictions and lazy expiries.
	// Called outside the store's critical section; may be nil.
	OnEvict  func(key string)
	OnExpire func(key string)
}

// Store is safe for concurrent use. A single mutex covers the whole
// read-check-expire-remove and check-evict-insert sequences so two writers
// can never both evict, and a reader can never observe a half-removed entry.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry

	ttl      time.Duration
	max      int
	onEvict  func(string)
	onExpire func(string)
}

var _ store.Local = (*Store)(nil)

func New(cfg Config) *Store {
	return &Store{
		entries:  make(map[string]entry),
		ttl:      cfg.TTL,
		max:      cfg.MaxEntries,
		onEvict:  cfg.OnEvict,
		onExpire: cfg.OnExpire,
	}
}

// Get returns the value stored under key if it is younger than the TTL.
// An entry exactly TTL old counts as expired; it is removed and reported
// as a miss.
func (s *Store) Get(key string, now time.Time) ([]byte, bool) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	if now.Sub(e.insertedAt) >= s.ttl {
		delete(s.entries, key)
		s.mu.Unlock()
		if s.onExpire != nil {
			s.onExpire(key)
		}
		return nil, false
	}
	s.mu.Unlock()
	return e.value, true
}

// Set inserts value under key. When the store already holds MaxEntries
// entries, the entry with the earliest insertion time is evicted first.
func (s *Store) Set(key string, value []byte, now time.Time) {
	var evicted string
	s.mu.Lock()
	if len(s.entries) >= s.max {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range s.entries {
			if oldestKey == "" || e.insertedAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.insertedAt
			}
		}
		delete(s.entries, oldestKey)
		if oldestKey != key {
			evicted = oldestKey
		}
	}
	s.entries[key] = entry{value: value, insertedAt: now}
	s.mu.Unlock()
	if evicted != "" && s.onEvict != nil {
		s.onEvict(evicted)
	}
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	n := len(s.entries)
	s.mu.Unlock()
	return n
}
