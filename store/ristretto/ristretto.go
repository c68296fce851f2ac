// Package ristretto adapts dgraph-io/ristretto as an alternative local tier.
//
// Ristretto is admission-based: writes may be dropped under pressure and
// eviction order is frequency-driven, not oldest-insertion. Len is an
// approximation derived from its metrics. Use it when hit-rate under heavy
// load matters more than the default tier's exact semantics.
package ristretto

import (
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/propsvc/tiercache/store"
)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	TTL         time.Duration // should match the cache TTL
}

type Store struct {
	c   *rc.Cache
	ttl time.Duration
}

var _ store.Local = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     true, // needed for the Len approximation
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c, ttl: cfg.TTL}, nil
}

func (s *Store) Get(key string, _ time.Time) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		s.c.Del(key)
		return nil, false
	}
	return b, true
}

func (s *Store) Set(key string, value []byte, _ time.Time) {
	s.c.SetWithTTL(key, value, int64(len(value)), s.ttl)
}

func (s *Store) Delete(key string) {
	s.c.Del(key)
}

func (s *Store) Clear() {
	s.c.Clear()
}

// Len approximates the resident entry count from admission metrics.
func (s *Store) Len() int {
	m := s.c.Metrics
	if m == nil {
		return 0
	}
	added := m.KeysAdded()
	gone := m.KeysEvicted()
	if gone >= added {
		return 0
	}
	return int(added - gone)
}

func (s *Store) Close() error {
	s.c.Wait()
	s.c.Close()
	return nil
}
