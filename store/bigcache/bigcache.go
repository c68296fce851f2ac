// Package bigcache adapts allegro/bigcache as an alternative local tier.
//
// BigCache has no per-entry TTL: every entry lives for the global
// LifeWindow, and eviction is segment-based rather than oldest-insertion.
// Use it when throughput matters more than the default tier's exact expiry
// boundary and eviction order.
package bigcache

import (
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/propsvc/tiercache/store"
)

type Config struct {
	LifeWindow         time.Duration // should match the cache TTL
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

type Store struct {
	c *bc.BigCache
}

var _ store.Local = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(key string, _ time.Time) ([]byte, bool) {
	b, err := s.c.Get(key)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (s *Store) Set(key string, value []byte, _ time.Time) {
	_ = s.c.Set(key, value)
}

func (s *Store) Delete(key string) {
	_ = s.c.Delete(key)
}

func (s *Store) Clear() {
	_ = s.c.Reset()
}

func (s *Store) Len() int {
	return s.c.Len()
}

func (s *Store) Close() error {
	return s.c.Close()
}
