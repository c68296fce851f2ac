// Package remote adapts a Redis server as the shared cache tier. Only the
// minimal key-value subset is used: GET, SET with EX, DEL, PING.
package remote

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/propsvc/tiercache/store"
)

// Config tunes the Redis connection. Zero values fall back to defaults
// matching a local Redis.
type Config struct {
	Addr     string // "" => localhost:6379
	Password string
	DB       int
	PoolSize int // 0 => 10

	DialTimeout  time.Duration // 0 => 5s
	ReadTimeout  time.Duration // 0 => 3s
	WriteTimeout time.Duration // 0 => 3s
}

type Store struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ store.Remote = (*Store)(nil)

// New creates a Store owning its own client. The connection is not probed
// here; the cache runs a single liveness probe at construction and treats a
// failure as "unavailable" rather than an error.
func New(cfg Config) *Store {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 10
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 3 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 3 * time.Second
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return &Store{rdb: rdb, closeClient: true}
}

// FromClient wraps an existing client. Set closeClient true only if this
// store exclusively owns the client.
func FromClient(client goredis.UniversalClient, closeClient bool) *Store {
	return &Store{rdb: client, closeClient: closeClient}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

// Set stores value under key, delegating expiry to the server's native TTL.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // non-positive TTLs mean "no expiry" per provider contract
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the underlying client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Store) Close() error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
