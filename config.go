package tiercache

import (
	"os"
	"strconv"
	"time"

	"github.com/propsvc/tiercache/store/remote"
)

// Config is the deployment-facing configuration surface. It maps 1:1 to
// environment variables so services can tune the cache without code changes:
//
//	CACHE_TTL_SECONDS       entry lifetime, both tiers (default: 300)
//	CACHE_MAX_LOCAL_ENTRIES local tier capacity (default: 10000)
//	CACHE_USE_REMOTE        enable the shared Redis tier (default: true)
//	CACHE_REMOTE_ADDR       Redis address (default: localhost:6379)
//	CACHE_REMOTE_PASSWORD   Redis password (default: none)
//	CACHE_REMOTE_DB         Redis database number (default: 0)
//	CACHE_REMOTE_POOL_SIZE  Redis connection pool size (default: 10)
//
// Load with LoadConfig and validate with Validate before use.
type Config struct {
	TTLSeconds      int
	MaxLocalEntries int
	UseRemote       bool
	RemoteAddr      string
	RemotePassword  string
	RemoteDB        int
	RemotePoolSize  int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		TTLSeconds:      300,
		MaxLocalEntries: 10000,
		UseRemote:       true,
		RemoteAddr:      "localhost:6379",
		RemoteDB:        0,
		RemotePoolSize:  10,
	}
}

// LoadConfig reads the configuration from the environment, falling back to
// DefaultConfig for unset variables.
func LoadConfig() Config {
	def := DefaultConfig()
	return Config{
		TTLSeconds:      getEnvInt("CACHE_TTL_SECONDS", def.TTLSeconds),
		MaxLocalEntries: getEnvInt("CACHE_MAX_LOCAL_ENTRIES", def.MaxLocalEntries),
		UseRemote:       getEnvBool("CACHE_USE_REMOTE", def.UseRemote),
		RemoteAddr:      getEnv("CACHE_REMOTE_ADDR", def.RemoteAddr),
		RemotePassword:  getEnv("CACHE_REMOTE_PASSWORD", ""),
		RemoteDB:        getEnvInt("CACHE_REMOTE_DB", def.RemoteDB),
		RemotePoolSize:  getEnvInt("CACHE_REMOTE_POOL_SIZE", def.RemotePoolSize),
	}
}

// Validate enforces the construction invariants: a non-positive TTL or
// capacity is a startup error, not something to limp along with.
func (c Config) Validate() error {
	if c.TTLSeconds <= 0 {
		return &ConfigError{Field: "TTLSeconds", Reason: "must be positive"}
	}
	if c.MaxLocalEntries <= 0 {
		return &ConfigError{Field: "MaxLocalEntries", Reason: "must be positive"}
	}
	if c.UseRemote && c.RemoteAddr == "" {
		return &ConfigError{Field: "RemoteAddr", Reason: "required when UseRemote is set"}
	}
	return nil
}

// NewFromConfig builds a Cache from a deployment Config, dialing Redis when
// the remote tier is enabled. A failed liveness probe does not fail
// construction; the cache comes up local-only (see New).
func NewFromConfig[V any](cfg Config, opts Options[V]) (Cache[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts.TTL = time.Duration(cfg.TTLSeconds) * time.Second
	opts.MaxLocalEntries = cfg.MaxLocalEntries
	if cfg.UseRemote && opts.Remote == nil {
		opts.Remote = remote.New(remote.Config{
			Addr:     cfg.RemoteAddr,
			Password: cfg.RemotePassword,
			DB:       cfg.RemoteDB,
			PoolSize: cfg.RemotePoolSize,
		})
		opts.CloseRemote = true
	}
	return New[V](opts)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
