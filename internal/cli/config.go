package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tracesplit/pkg/cache"
	"github.com/matzehuels/tracesplit/pkg/errors"
)

// Config is the on-disk CLI configuration.
//
//	[cache]
//	backend = "redis"
//	ttl = "12h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "debug"
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	TTL           duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// ServerConfig configures "serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: cache.BackendFile, TTL: duration{cache.TTLSplit}},
		Server: ServerConfig{Addr: defaultAddr},
	}
}

// LoadConfig decodes the file at path over DefaultConfig. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if c.Cache.Backend != "" {
		if err := errors.ValidateFormat(c.Cache.Backend, cache.Backends...); err != nil {
			return err
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if _, ok := c.logLevel(); !ok && c.Log.Level != "" {
		return errors.New(errors.ErrCodeInvalidInput, "unknown log level %q", c.Log.Level)
	}
	return nil
}

func (c Config) logLevel() (log.Level, bool) {
	if c.Log.Level == "" {
		return 0, false
	}
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, false
	}
	return level, true
}

// duration decodes TOML strings such as "90m" with time.ParseDuration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
