package cache

import (
	"context"

	"github.com/matzehuels/tracesplit/pkg/errors"
)

// Config selects and configures a backend.
type Config struct {
	Backend       string // file, redis, mongo or none; empty means file
	Dir           string // file backend; empty means DefaultDir
	RedisAddr     string
	MongoURI      string
	MongoDatabase string
}

// Open creates the configured backend, wrapped with Instrumented.
func Open(ctx context.Context, cfg Config) (*Instrumented, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendFile
	}
	if err := errors.ValidateFormat(backend, Backends...); err != nil {
		return nil, err
	}

	var (
		c   Cache
		err error
	)
	switch backend {
	case BackendFile:
		dir := cfg.Dir
		if dir == "" {
			if dir, err = DefaultDir(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeCache, err, "locate cache directory")
			}
		}
		c, err = NewFileCache(dir)
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "redis backend requires redis_addr")
		}
		c, err = NewRedisCache(ctx, cfg.RedisAddr)
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "mongo backend requires mongo_uri")
		}
		db := cfg.MongoDatabase
		if db == "" {
			db = "tracesplit"
		}
		c, err = NewMongoCache(ctx, cfg.MongoURI, db)
	default:
		c = NewNullCache()
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCache, err, "open %s cache", backend)
	}
	return NewInstrumented(c, backend), nil
}
