package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string // file (default), redis or none
	Dir       string // file backend directory; empty selects DefaultDir
	RedisAddr string // redis backend address
	Prefix    string // redis key prefix; empty keeps the default
}

// Open creates the configured backend. The redis backend is pinged so that
// a misconfigured address fails at startup rather than on the first render.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileCache(opts.Dir)
	case BackendRedis:
		var ropts []RedisOption
		if opts.Prefix != "" {
			ropts = append(ropts, WithRedisPrefix(opts.Prefix))
		}
		c := NewRedisCache(opts.RedisAddr, ropts...)
		if err := c.Ping(ctx); err != nil {
			c.Close()
			return nil, fmt.Errorf("redis %s: %w", opts.RedisAddr, err)
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
