// Package cache provides the storage layer for rendered trees.
//
// Rendering is a pure function of the tree text and the render options, so
// artifacts can be cached by content: [Keyer] derives keys from a hash of
// the tree notation plus every option that affects the output. Fetched
// remote tree sources are cached by URL.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entry files under a directory (CLI default)
//   - [RedisCache]: shared cache for multiple server replicas
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the data stored under key. A missing or expired entry is
	// reported as a miss (hit == false) with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Time-to-live for each kind of entry.
const (
	TTLSource   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer generates cache keys.
type Keyer interface {
	// SourceKey is the key of a tree fetched from url.
	SourceKey(url string) string

	// ArtifactKey is the key of one rendered format of the tree whose
	// notation hashes to textHash.
	ArtifactKey(textHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Mode        string  `json:"mode"`
	Width       float64 `json:"width"`
	LabelMargin float64 `json:"label_margin"`
	Legend      bool    `json:"legend"`
	Domain      string  `json:"domain"` // hash of the color domain
}

// NullCache disables caching: every Get misses and every write is dropped.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
