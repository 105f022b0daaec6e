// Package cache provides pluggable storage for sanitized documents and
// rendered diagram markup.
//
// A Cache stores opaque bytes under string keys with optional expiration.
// A Keyer derives those keys from content hashes, so identical input always
// lands on the same entry regardless of which backend holds it.
//
// Backends:
//   - FileCache: per-user cache directory for CLI usage
//   - RedisCache: shared cache for the preview server
//   - NullCache: disables caching entirely
package cache

import (
	"context"
	"time"
)

// Cache TTLs. Markup outlives documents because re-rendering is the
// expensive half.
const (
	TTLDocument = 24 * time.Hour
	TTLMarkup   = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an expired or corrupt entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// MarkupKeyOpts are the render parameters that participate in markup keys.
// Two renders of the same document with different options must not share an
// entry.
type MarkupKeyOpts struct {
	Engine string // render engine name, e.g. "graphviz"
	Format string // output format, e.g. "svg" or "dot"
}

// Keyer derives cache keys from content hashes.
type Keyer interface {
	// DocumentKey keys a sanitized document by the hash of its raw input.
	DocumentKey(rawHash string) string

	// MarkupKey keys rendered markup by the hash of the sanitized document
	// plus the render options.
	MarkupKey(docHash string, opts MarkupKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for sanitized-document caching.
func (k *DefaultKeyer) DocumentKey(rawHash string) string {
	return "doc:" + rawHash
}

// MarkupKey generates a key for rendered-markup caching.
func (k *DefaultKeyer) MarkupKey(docHash string, opts MarkupKeyOpts) string {
	return hashKey("markup", docHash, opts.Engine, opts.Format)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
