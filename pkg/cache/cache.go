// Package cache stores rendered artifacts keyed by a hash of their inputs.
//
// Rendering a large grid at high resolution takes noticeably longer than
// reading a PNG back from disk, so the pipeline caches encoded figures under
// a key derived from the grid contents and every option that affects the
// output. Re-running the same command is then a file copy.
//
// Two implementations are provided:
//
//   - [FileCache]: entries as files under a directory (CLI use)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// Keys are built by a [Keyer]. [ScopedKeyer] prefixes keys so that caches
// written by different builds never collide.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays valid.
const TTLArtifact = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired or
	// unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
