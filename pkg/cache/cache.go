// Package cache stores rendered artifacts keyed by request content.
//
// A render is fully determined by its request, its seed, the output format
// and the sink options, so the pipeline hashes those into a key and skips
// rendering on a hit. Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are built by a [Keyer]; [ScopedKeyer] prefixes them so several
// deployments can share one Redis database. The backends store keys as
// given.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the data stored under key. The boolean is false on a miss,
	// including for expired entries.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted or cleared.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Clear removes every entry of c if it supports clearing, and reports
// whether it did.
func Clear(ctx context.Context, c Cache) (int, bool, error) {
	cl, ok := c.(Clearer)
	if !ok {
		return 0, false, nil
	}
	n, err := cl.Clear(ctx)
	return n, true, err
}
