// Package cache provides pluggable byte caches for pipeline results.
//
// # Overview
//
// The pipeline caches two kinds of results: the mesh graph computed from a
// raster, and the rendered artifacts of a graph. Both are stored as opaque
// bytes behind the [Cache] interface, with keys produced by a [Keyer].
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [BadgerCache]: an embedded Badger key-value store
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// [Open] selects a backend from a single location string, as used by the
// --cache flag and the config file.
//
// # Keys
//
// Keys hash every option that influences the cached value, so changing the
// smoothing radius or an output format never returns a stale entry:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.GraphKey(rasterHash, cache.GraphKeyOpts{Thickness: 2, MaxDist: 5})
package cache

import (
	"context"
	"time"
)

// Cache TTLs for the pipeline stages. Results are pure functions of their
// keys, so the TTLs only bound disk and memory use.
const (
	TTLGraph    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
//
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
