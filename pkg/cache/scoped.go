package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants can share
// one backend. The API server scopes keys per deployment so that a shared
// Redis instance can serve more than one pixmesh installation.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "pixmesh:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for graph caching.
func (k *ScopedKeyer) GraphKey(rasterHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(rasterHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
