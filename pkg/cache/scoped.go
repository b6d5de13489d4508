package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating deployments that
// share one backend. The CLI scopes keys with the [cache] prefix setting.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys; an empty prefix returns
// inner unchanged.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix == "" {
		return inner
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(requestHash, opts)
}
