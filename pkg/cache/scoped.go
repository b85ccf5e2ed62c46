package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, such
// as one namespace per API client sharing a Redis instance:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "client:abc123:")
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

// SplitKey generates a prefixed key for split results.
func (k *ScopedKeyer) SplitKey(inputHash string, opts SplitKeyOpts) string {
	return k.prefix + k.inner.SplitKey(inputHash, opts)
}
