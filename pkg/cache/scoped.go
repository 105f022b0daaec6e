package cache

// ScopedKeyer wraps a Keyer with a prefix so several callers can share one
// backend without colliding. The preview server scopes keys per engine;
// tests scope them per case.
//
// Example usage:
//
//	// Keys private to one server instance
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
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

// DocumentKey generates a prefixed key for sanitized-document caching.
func (k *ScopedKeyer) DocumentKey(rawHash string) string {
	return k.prefix + k.inner.DocumentKey(rawHash)
}

// MarkupKey generates a prefixed key for rendered-markup caching.
func (k *ScopedKeyer) MarkupKey(docHash string, opts MarkupKeyOpts) string {
	return k.prefix + k.inner.MarkupKey(docHash, opts)
}
