package cache

// ScopedKeyer wraps a Keyer with a prefix so tenants sharing one Redis
// instance get separate namespaces.
//
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer defaults to the standard one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DefinitionKey generates a prefixed definition key.
func (k *ScopedKeyer) DefinitionKey(chartID string) string {
	return k.prefix + k.inner.DefinitionKey(chartID)
}

// RenderKey generates a prefixed render artifact key.
func (k *ScopedKeyer) RenderKey(defHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(defHash, opts)
}
