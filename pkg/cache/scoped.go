package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when one Redis instance serves several deployments or users
// that must not share cached results.
//
// Example usage:
//
//	// User-specific keys for saved charts
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for anonymous requests
//	globalKeyer := NewDefaultKeyer()
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

// ChartKey generates a prefixed key for chart computation caching.
func (k *ScopedKeyer) ChartKey(provider string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(provider, opts)
}

// SynastryKey generates a prefixed key for aspect detection caching.
func (k *ScopedKeyer) SynastryKey(chartHashA, chartHashB string) string {
	return k.prefix + k.inner.SynastryKey(chartHashA, chartHashB)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(longitudeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(longitudeHash, opts)
}
