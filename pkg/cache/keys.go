package cache

// Keyer builds cache keys for the two artifact classes: arranged layouts
// (positions per shape, keyed by map content plus arrangement options) and
// rendered artifacts (SVG/DOT bytes, keyed by layout hash plus format).
type Keyer interface {
	LayoutKey(mapHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash, format string) string
}

// LayoutKeyOpts are the arrangement parameters that change the resulting
// positions.
type LayoutKeyOpts struct {
	MinSpacing  float64 `json:"min_spacing"`
	GroupMargin float64 `json:"group_margin"`
}

// DefaultKeyer hashes option structs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LayoutKey generates a key for an arranged layout.
func (k *DefaultKeyer) LayoutKey(mapHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", mapHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash, format string) string {
	return hashKey("artifact", layoutHash, format)
}

// ScopedKeyer prefixes every key of an inner Keyer, isolating namespaces
// when several servers share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
// A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(mapHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(mapHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, format)
}
