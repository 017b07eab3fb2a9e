package cache

import "strings"

// ScopedKeyer prefixes every key of an inner Keyer so several deployments
// can share one Redis instance. Key types stay recognisable to KeyType.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging")
//	keyer.SnapshotKey("abc") // "staging:snapshot:abc"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer scopes inner (DefaultKeyer when nil) under prefix. A
// trailing colon is added when missing; an empty prefix returns inner
// unchanged.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return inner
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// Prefix returns the scope, including its trailing colon.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

func (k *ScopedKeyer) SnapshotKey(id string) string {
	return k.prefix + k.inner.SnapshotKey(id)
}

func (k *ScopedKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(snapshotHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
