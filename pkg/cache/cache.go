// Package cache provides the byte cache behind the render pipeline.
//
// Three implementations share the [Cache] interface:
//   - [FileCache] stores entries as JSON files for CLI use
//   - [RedisCache] shares entries between server replicas
//   - [NullCache] disables caching
//
// Keys are built by a [Keyer] so the CLI and the server agree on them. Each
// stage hashes its input and its options, so a changed palette re-renders
// without recomputing the geometry.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// Default TTLs per pipeline stage.
const (
	TTLSnapshot = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	// SnapshotKey is the key for a stored snapshot document.
	SnapshotKey(id string) string

	// LayoutKey is the key for the geometry of a snapshot.
	LayoutKey(snapshotHash string, opts LayoutKeyOpts) string

	// ArtifactKey is the key for one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs that change geometry.
type LayoutKeyOpts struct {
	Topology string  `json:"topology"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Scale    float64 `json:"scale"`
	CellSize float64 `json:"cell_size,omitempty"`
}

// ArtifactKeyOpts are the inputs that change a rendered output but not the
// geometry.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Palette      string  `json:"palette,omitempty"`
	HeatMap      bool    `json:"heat_map,omitempty"`
	Background   string  `json:"background,omitempty"`
	Gradient     bool    `json:"gradient,omitempty"`
	Tint         string  `json:"tint,omitempty"`
	Solution     bool    `json:"solution,omitempty"`
	SolutionLine bool    `json:"solution_line,omitempty"`
	Detailed     bool    `json:"detailed,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SnapshotKey returns "snapshot:<id>".
func (DefaultKeyer) SnapshotKey(id string) string {
	return "snapshot:" + id
}

// LayoutKey hashes the snapshot hash together with opts.
func (DefaultKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", snapshotHash, opts)
}

// ArtifactKey hashes the layout hash together with opts.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// NullCache stores nothing; every Get misses. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
