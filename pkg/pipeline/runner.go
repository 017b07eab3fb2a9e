package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mazer/pkg/cache"
	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/layout"
	"github.com/matzehuels/mazer/pkg/maze"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so cache keys and defaults agree.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The cache is wrapped so hits and misses reach the observability hooks.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.Instrument(c),
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → geometry → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	s, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Snapshot = s
	result.SnapshotHash = SnapshotHash(s)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.CellCount = s.Len()

	r.Logger.Info("loaded snapshot",
		"cells", s.Len(),
		"topology", s.Topology(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Geometry
	geoStart := time.Now()
	geo, metrics, geoHit, err := r.ComputeGeometryWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	result.Geometry = geo
	result.Metrics = metrics
	result.Stats.GeometryTime = time.Since(geoStart)
	result.CacheInfo.GeometryHit = geoHit

	r.Logger.Info("computed geometry",
		"topology", metrics.Topology,
		"cell_size", metrics.CellSize,
		"duration", result.Stats.GeometryTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, geo, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the snapshot named by opts.
func (r *Runner) Load(ctx context.Context, opts Options) (*maze.Snapshot, error) {
	r.applyLogger(&opts)
	return Load(ctx, opts)
}

// ComputeGeometryWithCacheInfo computes geometry with caching and returns cache hit info.
func (r *Runner) ComputeGeometryWithCacheInfo(ctx context.Context, s *maze.Snapshot, opts Options) (geometry.Layout, layout.Metrics, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGeometry(); err != nil {
		return geometry.Layout{}, layout.Metrics{}, false, err
	}
	m, err := Fit(s, opts)
	if err != nil {
		return geometry.Layout{}, layout.Metrics{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(SnapshotHash(s), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached geometry.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, m, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	l, m, err := ComputeGeometry(ctx, s, opts)
	if err != nil {
		return geometry.Layout{}, layout.Metrics{}, false, err
	}

	if data, err := json.Marshal(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}
	return l, m, false, nil // Cache miss
}

// ComputeGeometry is a convenience wrapper that calls ComputeGeometryWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeGeometry(ctx context.Context, s *maze.Snapshot, opts Options) (geometry.Layout, error) {
	l, _, _, err := r.ComputeGeometryWithCacheInfo(ctx, s, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l geometry.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if !opts.Cacheable() {
		artifacts, err := Render(ctx, l, opts)
		return artifacts, false, err
	}

	// Compute cache key from layout data
	layoutData, err := json.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l geometry.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
