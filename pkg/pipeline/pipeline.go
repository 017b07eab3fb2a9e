// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and decode a snapshot (from a file or an in-memory value)
//  2. Geometry: fit the grid to the display and compute every cell polygon
//  3. Render: produce artifacts (SVG, PNG, PDF, JSON, DOT, passage graph)
//
// Geometry and artifacts are cached through a [cache.Cache]; each stage's
// key hashes its input and the options that affect it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "maze.json",
//	    Formats: []string{"svg", "json"},
//	    HeatMap: true,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	s, err := runner.Load(ctx, opts)
//	geo, err := runner.ComputeGeometry(ctx, s, opts)
//	artifacts, err := runner.Render(ctx, geo, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mazer/pkg/cache"
	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/layout"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default display width in points.
	DefaultWidth = 390.0

	// DefaultHeight is the default display height in points.
	DefaultHeight = 844.0

	// DefaultScale is the default pixel density.
	DefaultScale = 3.0

	// DefaultPNGScale is the raster scale used when none is given.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatGraph = "graph"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatGraph: true,
}

// FormatNames lists the supported formats in help-text order.
var FormatNames = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraph}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	if format == FormatGraph {
		return ".graph.svg"
	}
	return "." + format
}

// ContentType returns the MIME type of an artifact.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatGraph:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"`

	// Geometry options
	Topology string  `json:"topology,omitempty"` // Overrides the snapshot's topology
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	CellSize float64 `json:"cell_size,omitempty"` // Fixed cell size; zero fits the display

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Palette      string   `json:"palette,omitempty"`
	HeatMap      bool     `json:"heat_map,omitempty"`
	Background   string   `json:"background,omitempty"` // Named background or #rrggbb
	Gradient     bool     `json:"gradient,omitempty"`
	Tint         string   `json:"tint,omitempty"`
	Solution     bool     `json:"solution,omitempty"`      // Fill the whole solution path
	SolutionLine bool     `json:"solution_line,omitempty"` // Draw a line through it
	Detailed     bool     `json:"detailed,omitempty"`      // Distance labels in DOT output
	PNGScale     float64  `json:"png_scale,omitempty"`
	Refresh      bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Snapshot *maze.Snapshot     `json:"-"`
	Revealed maze.CoordinateSet `json:"-"` // Explicit revealed set; overrides Solution
	Logger   *log.Logger        `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the loaded snapshot.
	Snapshot *maze.Snapshot

	// SnapshotHash is the content hash of the snapshot.
	SnapshotHash string

	// Metrics is the display fit.
	Metrics layout.Metrics

	// Geometry is the computed cell geometry.
	Geometry geometry.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount    int
	LoadTime     time.Duration
	GeometryTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GeometryHit bool // Whether geometry came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTopology checks that a topology override names a known tiling.
// The empty string keeps the snapshot's own topology.
func ValidateTopology(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := maze.ParseTopology(name); !ok {
		return errors.New(errors.ErrCodeInvalidTopology, "invalid topology: %q", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForGeometry(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if o.Snapshot == nil && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input or snapshot is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetGeometryDefaults sets default display metrics.
func (o *Options) SetGeometryDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForGeometry sets defaults and validates geometry options.
func (o *Options) ValidateForGeometry() error {
	o.SetGeometryDefaults()
	if err := ValidateTopology(o.Topology); err != nil {
		return err
	}
	if o.CellSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cell size must not be negative, got %g", o.CellSize)
	}
	return o.Display().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Palette != "" {
		if _, err := style.PaletteByName(o.Palette); err != nil {
			return err
		}
	}
	if _, err := o.background(); err != nil {
		return err
	}
	if _, err := o.tint(); err != nil {
		return err
	}
	return nil
}

// Display returns the display metrics.
func (o *Options) Display() layout.Display {
	return layout.Display{Width: o.Width, Height: o.Height, Scale: o.Scale}
}

// background resolves the background option. Nil means the default.
func (o *Options) background() (*colorful.Color, error) {
	if o.Background == "" {
		return nil, nil
	}
	if b, ok := style.BackgroundByName(o.Background); ok {
		return &b.Color, nil
	}
	c, err := colorful.Hex(o.Background)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid background: %q", o.Background)
	}
	return &c, nil
}

func (o *Options) tint() (*colorful.Color, error) {
	if o.Tint == "" {
		return nil, nil
	}
	c, err := colorful.Hex(o.Tint)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid tint: %q", o.Tint)
	}
	return &c, nil
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

// LayoutKeyOpts returns cache key options for geometry computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Topology: o.Topology,
		Width:    o.Width,
		Height:   o.Height,
		Scale:    o.Scale,
		CellSize: o.CellSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:       format,
		Palette:      o.Palette,
		HeatMap:      o.HeatMap,
		Background:   o.Background,
		Gradient:     o.Gradient,
		Tint:         o.Tint,
		Solution:     o.Solution,
		SolutionLine: o.SolutionLine,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.PNGScale
	case FormatDOT, FormatGraph:
		k.Detailed = o.Detailed
	}
	return k
}

// Cacheable reports whether the render stage may use the artifact cache.
// An explicit revealed set makes the output depend on live state.
func (o *Options) Cacheable() bool {
	return o.Revealed == nil && !o.Refresh
}
