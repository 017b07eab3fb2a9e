package pipeline

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/mazer/pkg/cache"
	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/observability"
	"github.com/matzehuels/mazer/pkg/style"
)

// corridor is a 3x1 square maze solved left to right.
func corridor() *maze.Snapshot {
	d := maze.NewDirections
	return maze.NewSnapshot([]maze.Cell{
		{X: 0, Y: 0, Topology: maze.Orthogonal, IsStart: true, OnSolutionPath: true, Linked: d(maze.Right)},
		{X: 1, Y: 0, Topology: maze.Orthogonal, OnSolutionPath: true, Distance: 1, Linked: d(maze.Left, maze.Right)},
		{X: 2, Y: 0, Topology: maze.Orthogonal, IsGoal: true, OnSolutionPath: true, Distance: 2, Linked: d(maze.Left)},
	})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"graph", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) should return INVALID_FORMAT, got %v", tt.format, err)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateTopology(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"Sigma", false},
		{"delta", false},
		{"Ortho", false},
		{"Hexagonal", true},
	}

	for _, tt := range tests {
		err := ValidateTopology(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTopology(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLoad(); !errors.IsValidation(err) {
		t.Errorf("missing input should fail validation, got %v", err)
	}

	opts = Options{Input: "maze.json"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("input path should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	opts = Options{Snapshot: corridor()}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("in-memory snapshot should pass: %v", err)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"named palette", Options{Palette: "Peter River"}, false},
		{"unknown palette", Options{Palette: "Neon"}, true},
		{"named background", Options{Background: "mint"}, false},
		{"hex background", Options{Background: "#112233"}, false},
		{"bad background", Options{Background: "not-a-colour"}, true},
		{"hex tint", Options{Tint: "#ff0000"}, false},
		{"bad tint", Options{Tint: "red"}, true},
		{"bad format", Options{Formats: []string{"gif"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForRender() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateForGeometry(t *testing.T) {
	opts := Options{Width: -1}
	if err := opts.ValidateForGeometry(); !errors.Is(err, errors.ErrCodeInvalidDisplay) {
		t.Errorf("negative width should be INVALID_DISPLAY, got %v", err)
	}

	opts = Options{CellSize: -3}
	if err := opts.ValidateForGeometry(); err == nil {
		t.Error("negative cell size should fail")
	}

	opts = Options{Topology: "Sigma"}
	if err := opts.ValidateForGeometry(); err != nil {
		t.Errorf("valid geometry options should pass: %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: "maze.json"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalWidth := opts.Width
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestSetGeometryDefaults(t *testing.T) {
	opts := Options{}
	opts.SetGeometryDefaults()

	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %f, got %f", DefaultScale, opts.Scale)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale should be %f, got %f", DefaultPNGScale, opts.PNGScale)
	}
}

func TestExtensionAndContentType(t *testing.T) {
	tests := []struct {
		format, ext, mime string
	}{
		{FormatSVG, ".svg", "image/svg+xml"},
		{FormatPNG, ".png", "image/png"},
		{FormatPDF, ".pdf", "application/pdf"},
		{FormatJSON, ".json", "application/json"},
		{FormatDOT, ".dot", "text/vnd.graphviz"},
		{FormatGraph, ".graph.svg", "image/svg+xml"},
	}
	for _, tt := range tests {
		if got := Extension(tt.format); got != tt.ext {
			t.Errorf("Extension(%s) = %s, want %s", tt.format, got, tt.ext)
		}
		if got := ContentType(tt.format); got != tt.mime {
			t.Errorf("ContentType(%s) = %s, want %s", tt.format, got, tt.mime)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{PNGScale: 3, Detailed: true, Palette: "Amethyst"}

	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 || k.Detailed {
		t.Errorf("png key should carry scale only: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Scale != 0 || k.Detailed {
		t.Errorf("svg key should not carry scale or labels: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatDOT); !k.Detailed || k.Palette != "Amethyst" {
		t.Errorf("dot key should carry labels: %+v", k)
	}
}

func TestTopology(t *testing.T) {
	s := corridor()
	if got := Topology(s, Options{}); got != maze.Orthogonal {
		t.Errorf("Topology() = %s, want Orthogonal", got)
	}
	if got := Topology(s, Options{Topology: "Rhombic"}); got != maze.Rhombic {
		t.Errorf("override ignored: %s", got)
	}
	unknown := maze.NewSnapshot([]maze.Cell{{X: 0, Y: 0}})
	if got := Topology(unknown, Options{}); got != maze.Orthogonal {
		t.Errorf("unknown topology should fall back to Orthogonal, got %s", got)
	}
}

func TestFit(t *testing.T) {
	s := corridor()

	m, err := Fit(s, Options{Width: 300, Height: 600, Scale: 2})
	if err != nil {
		t.Fatal(err)
	}
	if m.CellSize != 100 || m.Width != 300 || m.Height != 100 {
		t.Errorf("Fit() = %+v, want 100pt cells on a 300x100 grid", m)
	}

	m, err = Fit(s, Options{CellSize: 20})
	if err != nil {
		t.Fatal(err)
	}
	if m.CellSize != 20 || m.Width != 60 || m.Height != 20 {
		t.Errorf("fixed cell size ignored: %+v", m)
	}
}

func TestComputeGeometryZeroOptions(t *testing.T) {
	l, m, err := ComputeGeometry(context.Background(), corridor(), Options{})
	if err != nil {
		t.Fatalf("ComputeGeometry: %v", err)
	}
	if m.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", m.Scale, DefaultScale)
	}
	if len(l.Cells) != 3 {
		t.Errorf("got %d cells, want 3", len(l.Cells))
	}

	if _, _, err := ComputeGeometry(context.Background(), corridor(), Options{CellSize: -1}); err == nil {
		t.Error("negative cell size should be rejected")
	}
}

func TestSolutionSet(t *testing.T) {
	l, _, err := ComputeGeometry(context.Background(), corridor(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	set := SolutionSet(l)
	if len(set) != 3 {
		t.Errorf("SolutionSet has %d cells, want 3", len(set))
	}
	if SnapshotOf(l).Len() != 3 {
		t.Error("SnapshotOf should rebuild every cell")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Snapshot: corridor(),
		Formats:  []string{FormatSVG, FormatJSON, FormatDOT},
		HeatMap:  true,
		Solution: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.CellCount != 3 || len(result.Geometry.Cells) != 3 {
		t.Errorf("expected 3 cells, got %d / %d", result.Stats.CellCount, len(result.Geometry.Cells))
	}
	if result.SnapshotHash == "" {
		t.Error("SnapshotHash should be set")
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") {
		t.Error("svg artifact missing")
	}
	if !strings.Contains(svg, style.SolutionColor.Hex()) {
		t.Error("Solution should fill the path cells between start and goal")
	}

	var doc struct {
		Cells []struct {
			Revealed bool `json:"revealed"`
		} `json:"cells"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(doc.Cells) != 3 {
		t.Errorf("json artifact has %d cells", len(doc.Cells))
	}

	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "graph maze {") {
		t.Error("dot artifact missing")
	}
}

func TestRunnerCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()
	opts := Options{Snapshot: corridor(), Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.GeometryHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.GeometryHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// A different palette reuses the geometry but re-renders.
	opts.HeatMap = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheInfo.GeometryHit || third.CacheInfo.RenderHit {
		t.Errorf("render options should only invalidate artifacts: %+v", third.CacheInfo)
	}

	// An explicit revealed set is live state and bypasses the artifact cache.
	opts.Revealed = maze.CoordinateSet{{X: 1, Y: 0}: {}}
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.RenderHit {
		t.Error("revealed renders should not be served from cache")
	}
}

func TestRunnerLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.json")
	if err := maze.WriteSnapshotFile(corridor(), path); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	s, err := r.Load(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("loaded %d cells, want 3", s.Len())
	}

	_, err = r.Load(context.Background(), Options{Input: filepath.Join(t.TempDir(), "missing.json")})
	if !errors.IsNotFound(err) {
		t.Errorf("missing file should be not found, got %v", err)
	}
}

type recordingPipelineHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingPipelineHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingPipelineHooks) OnLoadStart(context.Context, string) { h.record("load") }
func (h *recordingPipelineHooks) OnGeometryStart(_ context.Context, topology string, _ int) {
	h.record("geometry:" + topology)
}
func (h *recordingPipelineHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, err error) {
	if err == nil {
		h.record("render:" + strings.Join(formats, ","))
	}
}

func TestRunnerHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingPipelineHooks{}
	observability.SetPipelineHooks(hooks)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Snapshot: corridor(), Topology: "Delta"}); err != nil {
		t.Fatal(err)
	}

	want := []string{"load", "geometry:Delta", "render:svg"}
	if strings.Join(hooks.events, " ") != strings.Join(want, " ") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}
