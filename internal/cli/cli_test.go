package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mazer/pkg/cache"
	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/layout"
	"github.com/matzehuels/mazer/pkg/maze"
)

// newTestCLI isolates config lookup and cache from the user's home.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	var out bytes.Buffer
	c := New(&bytes.Buffer{}, log.ErrorLevel)
	c.Out = &out
	return c, &out, dir
}

func writeSnapshot(t *testing.T, dir string, s *maze.Snapshot) string {
	t.Helper()
	path := filepath.Join(dir, "maze.json")
	if err := maze.WriteSnapshotFile(s, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestRenderCommand(t *testing.T) {
	c, _, dir := newTestCLI(t)
	input := writeSnapshot(t, dir, corridor())

	if err := run(c, "render", input, "-f", "svg,json,dot", "--solution", "--width", "300", "--height", "300"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".svg", ".render.json", ".dot"} {
		data, err := os.ReadFile(filepath.Join(dir, "maze"+ext))
		if err != nil {
			t.Fatalf("missing %s output: %v", ext, err)
		}
		if len(data) == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	c, _, dir := newTestCLI(t)
	input := writeSnapshot(t, dir, corridor())
	out := filepath.Join(dir, "custom-name.svg")

	if err := run(c, "render", input, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	c, _, dir := newTestCLI(t)
	input := writeSnapshot(t, dir, corridor())

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"render", filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"render", input, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad palette", []string{"render", input, "--palette", "Plaid"}, errors.ErrCodeInvalidPalette},
		{"bad topology", []string{"render", input, "--topology", "Klein"}, errors.ErrCodeInvalidTopology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(c, tt.args...)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestRenderCommandUsesConfig(t *testing.T) {
	c, _, dir := newTestCLI(t)
	input := writeSnapshot(t, dir, corridor())
	cfg := "[render]\nformats = [\"json\"]\n"
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(c, "render", input); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "maze.render.json")); err != nil {
		t.Fatalf("json output should not replace the input: %v", err)
	}
	if s, err := maze.ReadSnapshotFile(input); err != nil || s.Len() != 3 {
		t.Fatalf("input snapshot damaged: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "maze.svg")); err == nil {
		t.Error("config formats should replace the svg default")
	}
}

func TestLayoutCommandOutput(t *testing.T) {
	c, _, dir := newTestCLI(t)
	input := writeSnapshot(t, dir, corridor())
	out := filepath.Join(dir, "metrics.json")

	if err := run(c, "layout", input, "-o", out, "--width", "300", "--height", "300", "--scale", "2"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var m layout.Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.Columns != 3 || m.Rows != 1 || m.CellSize != 100 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestLayoutCommandPlan(t *testing.T) {
	c, _, _ := newTestCLI(t)
	if err := run(c, "layout", "--topology", "Delta", "--tier", "small"); err != nil {
		t.Errorf("plan: %v", err)
	}
	if err := run(c, "layout"); !errors.IsValidation(err) {
		t.Errorf("plan without topology: err = %v", err)
	}
	if err := run(c, "layout", "--topology", "Delta", "--tier", "huge"); !errors.IsValidation(err) {
		t.Errorf("plan with bad tier: err = %v", err)
	}
}

func TestValidateCommand(t *testing.T) {
	c, _, dir := newTestCLI(t)
	good := writeSnapshot(t, dir, corridor())
	bad := filepath.Join(dir, "bad.json")
	noGoal := maze.NewSnapshot([]maze.Cell{{X: 0, Y: 0, Topology: maze.Orthogonal, IsStart: true}})
	if err := maze.WriteSnapshotFile(noGoal, bad); err != nil {
		t.Fatal(err)
	}

	if err := run(c, "validate", good); err != nil {
		t.Errorf("valid snapshot: %v", err)
	}
	if err := run(c, "validate", good, bad); !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("invalid snapshot: err = %v", err)
	}
}

func TestPalettesCommand(t *testing.T) {
	c, out, _ := newTestCLI(t)
	if err := run(c, "palettes", "--plain"); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 20 {
		t.Errorf("got %d palettes, want 20", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Turquoise\t#e8f8f5") {
		t.Errorf("first line = %q", lines[0])
	}

	out.Reset()
	if err := run(c, "palettes"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Peter River") || !strings.Contains(out.String(), "lavender") {
		t.Error("styled output should list palettes and backgrounds")
	}
}

func TestCacheCommands(t *testing.T) {
	c, out, dir := newTestCLI(t)
	if err := run(c, "cache", "path"); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "cache", appName)
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	input := writeSnapshot(t, dir, corridor())
	if err := run(c, "render", input); err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(want)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Len() == 0 {
		t.Fatal("render should populate the cache")
	}
	if err := run(c, "cache", "prune"); err != nil {
		t.Fatal(err)
	}
	if fc.Len() == 0 {
		t.Error("prune should keep unexpired entries")
	}
	if err := run(c, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if n := fc.Len(); n != 0 {
		t.Errorf("cache holds %d entries after clear", n)
	}
}
