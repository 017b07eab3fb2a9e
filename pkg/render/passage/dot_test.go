package passage

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/maze"
)

// square2x2 has a solution (0,0)->(1,0)->(1,1), a one-sided link from (0,1)
// to (1,1) and a link off the grid from (0,0).
func square2x2() *maze.Snapshot {
	d := maze.NewDirections
	return maze.NewSnapshot([]maze.Cell{
		{X: 0, Y: 0, Topology: maze.Orthogonal, IsStart: true, OnSolutionPath: true, Linked: d(maze.Right, maze.Up)},
		{X: 1, Y: 0, Topology: maze.Orthogonal, OnSolutionPath: true, Distance: 1, Linked: d(maze.Left, maze.Down)},
		{X: 0, Y: 1, Topology: maze.Orthogonal, Distance: 3, Linked: d(maze.Right)},
		{X: 1, Y: 1, Topology: maze.Orthogonal, IsGoal: true, OnSolutionPath: true, Distance: 2, Linked: d(maze.Up)},
	})
}

func TestEdges(t *testing.T) {
	edges := Edges(square2x2())
	want := []Edge{
		{From: maze.Coordinates{X: 0, Y: 0}, To: maze.Coordinates{X: 1, Y: 0}, Solution: true},
		{From: maze.Coordinates{X: 1, Y: 0}, To: maze.Coordinates{X: 1, Y: 1}, Solution: true},
		{From: maze.Coordinates{X: 0, Y: 1}, To: maze.Coordinates{X: 1, Y: 1}, OneSided: true},
	}
	if len(edges) != len(want) {
		t.Fatalf("Edges() = %+v, want %+v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d = %+v, want %+v", i, edges[i], want[i])
		}
	}
}

func TestEdgesEmpty(t *testing.T) {
	if got := Edges(maze.NewSnapshot(nil)); len(got) != 0 {
		t.Errorf("Edges(empty) = %v", got)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(square2x2(), Options{})

	if !strings.HasPrefix(dot, "graph maze {") {
		t.Error("ToDOT() should produce an undirected graph")
	}
	for _, want := range []string{`c0_0 [label="0,0"`, `c1_1 [label="1,1"`, "c0_0 -- c1_0", "c0_1 -- c1_1 [style=dashed]"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q", want)
		}
	}
	if strings.Count(dot, " -- ") != 3 {
		t.Errorf("expected 3 edges in:\n%s", dot)
	}
	if strings.Contains(dot, "pos=") {
		t.Error("nodes should not be pinned by default")
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(square2x2(), Options{Detailed: true, Pinned: true})
	if !strings.Contains(dot, `label="1,1\nd=2"`) {
		t.Error("detailed labels should include distance")
	}
	if !strings.Contains(dot, `pos="1,-1!"`) {
		t.Error("pinned nodes should carry pos")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(square2x2(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Fatal("RenderSVG() should fail on invalid DOT")
	}
	if errors.GetCode(err) == "" {
		t.Errorf("error should carry a code, got %v", err)
	}
}
