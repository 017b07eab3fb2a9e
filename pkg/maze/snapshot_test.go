package maze

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mazer/pkg/errors"
)

// corridor builds a 3x3 square maze whose solution runs along the top row
// and down the right column.
func corridor() []Cell {
	path := map[Coordinates]int{{0, 0}: 0, {1, 0}: 1, {2, 0}: 2, {2, 1}: 3, {2, 2}: 4}
	var cells []Cell
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := Cell{X: x, Y: y, Topology: Orthogonal}
			if d, ok := path[Coordinates{x, y}]; ok {
				c.Distance = d
				c.OnSolutionPath = true
			} else {
				c.Distance = 5 + x + y
			}
			cells = append(cells, c)
		}
	}
	cells[0].IsStart = true
	cells[8].IsGoal = true
	return cells
}

func TestSnapshotIndex(t *testing.T) {
	s := NewSnapshot(corridor())

	if s.Columns() != 3 || s.Rows() != 3 {
		t.Errorf("size = %dx%d, want 3x3", s.Columns(), s.Rows())
	}
	if s.MaxDistance() != 8 {
		t.Errorf("MaxDistance() = %d, want 8", s.MaxDistance())
	}

	c, ok := s.Lookup(Coordinates{2, 1})
	if !ok || c.Distance != 3 {
		t.Errorf("Lookup(2,1) = %+v, %v", c, ok)
	}
	if _, ok := s.Lookup(Coordinates{5, 5}); ok {
		t.Error("Lookup outside grid should miss")
	}

	n, ok := s.Neighbor(c, Up)
	if !ok || n.Coordinates() != (Coordinates{2, 0}) {
		t.Errorf("Neighbor(Up) = %v, %v", n.Coordinates(), ok)
	}
	if _, ok := s.Neighbor(c, Right); ok {
		t.Error("Neighbor across the grid edge should miss")
	}
}

func TestSnapshotIsolatedFromInput(t *testing.T) {
	cells := corridor()
	s := NewSnapshot(cells)
	cells[0].Distance = 99

	c, _ := s.Lookup(Coordinates{0, 0})
	if c.Distance != 0 {
		t.Error("snapshot should copy its input")
	}
}

func TestEmptySnapshot(t *testing.T) {
	s := NewSnapshot(nil)
	if !s.Empty() || s.Columns() != 0 || s.Rows() != 0 {
		t.Errorf("empty snapshot reports %dx%d", s.Columns(), s.Rows())
	}
	if len(s.SolutionPath()) != 0 {
		t.Error("empty snapshot should have an empty path")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSolutionPathOrder(t *testing.T) {
	cells := corridor()
	cells[1].IsVisited = true // (1,0) already walked
	s := NewSnapshot(cells)

	var got []Coordinates
	for _, c := range s.SolutionPath() {
		got = append(got, c.Coordinates())
	}
	want := []Coordinates{{0, 0}, {2, 0}, {2, 1}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("path = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSolutionPathStableForTies(t *testing.T) {
	cells := []Cell{
		{X: 2, Y: 0, Distance: 1, OnSolutionPath: true},
		{X: 0, Y: 0, Distance: 0, OnSolutionPath: true},
		{X: 1, Y: 0, Distance: 1, OnSolutionPath: true},
	}
	path := NewSnapshot(cells).SolutionPath()
	if path[1].X != 2 || path[2].X != 1 {
		t.Errorf("equal distances should keep engine order, got %v %v", path[1].Coordinates(), path[2].Coordinates())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]Cell) []Cell
		wantErr bool
	}{
		{"valid", func(c []Cell) []Cell { return c }, false},
		{"two starts", func(c []Cell) []Cell { c[4].IsStart = true; return c }, true},
		{"no goal", func(c []Cell) []Cell { c[8].IsGoal = false; return c }, true},
		{"duplicate", func(c []Cell) []Cell { return append(c, c[3]) }, true},
		{"mixed topology", func(c []Cell) []Cell { c[2].Topology = Sigma; return c }, true},
		{"negative distance", func(c []Cell) []Cell { c[5].Distance = -1; return c }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSnapshot(tt.mutate(corridor())).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
				t.Errorf("Validate() code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestReadSnapshotFormats(t *testing.T) {
	const cell = `{"x":1,"y":0,"mazeType":"Delta","linked":["UpperLeft","Bogus"],"distance":2,` +
		`"isStart":false,"isGoal":false,"isActive":false,"isVisited":false,"hasBeenVisited":false,` +
		`"onSolutionPath":true,"orientation":"normal"}`

	tests := []struct {
		name  string
		input string
	}{
		{"object", `{"cells":[` + cell + `]}`},
		{"bare array", `[` + cell + `]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadSnapshot(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadSnapshot: %v", err)
			}
			c, ok := s.Lookup(Coordinates{1, 0})
			if !ok {
				t.Fatal("cell missing")
			}
			if c.Topology != Delta || c.Shape() != Normal {
				t.Errorf("topology/shape = %v/%v", c.Topology, c.Shape())
			}
			if c.Linked != NewDirections(UpperLeft) {
				t.Errorf("linked = %v", c.Linked)
			}
		})
	}
}

func TestReadSnapshotInvalid(t *testing.T) {
	_, err := ReadSnapshot(strings.NewReader(`{"cells": 3}`))
	if !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("err = %v, want INVALID_SNAPSHOT", err)
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.json")
	want := NewSnapshot(corridor())
	if err := WriteSnapshotFile(want, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	a, _ := json.Marshal(want)
	b, _ := json.Marshal(got)
	if !bytes.Equal(a, b) {
		t.Errorf("round trip mismatch:\n%s\n%s", a, b)
	}

	if _, err := ReadSnapshotFile(filepath.Join(t.TempDir(), "missing.json")); !errors.IsNotFound(err) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestCellShape(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want Orientation
	}{
		{"triangle default inverted", Cell{Topology: Delta}, Inverted},
		{"triangle normal", Cell{Topology: Delta, Orientation: Normal}, Normal},
		{"upsilon flag", Cell{Topology: Upsilon, IsSquare: true}, Square},
		{"upsilon tag", Cell{Topology: Upsilon, Orientation: Square}, Square},
		{"upsilon octagon", Cell{Topology: Upsilon}, Octagon},
		{"square", Cell{Topology: Orthogonal, Orientation: Normal}, NoOrientation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.Shape(); got != tt.want {
				t.Errorf("Shape() = %v, want %v", got, tt.want)
			}
		})
	}
}
