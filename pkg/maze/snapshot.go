package maze

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/mazer/pkg/errors"
)

// Snapshot is an immutable cell list with a coordinate index.
type Snapshot struct {
	cells []Cell
	index map[Coordinates]int
	cols  int
	rows  int
	maxD  int
}

// NewSnapshot indexes cells. The slice is copied. When two cells share
// coordinates the later one wins the index slot.
func NewSnapshot(cells []Cell) *Snapshot {
	s := &Snapshot{
		cells: slices.Clone(cells),
		index: make(map[Coordinates]int, len(cells)),
	}
	for i, c := range s.cells {
		s.index[c.Coordinates()] = i
		s.cols = max(s.cols, c.X+1)
		s.rows = max(s.rows, c.Y+1)
		s.maxD = max(s.maxD, c.Distance)
	}
	return s
}

// Cells returns a copy of the cell list in engine order.
func (s *Snapshot) Cells() []Cell {
	return slices.Clone(s.cells)
}

// Len returns the number of cells.
func (s *Snapshot) Len() int { return len(s.cells) }

// Empty reports whether the snapshot has no cells.
func (s *Snapshot) Empty() bool { return len(s.cells) == 0 }

// Columns returns max(x)+1, or 0 for an empty snapshot.
func (s *Snapshot) Columns() int { return s.cols }

// Rows returns max(y)+1, or 0 for an empty snapshot.
func (s *Snapshot) Rows() int { return s.rows }

// MaxDistance returns the largest cell distance.
func (s *Snapshot) MaxDistance() int { return s.maxD }

// Topology returns the topology of the first cell, or UnknownTopology.
func (s *Snapshot) Topology() Topology {
	if len(s.cells) == 0 {
		return UnknownTopology
	}
	return s.cells[0].Topology
}

// Lookup returns the cell at c.
func (s *Snapshot) Lookup(c Coordinates) (Cell, bool) {
	i, ok := s.index[c]
	if !ok {
		return Cell{}, false
	}
	return s.cells[i], true
}

// Neighbor returns the cell across direction d from cell. It reports false
// at the grid edge, for holes in the snapshot, and for directions outside the
// cell's vocabulary.
func (s *Snapshot) Neighbor(cell Cell, d Direction) (Cell, bool) {
	c, ok := NeighborOf(cell.Topology, cell.Shape(), cell.Coordinates(), d)
	if !ok {
		return Cell{}, false
	}
	return s.Lookup(c)
}

// Start returns the start cell.
func (s *Snapshot) Start() (Cell, bool) {
	return s.find(func(c Cell) bool { return c.IsStart })
}

// Goal returns the goal cell.
func (s *Snapshot) Goal() (Cell, bool) {
	return s.find(func(c Cell) bool { return c.IsGoal })
}

// Active returns the cell the player currently occupies.
func (s *Snapshot) Active() (Cell, bool) {
	return s.find(func(c Cell) bool { return c.IsActive })
}

func (s *Snapshot) find(pred func(Cell) bool) (Cell, bool) {
	for _, c := range s.cells {
		if pred(c) {
			return c, true
		}
	}
	return Cell{}, false
}

// SolutionPath returns the cells on the solution path that the player has
// not visited, in ascending distance. Cells with equal distance keep engine
// order.
func (s *Snapshot) SolutionPath() []Cell {
	var path []Cell
	for _, c := range s.cells {
		if c.OnSolutionPath && !c.IsVisited {
			path = append(path, c)
		}
	}
	slices.SortStableFunc(path, func(a, b Cell) int { return a.Distance - b.Distance })
	return path
}

// Validate checks the snapshot invariants: exactly one start, exactly one
// goal, one topology and unique coordinates. Rendering does not require a
// valid snapshot; this is for reporting.
func (s *Snapshot) Validate() error {
	var starts, goals int
	seen := make(map[Coordinates]bool, len(s.cells))
	topo := s.Topology()
	for _, c := range s.cells {
		if c.IsStart {
			starts++
		}
		if c.IsGoal {
			goals++
		}
		if c.Topology != topo {
			return errors.New(errors.ErrCodeInvalidSnapshot, "mixed topologies: %s and %s", topo, c.Topology)
		}
		if c.Distance < 0 {
			return errors.New(errors.ErrCodeInvalidSnapshot, "cell %s has negative distance %d", c.Coordinates(), c.Distance)
		}
		if seen[c.Coordinates()] {
			return errors.New(errors.ErrCodeInvalidSnapshot, "duplicate cell at %s", c.Coordinates())
		}
		seen[c.Coordinates()] = true
	}
	if len(s.cells) == 0 {
		return nil
	}
	if starts != 1 {
		return errors.New(errors.ErrCodeInvalidSnapshot, "expected exactly one start cell, found %d", starts)
	}
	if goals != 1 {
		return errors.New(errors.ErrCodeInvalidSnapshot, "expected exactly one goal cell, found %d", goals)
	}
	return nil
}

// =============================================================================
// Serialization
// =============================================================================

type snapshotJSON struct {
	Cells []Cell `json:"cells"`
}

// MarshalJSON encodes the snapshot as {"cells": [...]}.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	cells := s.cells
	if cells == nil {
		cells = []Cell{}
	}
	return json.Marshal(snapshotJSON{Cells: cells})
}

// UnmarshalJSON accepts either {"cells": [...]} or a bare cell array.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	cells, err := decodeCells(b)
	if err != nil {
		return err
	}
	*s = *NewSnapshot(cells)
	return nil
}

func decodeCells(b []byte) ([]Cell, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var cells []Cell
		if err := json.Unmarshal(trimmed, &cells); err != nil {
			return nil, err
		}
		return cells, nil
	}
	var doc snapshotJSON
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Cells, nil
}

// ReadSnapshot decodes a snapshot from r.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cells, err := decodeCells(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot")
	}
	return NewSnapshot(cells), nil
}

// ReadSnapshotFile decodes the snapshot stored at path.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// WriteSnapshotFile writes s to path as indented JSON.
func WriteSnapshotFile(s *Snapshot, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
