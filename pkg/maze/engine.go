package maze

import "context"

// Engine is the boundary to the maze generator. Generation, pathfinding and
// move validation live behind it; this module only consumes the snapshots it
// returns.
type Engine interface {
	// Generate builds a maze and returns a handle for later moves.
	Generate(ctx context.Context, req Request) (Handle, *Snapshot, error)

	// Move applies a player move and returns the resulting snapshot.
	Move(ctx context.Context, h Handle, d Direction) (*Snapshot, error)

	// SolutionPathOrder returns the solution path from start to goal.
	SolutionPathOrder(ctx context.Context, h Handle) ([]Coordinates, error)

	// GenerationSteps returns the intermediate snapshots captured when the
	// request set CaptureSteps.
	GenerationSteps(ctx context.Context, h Handle) ([]*Snapshot, error)

	// Destroy releases the grid behind h.
	Destroy(h Handle) error
}

// Handle identifies a grid owned by an Engine.
type Handle uintptr
