package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/mazer/pkg/cache"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/observability"
)

// Load returns opts.Snapshot, or reads and decodes opts.Input.
func Load(ctx context.Context, opts Options) (*maze.Snapshot, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	source := opts.Input
	if opts.Snapshot != nil {
		source = "memory"
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	s := opts.Snapshot
	var err error
	if s == nil {
		s, err = maze.ReadSnapshotFile(opts.Input)
	}
	cells := 0
	if s != nil {
		cells = s.Len()
	}
	hooks.OnLoadComplete(ctx, source, cells, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if verr := s.Validate(); verr != nil {
		opts.Logger.Warn("snapshot is not well formed; rendering anyway", "error", verr)
	}
	return s, nil
}

// SnapshotHash is the content hash of a snapshot's JSON encoding.
func SnapshotHash(s *maze.Snapshot) string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
