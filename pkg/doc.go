// Package pkg provides the core libraries for mazer, a maze rendering
// toolkit.
//
// # Overview
//
// Mazer takes a maze snapshot (a list of cells with coordinates, links and
// distances) and turns it into drawings. Five grid families are supported:
// square, triangle, hexagonal, octagon+square and rhombic. The pkg directory
// is organized into three areas:
//
//  1. Domain: [maze], [geometry], [style], [layout], [reveal]
//  2. Output: [render], [render/sink], [render/passage]
//  3. Infrastructure: [pipeline], [cache], [store], [server], [cue]
//
// # Architecture
//
// The typical data flow:
//
//	Snapshot JSON
//	     ↓
//	[maze] package (parse, validate, derive solution)
//	     ↓
//	[layout] package (fit the grid to a display)
//	     ↓
//	[geometry] package (polygons and walls per cell)
//	     ↓
//	[render/sink] package (SVG/PNG/PDF/JSON output)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/mazer/pkg/maze"
//	    "github.com/matzehuels/mazer/pkg/geometry"
//	    "github.com/matzehuels/mazer/pkg/layout"
//	    "github.com/matzehuels/mazer/pkg/render/sink"
//	)
//
//	s, _ := maze.ReadSnapshotFile("maze.json")
//	m, _ := layout.Fit(s.Topology(), s.Columns(), s.Rows(), layout.Display{Width: 800, Height: 600, Scale: 2})
//	l := geometry.ComputeSnapshot(s, s.Topology(), m.CellSize, 2)
//	svg := sink.RenderSVG(l)
//
// Most callers go through [pipeline] instead, which adds caching and
// observability:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Input: "maze.json", Formats: []string{"svg"}})
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [maze]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/maze
// [geometry]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/geometry
// [style]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/style
// [layout]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/layout
// [reveal]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/reveal
// [render]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/render/sink
// [render/passage]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/render/passage
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/server
// [cue]: https://pkg.go.dev/github.com/matzehuels/mazer/pkg/cue
package pkg
