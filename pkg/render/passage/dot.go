package passage

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/style"
)

// Options configures passage graph export.
type Options struct {
	// Detailed adds distance to node labels.
	Detailed bool
	// Pinned fixes each node at its grid position.
	Pinned bool
}

// Edge is an open passage between two cells. OneSided is set when only
// one of the cells reports the link.
type Edge struct {
	From, To maze.Coordinates
	OneSided bool
	Solution bool
}

// Edges lists every passage once, ordered by From then To. Links whose
// neighbour is missing are dropped.
func Edges(s *maze.Snapshot) []Edge {
	type key struct{ a, b maze.Coordinates }
	seen := make(map[key]int)
	var edges []Edge

	t := s.Topology()
	for _, cell := range s.Cells() {
		cell.Topology = t
		for _, d := range cell.Linked.Slice() {
			nc, ok := maze.NeighborOf(t, cell.Shape(), cell.Coordinates(), d)
			if !ok {
				continue
			}
			n, ok := s.Lookup(nc)
			if !ok {
				continue
			}
			a, b := cell.Coordinates(), nc
			if less(b, a) {
				a, b = b, a
			}
			k := key{a, b}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = len(edges)
			n.Topology = t
			edges = append(edges, Edge{
				From:     a,
				To:       b,
				OneSided: !n.Links(d.Opposite()),
				Solution: cell.OnSolutionPath && n.OnSolutionPath,
			})
		}
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		if c := compareCoords(x.From, y.From); c != 0 {
			return c
		}
		return compareCoords(x.To, y.To)
	})
	return edges
}

func compareCoords(a, b maze.Coordinates) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

func less(a, b maze.Coordinates) bool { return compareCoords(a, b) < 0 }

func nodeID(c maze.Coordinates) string {
	return fmt.Sprintf("c%d_%d", c.X, c.Y)
}

// ToDOT converts a snapshot to an undirected Graphviz graph.
func ToDOT(s *maze.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph maze {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.4, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	cells := s.Cells()
	slices.SortFunc(cells, func(a, b maze.Cell) int { return compareCoords(a.Coordinates(), b.Coordinates()) })
	for _, c := range cells {
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(c.Coordinates()), strings.Join(fmtAttrs(c, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range Edges(s) {
		var attrs []string
		if e.Solution {
			attrs = append(attrs, fmt.Sprintf("color=%q", style.SolutionColor.Hex()))
		}
		if e.OneSided {
			attrs = append(attrs, "style=dashed")
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %s -- %s [%s];\n", nodeID(e.From), nodeID(e.To), strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %s -- %s;\n", nodeID(e.From), nodeID(e.To))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c maze.Cell, detailed bool) string {
	label := fmt.Sprintf("%d,%d", c.X, c.Y)
	if detailed {
		label += fmt.Sprintf("\nd=%d", c.Distance)
	}
	return label
}

func fmtAttrs(c maze.Cell, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, opts.Detailed))}
	switch {
	case c.IsStart:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", style.StartColor.Hex()), "fontcolor=white")
	case c.IsGoal:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", style.GoalColor.Hex()), "fontcolor=white")
	case c.OnSolutionPath:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", style.SolutionColor.Hex()))
	}
	if opts.Pinned {
		attrs = append(attrs, fmt.Sprintf("pos=\"%d,%d!\"", c.X, -c.Y))
	}
	return attrs
}

// RenderSVG lays out a DOT graph with Graphviz and returns SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with a
// plain one sized from the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
