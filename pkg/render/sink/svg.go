package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/style"
)

// RenderSVG draws the layout as a standalone SVG document.
func RenderSVG(l geometry.Layout, opts ...Option) []byte {
	s := newScene(l, opts...)
	m := s.margin
	w, h := l.Width+2*m, l.Height+2*m

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(-m), num(-m), num(w), num(h), w, h)
	fmt.Fprintf(&buf, `  <rect class="background" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(-m), num(-m), num(w), num(h), s.resolver.Background(0).Hex())

	renderCells(&buf, l, s)
	renderWalls(&buf, l, s)
	if s.solutionLine {
		renderSolution(&buf, s.solutionPoints(l), s.stroke)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCells(buf *bytes.Buffer, l geometry.Layout, s scene) {
	buf.WriteString(`  <g class="cells" stroke="none">` + "\n")
	for _, c := range l.Cells {
		fmt.Fprintf(buf, `    <polygon id="cell-%d-%d" points="%s" fill="%s"/>`+"\n",
			c.Cell.X, c.Cell.Y, points(c.Polygon), s.fill(c.Cell).Hex())
	}
	buf.WriteString("  </g>\n")
}

func renderWalls(buf *bytes.Buffer, l geometry.Layout, s scene) {
	var d strings.Builder
	for _, c := range l.Cells {
		for _, w := range c.Walls {
			fmt.Fprintf(&d, "M%s %sL%s %s", num(w.A.X), num(w.A.Y), num(w.B.X), num(w.B.Y))
		}
	}
	if d.Len() == 0 {
		return
	}
	fmt.Fprintf(buf, `  <path class="walls" d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`+"\n",
		d.String(), s.wallColor.Hex(), num(s.stroke))
}

func renderSolution(buf *bytes.Buffer, pts []geometry.Point, stroke float64) {
	if len(pts) < 2 {
		return
	}
	fmt.Fprintf(buf, `  <polyline class="solution" points="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round" opacity="0.8"/>`+"\n",
		points(pts), style.SolutionColor.BlendRgb(style.GoalColor, 0.3).Hex(), num(stroke*1.5))
}

func points(pts []geometry.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
