package sink

import (
	"encoding/json"

	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/maze"
)

type jsonOutput struct {
	Topology    maze.Topology `json:"topology"`
	CellSize    float64       `json:"cell_size"`
	SquareSize  float64       `json:"square_size,omitempty"`
	PixelScale  float64       `json:"pixel_scale"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	StrokeWidth float64       `json:"stroke_width"`
	Background  string        `json:"background"`
	Cells       []jsonCell    `json:"cells"`
}

type jsonCell struct {
	X        int                `json:"x"`
	Y        int                `json:"y"`
	Shape    maze.Orientation   `json:"shape,omitempty"`
	Fill     string             `json:"fill"`
	Distance int                `json:"distance"`
	Revealed bool               `json:"revealed,omitempty"`
	Polygon  []geometry.Point   `json:"polygon"`
	Walls    []geometry.Segment `json:"walls,omitempty"`
}

// RenderJSON exports the layout with resolved fills and stroke width.
func RenderJSON(l geometry.Layout, opts ...Option) ([]byte, error) {
	s := newScene(l, opts...)
	out := jsonOutput{
		Topology:    l.Topology,
		CellSize:    l.CellSize,
		SquareSize:  l.SquareSize,
		PixelScale:  l.PixelScale,
		Width:       l.Width,
		Height:      l.Height,
		StrokeWidth: s.stroke,
		Background:  s.resolver.Background(0).Hex(),
		Cells:       make([]jsonCell, len(l.Cells)),
	}
	for i, c := range l.Cells {
		out.Cells[i] = jsonCell{
			X:        c.Cell.X,
			Y:        c.Cell.Y,
			Shape:    c.Shape,
			Fill:     s.fill(c.Cell).Hex(),
			Distance: c.Cell.Distance,
			Revealed: s.revealed != nil && s.revealed.Contains(c.Cell.Coordinates()),
			Polygon:  c.Polygon,
			Walls:    c.Walls,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
