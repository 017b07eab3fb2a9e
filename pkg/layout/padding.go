package layout

import "math"

type deviceInset struct {
	Width, Height, Padding float64
}

// Known portrait screens and the horizontal inset that centres a triangle
// grid on each.
var deviceInsets = []deviceInset{
	{375, 667, 46},
	{375, 812, 34},
	{390, 844, 38},
	{393, 852, 43},
	{402, 875, 41},
	{414, 896, 45},
	{428, 926, 51},
	{430, 932, 52},
	{440, 956, 53},
}

const (
	insetMatchDistance = 50.0
	minTrianglePadding = 20.0
	fallbackPadding    = 0.10
	maxPaddingRatio    = 0.15
)

// TrianglePadding returns the horizontal inset for triangle grids. The
// closest known screen by Manhattan distance supplies it when that screen
// is within 50 points; otherwise it is 10% of the width. The result is
// capped at 0.15·width, but never below 20 even on very narrow displays.
func TrianglePadding(d Display) float64 {
	p := d.Width * fallbackPadding
	best := math.Inf(1)
	for _, s := range deviceInsets {
		dist := math.Abs(d.Width-s.Width) + math.Abs(d.Height-s.Height)
		if dist < best {
			best = dist
			if dist < insetMatchDistance {
				p = s.Padding
			}
		}
	}
	return max(minTrianglePadding, min(p, d.Width*maxPaddingRatio))
}
