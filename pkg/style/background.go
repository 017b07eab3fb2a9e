package style

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Background is a named plain fill.
type Background struct {
	Name  string
	Color colorful.Color
}

var backgrounds = []Background{
	{"gray", rgb(230, 230, 230)},
	{"mint", rgb(200, 235, 215)},
	{"peach", rgb(255, 215, 200)},
	{"lavender", rgb(230, 220, 245)},
	{"blue", rgb(215, 230, 255)},
	{"off-white", mustHex("#fff5e6")},
	{"sky", mustHex("#d6ecf3")},
	{"mist", mustHex("#faf9fb")},
}

// DefaultBackground is the first entry of the rotation.
var DefaultBackground = backgrounds[0].Color

// Backgrounds returns the rotation set in order.
func Backgrounds() []Background {
	out := make([]Background, len(backgrounds))
	copy(out, backgrounds)
	return out
}

// BackgroundByName returns the background with the given name.
func BackgroundByName(name string) (Background, bool) {
	norm := normalizeName(name)
	for _, b := range backgrounds {
		if normalizeName(b.Name) == norm {
			return b, true
		}
	}
	return Background{}, false
}

// Rotation hands out backgrounds so that consecutive snapshots never share
// one. It is safe for concurrent use.
type Rotation struct {
	mu   sync.Mutex
	next int
}

// Next returns the next background in the rotation.
func (r *Rotation) Next() Background {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := backgrounds[r.next]
	r.next = (r.next + 1) % len(backgrounds)
	return b
}

const (
	gradientWhite = 0.9
	gradientTint  = 0.17
)

// Gradient returns the background for row y of a rows-tall grid. The top
// row is base lightened 90% towards white, or 17% towards tint when tint
// is set; the fill then blends linearly back to base at the bottom row.
// Grids of one row or fewer get base unchanged.
func Gradient(base colorful.Color, tint *colorful.Color, y, rows int) colorful.Color {
	if rows <= 1 {
		return base
	}
	start := base.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, gradientWhite)
	if tint != nil {
		start = base.BlendRgb(*tint, gradientTint)
	}
	t := float64(min(max(y, 0), rows-1)) / float64(rows-1)
	return start.BlendRgb(base, t).Clamped()
}
