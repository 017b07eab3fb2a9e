package sink

import (
	"context"

	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/render"
)

// RenderPNG renders the layout as PNG via SVG conversion. scale defaults
// to the layout's pixel scale when non-positive.
func RenderPNG(ctx context.Context, l geometry.Layout, scale float64, opts ...Option) ([]byte, error) {
	if scale <= 0 {
		scale = l.PixelScale
	}
	return render.ToPNG(ctx, RenderSVG(l, opts...), scale)
}
