package sink

import (
	"context"

	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/render"
)

// RenderPDF renders the layout as PDF via SVG conversion.
func RenderPDF(ctx context.Context, l geometry.Layout, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(l, opts...))
}
