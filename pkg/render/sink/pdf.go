package sink

import (
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
)

// RenderPDF renders rec as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(rec *draw.Recorder, s geom.Surface, opts ...Option) ([]byte, error) {
	return render.ToPDF(RenderSVG(rec, s, opts...))
}
