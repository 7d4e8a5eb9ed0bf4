// Package outline defines the glyph outline provider boundary: given a
// run's text and font, a Provider returns one contour.Shape per disjoint
// sub-contour group (typically per glyph contour tree).
//
// SFNTProvider is the default implementation, backed by HarfBuzz shaping
// (go-text/typesetting) and sfnt outline extraction (golang.org/x/image).
package outline

import (
	"context"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/contour"
)

// LayoutOptions carries the per-run styling that affects glyph placement.
type LayoutOptions struct {
	// LetterSpacing is extra advance inserted after each glyph,
	// in layout pixels.
	LetterSpacing float64

	// OpticalKerning applies the font's pair-kerning on top of shaping
	// as an additional optical adjustment.
	OpticalKerning bool
}

// Provider lays out text and extracts glyph contours.
//
// Implementations may be arbitrarily latent (off-thread, remote); callers
// pass a context and must tolerate per-call failure. Results are ordered
// deterministically: glyphs in visual order, contours in outline order.
type Provider interface {
	LayoutText(ctx context.Context, text string, font text3d.FontSpec, opts LayoutOptions) ([]contour.Shape, error)
}
