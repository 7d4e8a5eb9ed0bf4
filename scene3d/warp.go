package scene3d

import (
	"math"

	"github.com/gogpu/text3d/solid"
)

// WarpKind selects a text-warp deformation.
type WarpKind int

const (
	// WarpArch bows the text upward along its width.
	WarpArch WarpKind = iota
	// WarpWave applies a full sine period along the width.
	WarpWave
	// WarpSlant shears X by vertical position.
	WarpSlant
)

// TextWarpConfig deforms run geometry before placement. Amount is in
// layout pixels for arch and wave, and a shear factor for slant.
type TextWarpConfig struct {
	Kind   WarpKind
	Amount float64
}

// applyWarp deforms the geometry's vertex positions in place and
// recomputes its bounds. Degenerate geometry (zero X range) is left
// untouched.
func applyWarp(g *solid.Geometry, cfg TextWarpConfig) {
	if g == nil || g.VertexCount() == 0 || cfg.Amount == 0 {
		return
	}

	b := g.Bounds
	rangeX := b.Max[0] - b.Min[0]
	rangeY := b.Max[1] - b.Min[1]
	if rangeX <= 0 {
		return
	}

	for i := 0; i < g.VertexCount(); i++ {
		x := float64(g.Positions[i*3])
		y := float64(g.Positions[i*3+1])
		tx := (x - b.Min[0]) / rangeX

		switch cfg.Kind {
		case WarpArch:
			y += cfg.Amount * math.Sin(math.Pi*tx)
		case WarpWave:
			y += cfg.Amount * math.Sin(2*math.Pi*tx)
		case WarpSlant:
			if rangeY > 0 {
				ty := (y - b.Min[1]) / rangeY
				x += cfg.Amount * ty * rangeY
			}
		}

		g.Positions[i*3] = float32(x)
		g.Positions[i*3+1] = float32(y)
	}

	// Bounds changed with the positions; UVs deliberately keep their
	// pre-warp mapping so fills warp with the glyphs.
	box := solid.EmptyBox3()
	for i := 0; i < g.VertexCount(); i++ {
		box.ExtendPoint(
			float64(g.Positions[i*3]),
			float64(g.Positions[i*3+1]),
			float64(g.Positions[i*3+2]),
		)
	}
	g.Bounds = box
}
