package contour

import (
	"github.com/gogpu/text3d"
)

// Shape is one disjoint filled region: an outer boundary plus zero or more
// holes, all as ordered closed point lists. The glyph outline provider
// emits one Shape per sub-contour group (typically per glyph contour tree).
type Shape struct {
	Outer []text3d.Point
	Holes [][]text3d.Point
}

// IsFinite reports whether every coordinate of the shape is a finite
// number. Shapes with NaN or infinite points are skipped by the run
// assembler rather than extruded.
func (s Shape) IsFinite() bool {
	for _, p := range s.Outer {
		if !p.IsFinite() {
			return false
		}
	}
	for _, hole := range s.Holes {
		for _, p := range hole {
			if !p.IsFinite() {
				return false
			}
		}
	}
	return true
}

// BevelPath is an analyzed closed contour ready for beveled extrusion.
type BevelPath struct {
	Points   []ContourPoint
	IsHole   bool
	IsClosed bool
}

// ExtractBevelPaths turns a shape into its ordered list of analyzed paths:
// the outer contour first, then each hole in input order.
//
// An outer contour with fewer than three points invalidates the whole
// shape and yields an empty result. Each hole is evaluated independently:
// an under-sized hole is dropped without affecting the outer contour or
// the other holes. All returned paths are closed.
func ExtractBevelPaths(shape Shape) []BevelPath {
	if len(shape.Outer) < 3 {
		return nil
	}

	paths := make([]BevelPath, 0, 1+len(shape.Holes))
	paths = append(paths, BevelPath{
		Points:   ExtractPathPoints(shape.Outer, false),
		IsHole:   false,
		IsClosed: true,
	})

	for _, hole := range shape.Holes {
		if len(hole) < 3 {
			text3d.Logger().Debug("contour: dropping under-sized hole",
				"points", len(hole))
			continue
		}
		paths = append(paths, BevelPath{
			Points:   ExtractPathPoints(hole, true),
			IsHole:   true,
			IsClosed: true,
		})
	}
	return paths
}
