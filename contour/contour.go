// Package contour provides winding analysis and inward-normal extraction
// for closed 2D polygons, and turns a contour tree (outer boundary plus
// holes) into the ordered bevel paths the solid builder extrudes.
package contour

import (
	"github.com/gogpu/text3d"
)

// ContourPoint is a contour vertex paired with its inward unit normal.
//
// For an outer contour the normal points toward the filled interior; for a
// hole it points toward the surrounding solid. Normals are always finite
// and unit-length.
type ContourPoint struct {
	Position text3d.Point
	Normal   text3d.Point
}

// SignedArea computes the shoelace area of a closed polygon.
// Positive means counterclockwise winding, negative clockwise,
// and near zero a degenerate or collinear contour.
func SignedArea(points []text3d.Point) float64 {
	if len(points) < 3 {
		return 0
	}
	area := 0.0
	for i := range points {
		p := points[i]
		q := points[(i+1)%len(points)]
		area += p.Cross(q)
	}
	return area / 2
}

// ExtractPathPoints computes one ContourPoint per input vertex.
//
// Each normal is the normalized bisector of the two adjacent edge
// perpendiculars. The inward direction is resolved from the measured
// winding combined with isHole, so the result is consistent regardless of
// the winding the caller supplies: an outer contour's normals point toward
// the fill, a hole's normals point toward the surrounding solid.
//
// Fewer than three points yields nil. Zero-length edges fall back to the
// single usable adjacent-edge normal, so degenerate input never produces
// NaN or infinite normals.
func ExtractPathPoints(points []text3d.Point, isHole bool) []ContourPoint {
	n := len(points)
	if n < 3 {
		return nil
	}

	// The left perpendicular of travel points inward for counterclockwise
	// winding. Flip for clockwise, and flip again for holes.
	sign := 1.0
	if SignedArea(points) < 0 {
		sign = -1
	}
	if isHole {
		sign = -sign
	}

	result := make([]ContourPoint, n)
	for i := 0; i < n; i++ {
		prev := points[(i-1+n)%n]
		curr := points[i]
		next := points[(i+1)%n]

		n0 := curr.Sub(prev).Perp().Normalize()
		n1 := next.Sub(curr).Perp().Normalize()

		normal := n0.Add(n1).Normalize()
		if normal == (text3d.Point{}) {
			// Collinear reversal or zero-length edge: the bisector
			// vanishes. Use whichever adjacent edge still has a
			// direction.
			switch {
			case n1 != (text3d.Point{}):
				normal = n1
			case n0 != (text3d.Point{}):
				normal = n0
			default:
				normal = text3d.Pt(1, 0)
			}
		}

		result[i] = ContourPoint{
			Position: curr,
			Normal:   normal.Mul(sign),
		}
	}
	return result
}

// Contains reports whether p lies inside the polygon using ray casting.
// Points exactly on an edge may report either way.
func Contains(poly []text3d.Point, p text3d.Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
