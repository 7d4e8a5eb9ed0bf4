package outline

import (
	"sort"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/contour"
)

// SegmentOp is the type of outline path operation.
type SegmentOp uint8

const (
	// OpMoveTo starts a new contour at the target point.
	OpMoveTo SegmentOp = iota
	// OpLineTo draws a line to the target point.
	OpLineTo
	// OpQuadTo draws a quadratic bezier curve.
	OpQuadTo
	// OpCubicTo draws a cubic bezier curve.
	OpCubicTo
)

// Segment is one outline path segment in layout pixels.
//   - MoveTo/LineTo: Args[0] is the target point
//   - QuadTo: Args[0] is the control, Args[1] the target
//   - CubicTo: Args[0], Args[1] are controls, Args[2] the target
type Segment struct {
	Op   SegmentOp
	Args [3]text3d.Point
}

// curveSteps is the fixed subdivision count for flattening bezier curves
// into polylines. Extruded text is viewed at presentation scale, so a
// fixed count is sufficient and keeps geometry deterministic.
const curveSteps = 8

// FlattenSegments converts an outline's segments into closed polyline
// contours. A MoveTo starts a new contour; curves are subdivided with a
// fixed step count. A closing point that duplicates the start is removed.
// Contours left with fewer than three points are dropped silently.
func FlattenSegments(segs []Segment) [][]text3d.Point {
	var contours [][]text3d.Point
	var current []text3d.Point
	var pen text3d.Point

	flush := func() {
		if len(current) > 1 && current[0] == current[len(current)-1] {
			current = current[:len(current)-1]
		}
		if len(current) >= 3 {
			contours = append(contours, current)
		}
		current = nil
	}

	for _, seg := range segs {
		switch seg.Op {
		case OpMoveTo:
			flush()
			pen = seg.Args[0]
			current = append(current, pen)

		case OpLineTo:
			pen = seg.Args[0]
			current = append(current, pen)

		case OpQuadTo:
			c, end := seg.Args[0], seg.Args[1]
			for s := 1; s <= curveSteps; s++ {
				t := float64(s) / curveSteps
				u := 1 - t
				p := pen.Mul(u * u).
					Add(c.Mul(2 * u * t)).
					Add(end.Mul(t * t))
				current = append(current, p)
			}
			pen = end

		case OpCubicTo:
			c1, c2, end := seg.Args[0], seg.Args[1], seg.Args[2]
			for s := 1; s <= curveSteps; s++ {
				t := float64(s) / curveSteps
				u := 1 - t
				p := pen.Mul(u * u * u).
					Add(c1.Mul(3 * u * u * t)).
					Add(c2.Mul(3 * u * t * t)).
					Add(end.Mul(t * t * t))
				current = append(current, p)
			}
			pen = end
		}
	}
	flush()
	return contours
}

// GroupContours partitions flattened contours into shapes by containment:
// a contour contained in an even number of others is an outer boundary; a
// contour contained in an odd number is a hole of its innermost container.
// This is winding-agnostic, matching fonts that mix conventions.
func GroupContours(contours [][]text3d.Point) []contour.Shape {
	n := len(contours)
	if n == 0 {
		return nil
	}

	type info struct {
		index int
		area  float64 // absolute area
		depth int
	}
	infos := make([]info, n)
	for i, c := range contours {
		area := contour.SignedArea(c)
		if area < 0 {
			area = -area
		}
		infos[i] = info{index: i, area: area}
	}

	containedBy := func(i, j int) bool {
		// A strictly larger contour can contain a smaller one; test a
		// representative vertex.
		return infos[j].area > infos[i].area &&
			contour.Contains(contours[j], contours[i][0])
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && containedBy(i, j) {
				infos[i].depth++
			}
		}
	}

	// Assign each odd-depth contour to its innermost even-depth container.
	shapes := make([]contour.Shape, 0, n)
	outerShape := make(map[int]int, n)
	for i := 0; i < n; i++ {
		if infos[i].depth%2 == 0 {
			outerShape[i] = len(shapes)
			shapes = append(shapes, contour.Shape{Outer: contours[i]})
		}
	}
	for i := 0; i < n; i++ {
		if infos[i].depth%2 == 0 {
			continue
		}
		containers := make([]info, 0, 2)
		for j := 0; j < n; j++ {
			if i != j && infos[j].depth%2 == 0 && containedBy(i, j) {
				containers = append(containers, infos[j])
			}
		}
		if len(containers) == 0 {
			// Odd depth but no even-depth container: treat as its own
			// outer rather than losing geometry.
			shapes = append(shapes, contour.Shape{Outer: contours[i]})
			continue
		}
		sort.Slice(containers, func(a, b int) bool {
			return containers[a].area < containers[b].area
		})
		si := outerShape[containers[0].index]
		shapes[si].Holes = append(shapes[si].Holes, contours[i])
	}
	return shapes
}
