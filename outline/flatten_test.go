package outline

import (
	"testing"

	"github.com/gogpu/text3d"
)

func moveTo(p text3d.Point) Segment {
	return Segment{Op: OpMoveTo, Args: [3]text3d.Point{p}}
}

func lineTo(p text3d.Point) Segment {
	return Segment{Op: OpLineTo, Args: [3]text3d.Point{p}}
}

func squarePoints(x, y, size float64) []text3d.Point {
	return []text3d.Point{
		text3d.Pt(x, y),
		text3d.Pt(x+size, y),
		text3d.Pt(x+size, y+size),
		text3d.Pt(x, y+size),
	}
}

func squareSegments(x, y, size float64) []Segment {
	pts := squarePoints(x, y, size)
	segs := []Segment{moveTo(pts[0])}
	for _, p := range pts[1:] {
		segs = append(segs, lineTo(p))
	}
	// Fonts usually close explicitly back to the start.
	segs = append(segs, lineTo(pts[0]))
	return segs
}

func TestFlattenSegmentsSquare(t *testing.T) {
	contours := FlattenSegments(squareSegments(0, 0, 10))
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	// The explicit closing point back to the start must be removed.
	if len(contours[0]) != 4 {
		t.Fatalf("got %d points, want 4", len(contours[0]))
	}
	for i, want := range squarePoints(0, 0, 10) {
		if contours[0][i] != want {
			t.Errorf("point %d = %v, want %v", i, contours[0][i], want)
		}
	}
}

func TestFlattenSegmentsMultipleContours(t *testing.T) {
	segs := append(squareSegments(0, 0, 10), squareSegments(20, 0, 10)...)
	contours := FlattenSegments(segs)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(contours))
	}
}

func TestFlattenSegmentsQuad(t *testing.T) {
	segs := []Segment{
		moveTo(text3d.Pt(0, 0)),
		{Op: OpQuadTo, Args: [3]text3d.Point{text3d.Pt(5, 10), text3d.Pt(10, 0)}},
		lineTo(text3d.Pt(5, -5)),
	}
	contours := FlattenSegments(segs)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	// Start point, curveSteps subdivision points, final line target.
	if got := len(contours[0]); got != 1+curveSteps+1 {
		t.Errorf("got %d points, want %d", got, 1+curveSteps+1)
	}
	// The curve's last subdivision point is its end point exactly.
	if contours[0][curveSteps] != text3d.Pt(10, 0) {
		t.Errorf("curve end = %v, want (10, 0)", contours[0][curveSteps])
	}
}

func TestFlattenSegmentsCubic(t *testing.T) {
	segs := []Segment{
		moveTo(text3d.Pt(0, 0)),
		{Op: OpCubicTo, Args: [3]text3d.Point{
			text3d.Pt(0, 10), text3d.Pt(10, 10), text3d.Pt(10, 0),
		}},
		lineTo(text3d.Pt(5, -5)),
	}
	contours := FlattenSegments(segs)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	if contours[0][curveSteps] != text3d.Pt(10, 0) {
		t.Errorf("curve end = %v, want (10, 0)", contours[0][curveSteps])
	}
}

func TestFlattenSegmentsDropsShort(t *testing.T) {
	segs := []Segment{
		moveTo(text3d.Pt(0, 0)),
		lineTo(text3d.Pt(1, 0)),
	}
	if contours := FlattenSegments(segs); len(contours) != 0 {
		t.Errorf("two-point contour must be dropped, got %d contours", len(contours))
	}
	if contours := FlattenSegments(nil); contours != nil {
		t.Errorf("no segments must yield no contours")
	}
}

func TestGroupContoursSingle(t *testing.T) {
	shapes := GroupContours([][]text3d.Point{squarePoints(0, 0, 10)})
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	if len(shapes[0].Holes) != 0 {
		t.Errorf("lone contour must have no holes, got %d", len(shapes[0].Holes))
	}
}

func TestGroupContoursHole(t *testing.T) {
	// The letter O: an outer ring with one counter.
	shapes := GroupContours([][]text3d.Point{
		squarePoints(0, 0, 10),
		squarePoints(3, 3, 4),
	})
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	if len(shapes[0].Holes) != 1 {
		t.Fatalf("got %d holes, want 1", len(shapes[0].Holes))
	}
	if shapes[0].Outer[0] != squarePoints(0, 0, 10)[0] {
		t.Error("larger contour must be the outer boundary")
	}
}

func TestGroupContoursNestedIsland(t *testing.T) {
	// A ring with an island inside its counter: outer, hole, and the
	// island as its own filled shape (even containment depth).
	shapes := GroupContours([][]text3d.Point{
		squarePoints(0, 0, 12),
		squarePoints(2, 2, 8),
		squarePoints(4, 4, 4),
	})
	if len(shapes) != 2 {
		t.Fatalf("got %d shapes, want 2", len(shapes))
	}

	var holed, plain int
	for i, s := range shapes {
		if len(s.Holes) == 1 {
			holed++
			if s.Outer[0] != squarePoints(0, 0, 12)[0] {
				t.Errorf("shape %d: hole attached to the wrong outer", i)
			}
		} else if len(s.Holes) == 0 {
			plain++
		}
	}
	if holed != 1 || plain != 1 {
		t.Errorf("got %d holed and %d plain shapes, want 1 and 1", holed, plain)
	}
}

func TestGroupContoursDisjoint(t *testing.T) {
	shapes := GroupContours([][]text3d.Point{
		squarePoints(0, 0, 10),
		squarePoints(20, 0, 10),
	})
	if len(shapes) != 2 {
		t.Fatalf("got %d shapes, want 2", len(shapes))
	}
	for i, s := range shapes {
		if len(s.Holes) != 0 {
			t.Errorf("disjoint shape %d has %d holes", i, len(s.Holes))
		}
	}
}
