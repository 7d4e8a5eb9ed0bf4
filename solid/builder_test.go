package solid

import (
	"math"
	"testing"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/contour"
)

func ccwSquare(x, y, size float64) []text3d.Point {
	return []text3d.Point{
		text3d.Pt(x, y),
		text3d.Pt(x+size, y),
		text3d.Pt(x+size, y+size),
		text3d.Pt(x, y+size),
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestResolveDepth(t *testing.T) {
	tests := []struct {
		name     string
		declared *float64
		fontSize float64
		want     float64
	}{
		{"undeclared uses font default", nil, 40, 8},
		{"undeclared small font clamps", nil, 1, MinVisibleExtrusion},
		{"declared zero clamps", floatPtr(0), 40, MinVisibleExtrusion},
		{"declared negative clamps", floatPtr(-3), 40, MinVisibleExtrusion},
		{"declared value wins", floatPtr(12), 40, 12},
		{"declared tiny clamps", floatPtr(0.1), 40, MinVisibleExtrusion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDepth(tt.declared, tt.fontSize); got != tt.want {
				t.Errorf("ResolveDepth = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildSquare(t *testing.T) {
	shape := contour.Shape{Outer: ccwSquare(0, 0, 10)}
	g, err := Build(shape, BuildOptions{Depth: floatPtr(4)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g == nil {
		t.Fatal("Build returned nil geometry for a valid shape")
	}
	if g.VertexCount() == 0 || g.TriangleCount() == 0 {
		t.Fatalf("empty mesh: %d vertices, %d triangles",
			g.VertexCount(), g.TriangleCount())
	}

	checkMeshInvariants(t, g)

	if g.Bounds.Min[2] != 0 || g.Bounds.Max[2] != 4 {
		t.Errorf("z extent = %v..%v, want 0..4", g.Bounds.Min[2], g.Bounds.Max[2])
	}
	if g.Bounds.Min[0] != 0 || g.Bounds.Max[0] != 10 {
		t.Errorf("x extent = %v..%v, want 0..10", g.Bounds.Min[0], g.Bounds.Max[0])
	}
}

func TestBuildDefaultDepth(t *testing.T) {
	shape := contour.Shape{Outer: ccwSquare(0, 0, 10)}
	g, err := Build(shape, BuildOptions{FontSize: 40})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Bounds.Max[2] != 8 {
		t.Errorf("default depth for font size 40 = %v, want 8", g.Bounds.Max[2])
	}
}

func TestBuildDegenerate(t *testing.T) {
	shape := contour.Shape{Outer: []text3d.Point{text3d.Pt(0, 0), text3d.Pt(1, 0)}}
	g, err := Build(shape, BuildOptions{Depth: floatPtr(4)})
	if err != nil {
		t.Fatalf("degenerate shape must not error, got %v", err)
	}
	if g != nil {
		t.Error("degenerate shape must yield nil geometry")
	}
}

func TestBuildWithHole(t *testing.T) {
	plain := contour.Shape{Outer: ccwSquare(0, 0, 10)}
	holed := contour.Shape{
		Outer: ccwSquare(0, 0, 10),
		Holes: [][]text3d.Point{ccwSquare(3, 3, 4)},
	}

	gp, err := Build(plain, BuildOptions{Depth: floatPtr(4)})
	if err != nil {
		t.Fatalf("plain Build: %v", err)
	}
	gh, err := Build(holed, BuildOptions{Depth: floatPtr(4)})
	if err != nil {
		t.Fatalf("holed Build: %v", err)
	}

	// The hole adds an inner wall ring and more cap triangles.
	if gh.VertexCount() <= gp.VertexCount() {
		t.Errorf("holed mesh has %d vertices, plain has %d",
			gh.VertexCount(), gp.VertexCount())
	}
	checkMeshInvariants(t, gh)
}

func TestBuildBevel(t *testing.T) {
	shape := contour.Shape{Outer: ccwSquare(0, 0, 10)}
	bevel := &BevelConfig{Thickness: 1, Size: 1, Segments: 2}

	plain, err := Build(shape, BuildOptions{Depth: floatPtr(4)})
	if err != nil {
		t.Fatalf("plain Build: %v", err)
	}
	beveled, err := Build(shape, BuildOptions{
		Depth:       floatPtr(4),
		BevelTop:    bevel,
		BevelBottom: bevel,
	})
	if err != nil {
		t.Fatalf("beveled Build: %v", err)
	}

	if beveled.VertexCount() <= plain.VertexCount() {
		t.Errorf("bevel rings missing: %d vertices vs %d plain",
			beveled.VertexCount(), plain.VertexCount())
	}
	// Bevels reshape the profile but never extend the depth.
	if beveled.Bounds.Max[2] != 4 || beveled.Bounds.Min[2] != 0 {
		t.Errorf("beveled z extent = %v..%v, want 0..4",
			beveled.Bounds.Min[2], beveled.Bounds.Max[2])
	}
	checkMeshInvariants(t, beveled)
}

func TestBuildBevelExceedsDepth(t *testing.T) {
	// Combined bevel thickness above the depth is scaled down to fit
	// rather than producing inverted walls.
	shape := contour.Shape{Outer: ccwSquare(0, 0, 10)}
	g, err := Build(shape, BuildOptions{
		Depth:       floatPtr(2),
		BevelTop:    &BevelConfig{Thickness: 3, Size: 0.5, Segments: 1},
		BevelBottom: &BevelConfig{Thickness: 3, Size: 0.5, Segments: 1},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Bounds.Min[2] != 0 || g.Bounds.Max[2] != 2 {
		t.Errorf("z extent = %v..%v, want 0..2", g.Bounds.Min[2], g.Bounds.Max[2])
	}
	checkMeshInvariants(t, g)
}

// checkMeshInvariants verifies buffer consistency: parallel array lengths,
// index range, UV range, and unit-length normals.
func checkMeshInvariants(t *testing.T, g *Geometry) {
	t.Helper()

	count := g.VertexCount()
	if len(g.Normals) != count*3 {
		t.Fatalf("normals hold %d components for %d vertices", len(g.Normals), count)
	}
	if len(g.UVs) != count*2 {
		t.Fatalf("uvs hold %d components for %d vertices", len(g.UVs), count)
	}
	if len(g.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a triangle multiple", len(g.Indices))
	}

	for i, idx := range g.Indices {
		if int(idx) >= count {
			t.Fatalf("Indices[%d] = %d out of range (%d vertices)", i, idx, count)
		}
	}
	for i := 0; i < count; i++ {
		u, v := g.UVs[i*2], g.UVs[i*2+1]
		if u < -1e-6 || u > 1+1e-6 || v < -1e-6 || v > 1+1e-6 {
			t.Fatalf("UV[%d] = (%v, %v) outside [0, 1]", i, u, v)
		}
		nx := float64(g.Normals[i*3])
		ny := float64(g.Normals[i*3+1])
		nz := float64(g.Normals[i*3+2])
		length := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if math.Abs(length-1) > 1e-3 {
			t.Fatalf("normal %d has length %v", i, length)
		}
	}
}
