package scene3d

import (
	"math"
	"testing"

	"github.com/gogpu/text3d/solid"
)

// stripGeometry builds a flat strip of vertices along X in [0, width] at
// two Y levels, 0 and height.
func stripGeometry(width, height float64, columns int) *solid.Geometry {
	g := &solid.Geometry{}
	for i := 0; i <= columns; i++ {
		x := width * float64(i) / float64(columns)
		g.Positions = append(g.Positions, float32(x), 0, 0)
		g.Positions = append(g.Positions, float32(x), float32(height), 0)
		g.Normals = append(g.Normals, 0, 0, 1, 0, 0, 1)
		g.UVs = append(g.UVs, 0, 0, 0, 0)
	}
	b := solid.EmptyBox3()
	b.ExtendPoint(0, 0, 0)
	b.ExtendPoint(width, height, 0)
	g.Bounds = b
	return g
}

func TestApplyWarpArch(t *testing.T) {
	g := stripGeometry(100, 10, 4)
	applyWarp(g, TextWarpConfig{Kind: WarpArch, Amount: 5})

	// The midpoint rises by the full amount, the endpoints stay put.
	var midY, endY float64
	for i := 0; i < g.VertexCount(); i++ {
		x := float64(g.Positions[i*3])
		y := float64(g.Positions[i*3+1])
		if x == 50 && y > midY {
			midY = y
		}
		if x == 0 && y > endY {
			endY = y
		}
	}
	if math.Abs(midY-15) > 1e-5 {
		t.Errorf("arch midpoint top = %v, want 15", midY)
	}
	if math.Abs(endY-10) > 1e-5 {
		t.Errorf("arch endpoint top = %v, want unchanged 10", endY)
	}

	if g.Bounds.Max[1] < 14.9 {
		t.Errorf("bounds not recomputed after warp: maxY = %v", g.Bounds.Max[1])
	}
}

func TestApplyWarpWave(t *testing.T) {
	g := stripGeometry(100, 10, 4)
	applyWarp(g, TextWarpConfig{Kind: WarpWave, Amount: 5})

	// A full sine period: the quarter point rises, the three-quarter
	// point dips below the original baseline.
	for i := 0; i < g.VertexCount(); i++ {
		x := float64(g.Positions[i*3])
		y := float64(g.Positions[i*3+1])
		if x == 25 && y < 4.9 {
			t.Errorf("wave at x=25 y=%v, want raised by 5", y)
		}
	}
	if g.Bounds.Min[1] > -4.9 {
		t.Errorf("wave trough missing: minY = %v", g.Bounds.Min[1])
	}
}

func TestApplyWarpSlant(t *testing.T) {
	g := stripGeometry(100, 10, 2)
	applyWarp(g, TextWarpConfig{Kind: WarpSlant, Amount: 0.5})

	// Bottom row unmoved, top row sheared right by amount * height.
	for i := 0; i < g.VertexCount(); i++ {
		x := float64(g.Positions[i*3])
		y := float64(g.Positions[i*3+1])
		if y == 0 && x > 100 {
			t.Errorf("bottom row moved: x = %v", x)
		}
		if y == 10 && x < 5 {
			t.Errorf("top row not sheared: x = %v", x)
		}
	}
	if g.Bounds.Max[0] < 104.9 {
		t.Errorf("sheared maxX = %v, want 105", g.Bounds.Max[0])
	}
}

func TestApplyWarpNoop(t *testing.T) {
	g := stripGeometry(100, 10, 2)
	before := append([]float32(nil), g.Positions...)

	applyWarp(g, TextWarpConfig{Kind: WarpArch, Amount: 0})
	for i := range before {
		if g.Positions[i] != before[i] {
			t.Fatal("zero amount must leave positions untouched")
		}
	}

	applyWarp(nil, TextWarpConfig{Kind: WarpArch, Amount: 5})
	applyWarp(&solid.Geometry{}, TextWarpConfig{Kind: WarpArch, Amount: 5})
}

func TestApplyWarpKeepsUVs(t *testing.T) {
	g := stripGeometry(100, 10, 4)
	g.NormalizeUVs()
	before := append([]float32(nil), g.UVs...)

	applyWarp(g, TextWarpConfig{Kind: WarpArch, Amount: 5})
	for i := range before {
		if g.UVs[i] != before[i] {
			t.Fatal("warp must keep the pre-warp UV mapping")
		}
	}
}
