// Package solid builds renderable 3D solids from analyzed glyph contours:
// tessellated front/back caps, side walls, and optional chamfered bevel
// rings, with UVs normalized to the solid's own bounding box.
package solid

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Geometry is a mesh buffer: interleaved-free position/normal/uv arrays
// plus a triangle index array and an axis-aligned bounding box.
//
// Positions and Normals hold three float32 per vertex, UVs two. A Geometry
// is exclusively owned by the mesh node that built it until it is replaced
// or disposed.
type Geometry struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
	Bounds    Box3
}

// VertexCount returns the number of vertices in the buffer.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of triangles in the index buffer.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Release frees the geometry's buffers. The geometry is unusable afterwards.
func (g *Geometry) Release() {
	g.Positions = nil
	g.Normals = nil
	g.UVs = nil
	g.Indices = nil
	g.Bounds = EmptyBox3()
}

// NormalizeUVs recomputes every vertex's UV from its own position as
// ((x-minX)/rangeX, (y-minY)/rangeY), where the bounds are taken over the
// geometry's current positions. This makes gradient fills cover the whole
// bounding box consistently across cap and side faces.
//
// A degenerate bounding box (either range <= 0) leaves the UVs untouched.
func (g *Geometry) NormalizeUVs() {
	count := g.VertexCount()
	if count == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i < count; i++ {
		x := float64(g.Positions[i*3])
		y := float64(g.Positions[i*3+1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX <= 0 || rangeY <= 0 {
		return
	}

	if g.UVs == nil {
		g.UVs = make([]float32, count*2)
	}
	for i := 0; i < count; i++ {
		x := float64(g.Positions[i*3])
		y := float64(g.Positions[i*3+1])
		g.UVs[i*2] = float32((x - minX) / rangeX)
		g.UVs[i*2+1] = float32((y - minY) / rangeY)
	}
}

// computeBounds recomputes the bounding box from the position buffer.
func (g *Geometry) computeBounds() {
	box := EmptyBox3()
	for i := 0; i < g.VertexCount(); i++ {
		box.ExtendPoint(
			float64(g.Positions[i*3]),
			float64(g.Positions[i*3+1]),
			float64(g.Positions[i*3+2]),
		)
	}
	g.Bounds = box
}

// Box3 is an axis-aligned 3D bounding box.
type Box3 struct {
	Min, Max vec3.T
}

// EmptyBox3 returns a box that contains nothing. Extending it with any
// point yields a box containing exactly that point.
func EmptyBox3() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: vec3.T{inf, inf, inf},
		Max: vec3.T{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains nothing.
func (b Box3) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// ExtendPoint grows the box to include the given point.
func (b *Box3) ExtendPoint(x, y, z float64) {
	b.Min[0] = math.Min(b.Min[0], x)
	b.Min[1] = math.Min(b.Min[1], y)
	b.Min[2] = math.Min(b.Min[2], z)
	b.Max[0] = math.Max(b.Max[0], x)
	b.Max[1] = math.Max(b.Max[1], y)
	b.Max[2] = math.Max(b.Max[2], z)
}

// Union returns the smallest box containing both boxes.
func (b Box3) Union(o Box3) Box3 {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	out := b
	out.ExtendPoint(o.Min[0], o.Min[1], o.Min[2])
	out.ExtendPoint(o.Max[0], o.Max[1], o.Max[2])
	return out
}

// Size returns the box extents along each axis, or the zero vector for an
// empty box.
func (b Box3) Size() vec3.T {
	if b.IsEmpty() {
		return vec3.T{}
	}
	return vec3.Sub(&b.Max, &b.Min)
}

// Center returns the box midpoint, or the zero vector for an empty box.
func (b Box3) Center() vec3.T {
	if b.IsEmpty() {
		return vec3.T{}
	}
	return vec3.T{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Translated returns the box shifted by the given offset.
func (b Box3) Translated(offset vec3.T) Box3 {
	if b.IsEmpty() {
		return b
	}
	return Box3{
		Min: vec3.Add(&b.Min, &offset),
		Max: vec3.Add(&b.Max, &offset),
	}
}

// Scaled returns the box scaled componentwise about the origin.
// Scale factors are expected to be positive.
func (b Box3) Scaled(s vec3.T) Box3 {
	if b.IsEmpty() {
		return b
	}
	return Box3{
		Min: vec3.T{b.Min[0] * s[0], b.Min[1] * s[1], b.Min[2] * s[2]},
		Max: vec3.T{b.Max[0] * s[0], b.Max[1] * s[1], b.Max[2] * s[2]},
	}
}
