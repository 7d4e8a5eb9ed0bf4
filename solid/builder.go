package solid

import (
	"fmt"
	"math"

	libtess2 "github.com/hajimehoshi/go-libtess2"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/contour"
)

// MinVisibleExtrusion is the smallest extrusion depth ever built, in layout
// pixels. A zero-depth solid cannot be rendered in 3D, so even a declared
// depth of 0 (flat text) is clamped up to this value.
const MinVisibleExtrusion = 0.5

// BevelConfig describes one chamfered edge between a cap and the side
// walls. Thickness is the extent along the extrusion axis, Size the inward
// offset of the cap boundary, and Segments the number of intermediate
// rings forming the chamfer profile.
type BevelConfig struct {
	Thickness float64
	Size      float64
	Segments  int
}

func (c *BevelConfig) enabled() bool {
	return c != nil && (c.Thickness > 0 || c.Size > 0)
}

// BuildOptions configures extrusion of one shape.
type BuildOptions struct {
	// Depth is the declared extrusion depth in layout pixels.
	// Nil means no depth was declared and the font-size default applies.
	Depth *float64

	// FontSize is the largest font size of the run, used to derive the
	// default depth when none is declared.
	FontSize float64

	// BevelTop and BevelBottom independently configure the chamfer at the
	// front (viewer-facing) and back cap. Nil disables the bevel.
	BevelTop    *BevelConfig
	BevelBottom *BevelConfig
}

// ResolveDepth applies the extrusion-depth policy: a declared depth is
// clamped to at least MinVisibleExtrusion; an undeclared depth defaults to
// max(0.2 x fontSize, MinVisibleExtrusion).
func ResolveDepth(declared *float64, fontSize float64) float64 {
	if declared == nil {
		return math.Max(0.2*fontSize, MinVisibleExtrusion)
	}
	return math.Max(*declared, MinVisibleExtrusion)
}

// Build extrudes one shape into a 3D solid: tessellated front and back
// caps, side walls per boundary edge, and optional bevel rings between
// cap and wall. The back cap sits at z=0, the front cap at z=depth.
//
// A shape whose outer contour has fewer than three points is degenerate
// and yields (nil, nil): it is dropped, not an error. Tessellation
// failures are returned as errors.
//
// The returned geometry has its UVs normalized to its own position bounds.
func Build(shape contour.Shape, opts BuildOptions) (*Geometry, error) {
	paths := contour.ExtractBevelPaths(shape)
	if len(paths) == 0 {
		return nil, nil
	}

	depth := ResolveDepth(opts.Depth, opts.FontSize)
	top := normalizeBevel(opts.BevelTop)
	bot := normalizeBevel(opts.BevelBottom)

	// Bevels must fit inside the depth; scale both down proportionally
	// when they overlap.
	if total := top.Thickness + bot.Thickness; total > depth {
		scale := depth / total
		top.Thickness *= scale
		bot.Thickness *= scale
	}

	g := &Geometry{}
	b := meshWriter{g: g}

	zBot := bot.Thickness
	zTop := depth - top.Thickness

	// Front cap at z=depth, inset by the top bevel size.
	frontTris, frontVerts, err := tessellateCaps(paths, top.Size)
	if err != nil {
		return nil, err
	}
	b.addCap(frontTris, frontVerts, depth, 1)

	// Back cap at z=0, inset by the bottom bevel size. Reuse the front
	// tessellation when the insets agree.
	backTris, backVerts := frontTris, frontVerts
	if bot.Size != top.Size {
		backTris, backVerts, err = tessellateCaps(paths, bot.Size)
		if err != nil {
			return nil, err
		}
	}
	b.addCap(backTris, backVerts, 0, -1)

	for _, path := range paths {
		b.addWall(path, zBot, zTop)
		if top.Segments > 0 && top.enabled() {
			b.addBevelRings(path, top, zTop, depth, 1)
		}
		if bot.Segments > 0 && bot.enabled() {
			b.addBevelRings(path, bot, zBot, 0, -1)
		}
	}

	g.computeBounds()
	g.NormalizeUVs()

	text3d.Logger().Debug("solid: built shape",
		"vertices", g.VertexCount(),
		"triangles", g.TriangleCount(),
		"depth", depth)
	return g, nil
}

// normalizeBevel resolves a nil config to a disabled zero bevel and an
// enabled config without an explicit segment count to a single segment.
func normalizeBevel(c *BevelConfig) BevelConfig {
	if c == nil {
		return BevelConfig{}
	}
	out := *c
	if out.Segments < 1 && c.enabled() {
		out.Segments = 1
	}
	return out
}

// tessellateCaps triangulates the outer-minus-holes region of the paths,
// with each boundary offset inward by inset along its vertex normals.
// Even-odd winding makes hole subtraction independent of input winding.
func tessellateCaps(paths []contour.BevelPath, inset float64) ([]int, []libtess2.Vertex, error) {
	contours := make([]libtess2.Contour, 0, len(paths))
	for _, path := range paths {
		c := make(libtess2.Contour, len(path.Points))
		for i, cp := range path.Points {
			q := cp.Position
			if inset != 0 {
				q = q.Add(cp.Normal.Mul(inset))
			}
			c[i] = libtess2.Vertex{X: float32(q.X), Y: float32(q.Y)}
		}
		contours = append(contours, c)
	}

	elements, vertices, err := libtess2.Tesselate(contours, libtess2.WindingRuleOdd)
	if err != nil {
		return nil, nil, fmt.Errorf("solid: cap tessellation failed: %w", err)
	}
	return elements, vertices, nil
}

// meshWriter appends vertices and triangles to a growing geometry.
type meshWriter struct {
	g *Geometry
}

func (w *meshWriter) addVertex(x, y, z, nx, ny, nz float64) uint32 {
	idx := uint32(w.g.VertexCount())
	w.g.Positions = append(w.g.Positions, float32(x), float32(y), float32(z))
	w.g.Normals = append(w.g.Normals, float32(nx), float32(ny), float32(nz))
	w.g.UVs = append(w.g.UVs, 0, 0) // rewritten by NormalizeUVs
	return idx
}

func (w *meshWriter) addTriangle(a, b, c uint32) {
	w.g.Indices = append(w.g.Indices, a, b, c)
}

// addCap appends a tessellated cap at the given z. zNormal is +1 for the
// front cap and -1 for the back cap; triangle orientation is fixed up so
// each face winds counterclockwise when viewed from its normal side.
func (w *meshWriter) addCap(tris []int, verts []libtess2.Vertex, z, zNormal float64) {
	base := uint32(w.g.VertexCount())
	for _, v := range verts {
		w.addVertex(float64(v.X), float64(v.Y), z, 0, 0, zNormal)
	}
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		va, vb, vc := verts[a], verts[b], verts[c]
		// 2D signed area of the triangle; positive means CCW from +z.
		area := (float64(vb.X)-float64(va.X))*(float64(vc.Y)-float64(va.Y)) -
			(float64(vc.X)-float64(va.X))*(float64(vb.Y)-float64(va.Y))
		if (area >= 0) == (zNormal > 0) {
			w.addTriangle(base+uint32(a), base+uint32(b), base+uint32(c))
		} else {
			w.addTriangle(base+uint32(a), base+uint32(c), base+uint32(b))
		}
	}
}

// addWall appends one side-wall quad per boundary edge, spanning
// z in [zBot, zTop]. Wall normals are the per-vertex outward directions,
// giving smooth shading around curved contours.
func (w *meshWriter) addWall(path contour.BevelPath, zBot, zTop float64) {
	n := len(path.Points)
	if n < 3 || zTop <= zBot {
		return
	}

	base := uint32(w.g.VertexCount())
	for _, cp := range path.Points {
		out := cp.Normal.Mul(-1) // outward = away from the solid
		w.addVertex(cp.Position.X, cp.Position.Y, zBot, out.X, out.Y, 0)
		w.addVertex(cp.Position.X, cp.Position.Y, zTop, out.X, out.Y, 0)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		b0 := base + uint32(i*2)
		t0 := b0 + 1
		b1 := base + uint32(j*2)
		t1 := b1 + 1
		w.addTriangle(b0, b1, t1)
		w.addTriangle(b0, t1, t0)
	}
}

// addBevelRings appends the chamfer between a wall edge at wallZ and the
// cap at capZ. Ring r at fraction t=r/segments is offset inward by
// size*t and placed t of the way from wallZ to capZ; ring normals blend
// from the outward wall direction into the cap normal.
func (w *meshWriter) addBevelRings(path contour.BevelPath, cfg BevelConfig, wallZ, capZ, zNormal float64) {
	n := len(path.Points)
	if n < 3 {
		return
	}

	segments := cfg.Segments
	base := uint32(w.g.VertexCount())
	for r := 0; r <= segments; r++ {
		t := float64(r) / float64(segments)
		z := wallZ + (capZ-wallZ)*t
		for _, cp := range path.Points {
			q := cp.Position.Add(cp.Normal.Mul(cfg.Size * t))
			out := cp.Normal.Mul(-(1 - t))
			nz := zNormal * t
			length := math.Sqrt(out.X*out.X + out.Y*out.Y + nz*nz)
			if length == 0 {
				length = 1
			}
			w.addVertex(q.X, q.Y, z, out.X/length, out.Y/length, nz/length)
		}
	}
	for r := 0; r < segments; r++ {
		ring0 := base + uint32(r*n)
		ring1 := base + uint32((r+1)*n)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			a0 := ring0 + uint32(i)
			a1 := ring0 + uint32(j)
			c0 := ring1 + uint32(i)
			c1 := ring1 + uint32(j)
			w.addTriangle(a0, a1, c1)
			w.addTriangle(a0, c1, c0)
		}
	}
}
