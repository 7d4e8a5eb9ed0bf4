// Package material resolves an opaque fill descriptor into the material a
// run mesh is rendered with. Fill resolution beyond solid and gradient
// variants is an external concern; the material itself is an opaque
// descriptor consumed by the rendering backend.
package material

import (
	"fmt"

	"github.com/gogpu/text3d"
)

// PresetStyle selects the surface finish applied on top of the fill.
type PresetStyle int

const (
	// PresetMatte is a diffuse, non-reflective finish.
	PresetMatte PresetStyle = iota
	// PresetPlastic adds a soft specular highlight.
	PresetPlastic
	// PresetMetal is strongly specular with metallic reflectance.
	PresetMetal
	// PresetSoftEdge is matte with wide, soft highlights.
	PresetSoftEdge
)

// DefaultColor is the plain solid color used when a run carries no fill
// descriptor at all.
var DefaultColor = text3d.RGB(0.15, 0.15, 0.15)

// Material describes how a run mesh's surface is shaded.
type Material struct {
	// Fill is the resolved fill; never nil.
	Fill text3d.Fill

	// BaseColor is the representative color (the solid color, or the
	// first gradient stop), used by backends without per-fragment fills.
	BaseColor text3d.RGBA

	// Metallic and Roughness are the preset-derived surface parameters.
	Metallic  float64
	Roughness float64

	// Wireframe renders edges only.
	Wireframe bool
}

// Build resolves a fill descriptor and preset style into a material.
//
// A nil fill falls back to a plain solid default color. Dispatch over the
// fill variants is exhaustive: an unknown Fill implementation is a
// configuration error.
func Build(fill text3d.Fill, preset PresetStyle, wireframe bool) (*Material, error) {
	m := &Material{Wireframe: wireframe}

	switch f := fill.(type) {
	case nil:
		m.Fill = text3d.SolidFill{Color: DefaultColor}
		m.BaseColor = DefaultColor
	case text3d.SolidFill:
		m.Fill = f
		m.BaseColor = f.Color
	case text3d.GradientFill:
		m.Fill = f
		m.BaseColor = f.ColorAt(0)
	default:
		return nil, fmt.Errorf("material: unsupported fill type %T", fill)
	}

	switch preset {
	case PresetMatte:
		m.Metallic, m.Roughness = 0, 0.9
	case PresetPlastic:
		m.Metallic, m.Roughness = 0, 0.35
	case PresetMetal:
		m.Metallic, m.Roughness = 0.85, 0.25
	case PresetSoftEdge:
		m.Metallic, m.Roughness = 0, 0.7
	default:
		return nil, fmt.Errorf("material: unknown preset style %d", preset)
	}

	return m, nil
}
