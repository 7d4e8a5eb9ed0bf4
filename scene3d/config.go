package scene3d

import (
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/camera"
	"github.com/gogpu/text3d/material"
	"github.com/gogpu/text3d/solid"
)

// RunSpec describes one styled text run, positioned by the external
// layout engine. X and Y are the run origin in layout pixels with Y
// growing downward; Width is informational for effect sizing.
type RunSpec struct {
	Text string
	Font text3d.FontSpec

	// Fill colors the run's surface. Nil falls back to a plain solid
	// default color.
	Fill text3d.Fill

	X, Y, Width float64

	LetterSpacing  float64
	OpticalKerning bool

	// Per-run post effects; each is a no-op when nil.
	Outline    *EffectConfig
	Shadow     *EffectConfig
	Glow       *EffectConfig
	Reflection *EffectConfig
	SoftEdge   *EffectConfig
}

// EffectConfig is the opaque descriptor handed to the post-effect
// applier. The concrete effect implementations are external; the engine
// only guarantees stage ordering.
type EffectConfig struct {
	Color            text3d.RGBA
	Size             float64
	OffsetX, OffsetY float64
	Alpha            float64
}

// Shape3DConfig carries the 3D shape attributes shared by every run in
// the scene.
type Shape3DConfig struct {
	// ExtrusionHeight is the declared extrusion depth in layout pixels.
	// Nil means undeclared, deferring to the font-size default. A
	// declared zero (flat text) is still clamped up to the minimum
	// visible extrusion.
	ExtrusionHeight *float64

	BevelTop    *solid.BevelConfig
	BevelBottom *solid.BevelConfig

	// Preset selects the material surface finish.
	Preset material.PresetStyle

	// ContourWidth and ContourColor configure the shape-level outline
	// drawn along the bevel-extracted outer paths. Zero width disables
	// the contour stage.
	ContourWidth float64
	ContourColor text3d.RGBA
}

// LightRigPreset names a lighting arrangement.
type LightRigPreset int

const (
	// RigThreePoint is the standard key/fill/back arrangement.
	RigThreePoint LightRigPreset = iota
	// RigFlat is even frontal lighting with minimal shading.
	RigFlat
	// RigHarsh is a single strong directional light.
	RigHarsh
	// RigSoft is low-contrast lighting from two wide sources.
	RigSoft
)

// LightRigConfig is the lighting descriptor: a preset arrangement rotated
// toward a primary direction.
type LightRigConfig struct {
	Preset LightRigPreset

	// Direction is the primary light direction. The zero vector means
	// the default down-forward direction.
	Direction vec3.T
}

// Scene3DConfig enables 3D scene composition: camera, lighting, and the
// flat-text Z offset.
type Scene3DConfig struct {
	Camera   camera.Config
	LightRig LightRigConfig

	// FlatTextZ, when set, is applied as the text group's absolute Z
	// translation after centering.
	FlatTextZ *float64
}

// SceneConfig is one render request: the runs plus scene-wide 3D
// attributes and the target size.
type SceneConfig struct {
	Runs []RunSpec

	Scene3D  *Scene3DConfig
	Shape3D  *Shape3DConfig
	TextWarp *TextWarpConfig

	Width, Height int
	PixelRatio    float64
}

// SizePatch updates the render target dimensions.
type SizePatch struct {
	Width, Height int
	PixelRatio    float64
}

// ScenePatch is a partial scene update. Nil fields leave the current
// configuration unchanged.
type ScenePatch struct {
	Runs     []RunSpec // nil means unchanged
	Scene3D  *Scene3DConfig
	Shape3D  *Shape3DConfig
	TextWarp *TextWarpConfig
	Size     *SizePatch
}

// maxFontSize returns the largest font size across the runs, used to
// derive the default extrusion depth.
func maxFontSize(runs []RunSpec) float64 {
	max := 0.0
	for _, r := range runs {
		if r.Font.Size > max {
			max = r.Font.Size
		}
	}
	return max
}
