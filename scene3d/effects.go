package scene3d

import (
	"github.com/gogpu/text3d/contour"
	"github.com/gogpu/text3d/material"
	"github.com/gogpu/text3d/solid"
)

// EffectStage identifies one post-effect stage. Stages always run in the
// declared order; a stage whose config is absent is skipped.
type EffectStage int

const (
	// StageContour draws the shape-level outline along the
	// bevel-extracted outer paths.
	StageContour EffectStage = iota
	// StageOutline draws the per-run outline.
	StageOutline
	// StageShadow casts the run's shadow.
	StageShadow
	// StageGlow adds the outer glow.
	StageGlow
	// StageReflection mirrors the run below its baseline.
	StageReflection
	// StageSoftEdge feathers the run's silhouette.
	StageSoftEdge
)

// String returns the stage name.
func (s EffectStage) String() string {
	switch s {
	case StageContour:
		return "contour"
	case StageOutline:
		return "outline"
	case StageShadow:
		return "shadow"
	case StageGlow:
		return "glow"
	case StageReflection:
		return "reflection"
	case StageSoftEdge:
		return "softEdge"
	default:
		return "unknown"
	}
}

// ShapeContext supplies the geometry provenance an effect stage needs:
// the run's shapes, their bevel-extracted paths, and the extrusion
// parameters they were built with.
type ShapeContext struct {
	Shapes      []contour.Shape
	Paths       [][]contour.BevelPath
	BevelTop    *solid.BevelConfig
	BevelBottom *solid.BevelConfig
	Depth       float64
}

// EffectApplier is the external post-effect boundary. The engine calls
// Apply once per configured stage, in fixed stage order; implementations
// may add sibling nodes under group (shadow planes, outline meshes) or
// adjust the mesh's material.
type EffectApplier interface {
	Apply(stage EffectStage, group, mesh *Node, geom *solid.Geometry, mat *material.Material, cfg *EffectConfig, shape ShapeContext) error
}

// applyEffects runs the configured stages for one run in fixed order.
// A nil applier or an all-nil config set is a no-op. Stage errors abort
// the remaining stages and surface as the run's error.
func applyEffects(applier EffectApplier, group, mesh *Node, run RunSpec, shape3d *Shape3DConfig, sc ShapeContext) error {
	if applier == nil {
		return nil
	}

	var contourCfg *EffectConfig
	if shape3d != nil && shape3d.ContourWidth > 0 {
		contourCfg = &EffectConfig{
			Color: shape3d.ContourColor,
			Size:  shape3d.ContourWidth,
			Alpha: 1,
		}
	}

	stages := []struct {
		stage EffectStage
		cfg   *EffectConfig
	}{
		{StageContour, contourCfg},
		{StageOutline, run.Outline},
		{StageShadow, run.Shadow},
		{StageGlow, run.Glow},
		{StageReflection, run.Reflection},
		{StageSoftEdge, run.SoftEdge},
	}

	for _, s := range stages {
		if s.cfg == nil {
			continue
		}
		if err := applier.Apply(s.stage, group, mesh, mesh.Geometry, mesh.Material, s.cfg, sc); err != nil {
			return err
		}
	}
	return nil
}
