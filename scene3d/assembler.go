package scene3d

import (
	"context"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/contour"
	"github.com/gogpu/text3d/material"
	"github.com/gogpu/text3d/outline"
	"github.com/gogpu/text3d/solid"
)

// PixelScale is the fixed conversion from layout pixels to scene units.
const PixelScale = 0.01

// Assembler builds one run's mesh node: it requests contour shapes from
// the outline provider, extrudes and merges them into a single geometry,
// resolves the material, places the node, and runs the post-effect
// stages.
//
// Assembler is stateless apart from its collaborators and safe for
// concurrent BuildRun calls.
type Assembler struct {
	// Provider extracts glyph contours. Required.
	Provider outline.Provider

	// Effects applies post-effect stages. Nil disables all stages.
	Effects EffectApplier

	// Scale overrides PixelScale when positive.
	Scale float64
}

func (a *Assembler) scale() float64 {
	if a.Scale > 0 {
		return a.Scale
	}
	return PixelScale
}

// BuildRun assembles the node for one run. A run with empty text yields
// (nil, nil): it contributes no geometry and is not an error.
//
// Shapes with non-finite coordinates are skipped with a warning; the run
// fails only when no valid shape remains for non-empty text. The caller
// wraps any returned error into a run-scoped GeometryError.
//
// The returned node is a per-run group: the mesh node is its first child
// so effect stages can attach siblings without touching shared state.
func (a *Assembler) BuildRun(ctx context.Context, run RunSpec, shape3d *Shape3DConfig, warp *TextWarpConfig, sceneFontSize float64) (*Node, error) {
	if run.Text == "" {
		return nil, nil
	}

	shapes, err := a.Provider.LayoutText(ctx, run.Text, run.Font, outline.LayoutOptions{
		LetterSpacing:  run.LetterSpacing,
		OpticalKerning: run.OpticalKerning,
	})
	if err != nil {
		return nil, err
	}

	opts := solid.BuildOptions{FontSize: sceneFontSize}
	if opts.FontSize <= 0 {
		opts.FontSize = run.Font.Size
	}
	if shape3d != nil {
		opts.Depth = shape3d.ExtrusionHeight
		opts.BevelTop = shape3d.BevelTop
		opts.BevelBottom = shape3d.BevelBottom
	}

	var merged *solid.Geometry
	valid := make([]contour.Shape, 0, len(shapes))
	for _, s := range shapes {
		if !s.IsFinite() {
			text3d.Logger().Warn("scene3d: skipping shape with non-finite points",
				"text", run.Text)
			continue
		}
		g, err := solid.Build(s, opts)
		if err != nil {
			text3d.Logger().Warn("scene3d: skipping untessellatable shape",
				"text", run.Text, "error", err)
			continue
		}
		if g == nil {
			// Degenerate contour, silently dropped.
			continue
		}
		merged = solid.Merge(merged, g)
		valid = append(valid, s)
	}
	if merged == nil {
		return nil, ErrNoValidShapes
	}

	// Renormalize across the merged shapes so a gradient fill spans the
	// whole run, not each glyph individually.
	merged.NormalizeUVs()

	if warp != nil {
		applyWarp(merged, *warp)
	}

	preset := material.PresetMatte
	if shape3d != nil {
		preset = shape3d.Preset
	}
	mat, err := material.Build(run.Fill, preset, false)
	if err != nil {
		return nil, err
	}

	// Uniform pixel-to-scene scale; layout Y grows downward while scene
	// Y grows upward, hence the inversion.
	s := a.scale()
	runRoot := NewGroup("run")
	runRoot.Position = vec3.T{run.X * s, -run.Y * s, 0}
	runRoot.Scale = vec3.T{s, s, s}

	mesh := NewMesh("run-mesh", merged, mat)
	runRoot.Add(mesh)

	if a.Effects != nil {
		sc := ShapeContext{
			Shapes: valid,
			Paths:  extractPaths(valid),
			Depth:  solid.ResolveDepth(opts.Depth, opts.FontSize),
		}
		if shape3d != nil {
			sc.BevelTop = shape3d.BevelTop
			sc.BevelBottom = shape3d.BevelBottom
		}
		if err := applyEffects(a.Effects, runRoot, mesh, run, shape3d, sc); err != nil {
			return nil, err
		}
	}

	return runRoot, nil
}

// extractPaths recomputes the bevel paths per valid shape for the effect
// stages (the contour effect follows the outer paths).
func extractPaths(shapes []contour.Shape) [][]contour.BevelPath {
	paths := make([][]contour.BevelPath, len(shapes))
	for i, s := range shapes {
		paths[i] = contour.ExtractBevelPaths(s)
	}
	return paths
}
