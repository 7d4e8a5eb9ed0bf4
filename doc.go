// Package text3d turns styled text runs carrying 3D extrusion and bevel
// attributes into renderable 3D meshes.
//
// The pipeline is organized leaf-first:
//
//   - contour:  winding analysis and hole-aware inward-normal extraction
//     for closed glyph contours
//   - solid:    extrusion of a contour tree into a 3D solid with optional
//     bevel rings, plus mesh merging and UV normalization
//   - outline:  the glyph outline provider boundary and an SFNT/HarfBuzz
//     backed implementation
//   - material: fill descriptor to material resolution (solid/gradient)
//   - camera:   camera construction and bounding-box framing
//   - scene3d:  per-run mesh assembly and full scene composition
//     (build/update/dispose with generation tracking)
//   - render:   the pooled rendering-backend context and render target
//
// The root package holds the shared primitives: 2D points, colors, fill
// variants, font specs, and the package logger.
//
// text3d deliberately treats glyph outline extraction, paragraph layout,
// post-effect implementations, and GPU rasterization as external
// collaborators behind small interfaces; see the outline, scene3d, and
// render packages for the respective boundaries.
package text3d
