// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/gogpu/gputypes"
)

// Target describes the render target the composed scene is drawn into.
// Logical size is in layout pixels; the physical size is scaled by the
// device pixel ratio.
type Target struct {
	// Width and Height are the logical size in layout pixels.
	Width, Height int

	// PixelRatio is the device pixel ratio. Values at or below zero are
	// treated as 1.
	PixelRatio float64

	// Format is the texture pixel format of the target.
	Format gputypes.TextureFormat
}

// NewTarget creates a target with the default RGBA8 format.
func NewTarget(width, height int, pixelRatio float64) *Target {
	t := &Target{Format: gputypes.TextureFormatRGBA8Unorm}
	t.Resize(width, height, pixelRatio)
	return t
}

// Resize updates the target's logical size and pixel ratio.
func (t *Target) Resize(width, height int, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	t.Width = width
	t.Height = height
	t.PixelRatio = pixelRatio
}

// PixelWidth returns the physical width in device pixels.
func (t *Target) PixelWidth() int {
	return int(math.Round(float64(t.Width) * t.PixelRatio))
}

// PixelHeight returns the physical height in device pixels.
func (t *Target) PixelHeight() int {
	return int(math.Round(float64(t.Height) * t.PixelRatio))
}

// Aspect returns the width/height ratio, defaulting to 1 for degenerate
// sizes.
func (t *Target) Aspect() float64 {
	if t.Height <= 0 || t.Width <= 0 {
		return 1
	}
	return float64(t.Width) / float64(t.Height)
}
