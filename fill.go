package text3d

import "sort"

// Fill describes how a run's surface is colored. It is a closed set of
// variants: SolidFill and GradientFill. Consumers dispatch exhaustively on
// the concrete type and treat anything else as a configuration error.
type Fill interface {
	// ColorAt returns the color at normalized position t in [0, 1].
	// For a solid fill t is ignored.
	ColorAt(t float64) RGBA

	// isFill seals the variant set.
	isFill()
}

// SolidFill fills with a single color.
type SolidFill struct {
	Color RGBA
}

func (f SolidFill) ColorAt(float64) RGBA { return f.Color }
func (SolidFill) isFill()                {}

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // position in gradient, 0.0 to 1.0
	Color  RGBA
}

// GradientFill fills with a linear gradient across the run's bounding box.
// Because solid UVs are normalized to the solid's own bounds, offset 0 maps
// to one edge of the run and offset 1 to the opposite edge.
type GradientFill struct {
	Stops []ColorStop
	Angle float64 // gradient direction in radians, 0 = left to right
}

func (GradientFill) isFill() {}

// ColorAt returns the interpolated color at offset t.
// Stops need not be pre-sorted. An empty gradient is transparent,
// a single stop behaves like a solid fill.
func (f GradientFill) ColorAt(t float64) RGBA {
	if len(f.Stops) == 0 {
		return RGBA{}
	}
	if len(f.Stops) == 1 {
		return f.Stops[0].Color
	}

	stops := sortStops(f.Stops)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	lo, hi := stops[idx-1], stops[idx]
	if hi.Offset == lo.Offset {
		// Coincident stops, avoid division by zero.
		return lo.Color
	}
	localT := (t - lo.Offset) / (hi.Offset - lo.Offset)
	return lo.Color.Lerp(hi.Color, localT)
}

// sortStops sorts color stops by offset without modifying the input.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}
