package text3d

// FontSpec identifies the font and size a run is set in.
//
// Family is a key into the outline provider's registered fonts; Size is the
// nominal size in layout pixels. A FontSpec carries no font data itself --
// parsing and outline extraction happen behind the outline.Provider
// boundary.
type FontSpec struct {
	Family string
	Size   float64
}
