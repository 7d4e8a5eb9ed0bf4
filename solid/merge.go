package solid

// Merge appends b's buffers onto a and returns a.
//
// Every index sourced from b is offset by a's vertex count; triangle order
// and winding are preserved exactly. UV buffers are kept only when both
// sides carry them -- a mixed merge drops UVs entirely so the buffers stay
// consistent. b's buffers are transferred into the merged result and b is
// released; it must not be used afterwards.
//
// Either argument may be nil, in which case the other is returned as-is.
func Merge(a, b *Geometry) *Geometry {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	offset := uint32(a.VertexCount())

	a.Positions = append(a.Positions, b.Positions...)
	a.Normals = append(a.Normals, b.Normals...)

	// UV presence must agree or be omitted.
	if a.UVs != nil && b.UVs != nil {
		a.UVs = append(a.UVs, b.UVs...)
	} else {
		a.UVs = nil
	}

	for _, idx := range b.Indices {
		a.Indices = append(a.Indices, idx+offset)
	}

	a.Bounds = a.Bounds.Union(b.Bounds)

	b.Release()
	return a
}
