package array

// The kernels below work on any row-major backing slice. elem is the number of
// slice items per array element: 1 for typed slices, the element byte size for
// raw byte buffers.

// CopySample copies dst[m.Output, ..., start:end] = src[m.Input, ..., start:end].
// Shapes must have been checked with CheckMove.
func CopySample[T any](dst []T, dstShape Shape, src []T, srcShape Shape, elem int, m SampleMapping, start, end int) {
	if start == end {
		return
	}
	components := dstShape.Components().NumElements()
	dstLast := dstShape.Properties() * elem
	srcLast := srcShape.Properties() * elem
	lo, hi := start*elem, end*elem

	dstRow := m.Output * components * dstLast
	srcRow := m.Input * components * srcLast
	for c := 0; c < components; c++ {
		d := dstRow + c*dstLast
		s := srcRow + c*srcLast
		copy(dst[d+lo:d+hi], src[s+lo:s+hi])
	}
}

// MoveSamples applies CopySample for every mapping in order, so that a later
// mapping overwrites an earlier one targeting the same output row.
func MoveSamples[T any](dst []T, dstShape Shape, src []T, srcShape Shape, elem int, samples []SampleMapping, start, end int) {
	for _, m := range samples {
		CopySample(dst, dstShape, src, srcShape, elem, m, start, end)
	}
}

// DistinctOutputs reports whether no two mappings write the same output row,
// in which case they may be applied in any order or in parallel.
func DistinctOutputs(samples []SampleMapping) bool {
	seen := make(map[int]struct{}, len(samples))
	for _, m := range samples {
		if _, ok := seen[m.Output]; ok {
			return false
		}
		seen[m.Output] = struct{}{}
	}
	return true
}

// SwapAxes writes src, laid out with shape, into dst laid out with the two axes
// exchanged. dst and src must not overlap.
func SwapAxes[T any](dst, src []T, shape Shape, elem, axis1, axis2 int) {
	ndim := len(shape)
	srcStrides := shape.ComputeStrides()
	dstStrides := shape.Swapped(axis1, axis2).ComputeStrides()

	// Stride of each source axis inside dst.
	perm := make([]int, ndim)
	for dim := range perm {
		switch dim {
		case axis1:
			perm[dim] = dstStrides[axis2]
		case axis2:
			perm[dim] = dstStrides[axis1]
		default:
			perm[dim] = dstStrides[dim]
		}
	}

	n := shape.NumElements()
	for i := 0; i < n; i++ {
		idx := i
		dstIdx := 0
		for dim := 0; dim < ndim; dim++ {
			coord := idx / srcStrides[dim]
			idx %= srcStrides[dim]
			dstIdx += coord * perm[dim]
		}
		copy(dst[dstIdx*elem:(dstIdx+1)*elem], src[i*elem:(i+1)*elem])
	}
}
