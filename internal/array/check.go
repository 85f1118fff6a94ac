package array

import "fmt"

// CheckReshape verifies that an array of shape from can be reshaped to shape to.
func CheckReshape(from, to Shape) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if from.NumElements() != to.NumElements() {
		return fmt.Errorf("%w: cannot reshape %v (%d elements) to %v (%d elements)",
			ErrInvalidShape, from, from.NumElements(), to, to.NumElements())
	}
	return nil
}

// CheckSwapAxes verifies that both axes exist in shape.
func CheckSwapAxes(shape Shape, axis1, axis2 int) error {
	for _, axis := range [2]int{axis1, axis2} {
		if axis < 0 || axis >= len(shape) {
			return fmt.Errorf("%w: axis %d for %d-dimensional array %v", ErrAxisOutOfRange, axis, len(shape), shape)
		}
	}
	return nil
}

// CheckMove verifies every precondition of a sample move from an array of shape
// src into an array of shape dst. Nothing may be written unless this returns nil.
func CheckMove(dst, src Shape, samples []SampleMapping, start, end int) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: cannot move samples from %v into %v: different number of dimensions",
			ErrInvalidShape, src, dst)
	}
	if len(dst) < MinRank {
		return fmt.Errorf("%w: %v has %d dimensions, need at least %d", ErrInvalidShape, dst, len(dst), MinRank)
	}
	if !dst.Components().Equal(src.Components()) {
		return fmt.Errorf("%w: cannot move samples from %v into %v: component axes differ",
			ErrInvalidShape, src, dst)
	}

	if start < 0 || start > end {
		return fmt.Errorf("%w: invalid property range [%d, %d)", ErrIndexOutOfBounds, start, end)
	}
	if end > src.Properties() || end > dst.Properties() {
		return fmt.Errorf("%w: property range [%d, %d) exceeds %d input / %d output properties",
			ErrIndexOutOfBounds, start, end, src.Properties(), dst.Properties())
	}

	for i, m := range samples {
		if m.Input < 0 || m.Input >= src.Samples() {
			return fmt.Errorf("%w: sample mapping %d reads input row %d of %d",
				ErrIndexOutOfBounds, i, m.Input, src.Samples())
		}
		if m.Output < 0 || m.Output >= dst.Samples() {
			return fmt.Errorf("%w: sample mapping %d writes output row %d of %d",
				ErrIndexOutOfBounds, i, m.Output, dst.Samples())
		}
	}
	return nil
}
