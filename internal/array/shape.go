package array

import "fmt"

// MinRank is the smallest number of dimensions an array may have.
const MinRank = 2

// Shape represents the dimensions of an array in row-major order.
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that the shape has at least MinRank dimensions and no negative size.
// Zero-sized dimensions are allowed.
func (s Shape) Validate() error {
	if len(s) < MinRank {
		return fmt.Errorf("%w: %v has %d dimensions, need at least %d", ErrInvalidShape, s, len(s), MinRank)
	}
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: dimension %d of %v is negative", ErrInvalidShape, i, s)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] is the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Swapped returns a copy of the shape with two axes exchanged.
func (s Shape) Swapped(axis1, axis2 int) Shape {
	out := s.Clone()
	out[axis1], out[axis2] = out[axis2], out[axis1]
	return out
}

// Samples returns the extent of the first axis.
func (s Shape) Samples() int {
	return s[0]
}

// Properties returns the extent of the last axis.
func (s Shape) Properties() int {
	return s[len(s)-1]
}

// Components returns the axes between the first and the last.
func (s Shape) Components() Shape {
	return s[1 : len(s)-1]
}
