// Package gonum hosts arrays stored in gonum matrices.
//
// An n-dimensional array is kept as a *mat.Dense with one matrix row per
// sample (first axis) and the remaining axes flattened, in row-major order,
// into the columns. gonum cannot represent empty matrices, so arrays with no
// elements carry a nil matrix.
package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/blockstore/internal/array"
)

// Array is an n-dimensional float64 array backed by a gonum matrix.
type Array struct {
	shape array.Shape
	m     *mat.Dense
}

// NewArray creates an array of the given shape. If data is nil the array is
// zero-filled, otherwise data is used as the backing slice.
func NewArray(shape array.Shape, data []float64) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	n := shape.NumElements()
	if data != nil && len(data) != n {
		return nil, fmt.Errorf("%w: %d values do not fill shape %v", array.ErrInvalidShape, len(data), shape)
	}
	a := &Array{shape: shape.Clone()}
	if n > 0 {
		a.m = mat.NewDense(shape[0], n/shape[0], data)
	}
	return a, nil
}

// FromDense views m as a (rows, cols) array. The array shares m's storage
// unless m is a sub-matrix view, which is copied into contiguous storage.
func FromDense(m *mat.Dense) *Array {
	if m.IsEmpty() {
		return &Array{shape: array.Shape{0, 0}}
	}
	r, c := m.Dims()
	if raw := m.RawMatrix(); raw.Stride != c {
		m = mat.DenseCopyOf(m)
	}
	return &Array{shape: array.Shape{r, c}, m: m}
}

// Shape returns the array shape.
func (a *Array) Shape() array.Shape {
	return a.shape
}

// Matrix returns the backing matrix, nil for arrays without elements.
func (a *Array) Matrix() *mat.Dense {
	return a.m
}

// Data returns the row-major backing slice.
func (a *Array) Data() []float64 {
	if a.m == nil {
		return nil
	}
	return a.m.RawMatrix().Data
}

// At returns the element at the given index.
func (a *Array) At(index ...int) float64 {
	if len(index) != len(a.shape) {
		panic(fmt.Sprintf("gonum: %d indices for %d-dimensional array", len(index), len(a.shape)))
	}
	strides := a.shape.ComputeStrides()
	col := 0
	for dim := 1; dim < len(index); dim++ {
		col += index[dim] * strides[dim]
	}
	return a.m.At(index[0], col)
}

// rowShape is the shape of a single sample of a.
func (a *Array) rowShape() array.Shape {
	s := a.shape.Clone()
	s[0] = 1
	return s
}
