package gonum

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/born-ml/blockstore/internal/bridge"
)

// OriginName is the origin registered for gonum arrays.
const OriginName = "gonum.mat"

// Backend implements bridge.Host for gonum arrays.
type Backend struct{}

var (
	_ bridge.Host[*Array]        = (*Backend)(nil)
	_ bridge.ValueReader[*Array] = (*Backend)(nil)
)

// New creates a gonum host.
func New() *Backend {
	return &Backend{}
}

// NewBridge creates the bridge exposing gonum arrays as records.
func NewBridge(opts ...bridge.Option) *bridge.Bridge[*Array] {
	return bridge.New[*Array](New(), opts...)
}

// Name returns the origin name.
func (b *Backend) Name() string {
	return OriginName
}

// Accept reports whether v is an *Array or a *mat.Dense.
func (b *Backend) Accept(v any) (*Array, bool) {
	switch v := v.(type) {
	case *Array:
		return v, v != nil
	case *mat.Dense:
		if v == nil || v.IsEmpty() {
			return nil, false
		}
		return FromDense(v), true
	default:
		return nil, false
	}
}

// Shape returns the array shape.
func (b *Backend) Shape(a *Array) array.Shape {
	return a.shape
}

// Reshape returns an array sharing a's storage with the new shape.
func (b *Backend) Reshape(a *Array, shape array.Shape) (*Array, error) {
	return NewArray(shape, a.Data())
}

// SwapAxes returns a new array with two axes exchanged.
func (b *Backend) SwapAxes(a *Array, axis1, axis2 int) (*Array, error) {
	out, err := NewArray(a.shape.Swapped(axis1, axis2), nil)
	if err != nil {
		return nil, err
	}
	array.SwapAxes(out.Data(), a.Data(), a.shape, 1, axis1, axis2)
	return out, nil
}

// Zeros allocates a zero-filled array.
func (b *Backend) Zeros(_ *Array, shape array.Shape) (*Array, error) {
	return NewArray(shape, nil)
}

// Clone returns a deep copy of a.
func (b *Backend) Clone(a *Array) (*Array, error) {
	c := &Array{shape: a.shape.Clone()}
	if a.m != nil {
		c.m = mat.DenseCopyOf(a.m)
	}
	return c, nil
}

// MoveSamples copies the selected matrix rows of src into dst, restricted to
// the property range.
func (b *Backend) MoveSamples(dst, src *Array, samples []array.SampleMapping, start, end int) error {
	if dst.m == nil || src.m == nil {
		// No elements on one side: either no rows or no properties to copy.
		return nil
	}
	dstRow, srcRow := dst.rowShape(), src.rowShape()
	for _, m := range samples {
		array.CopySample(
			dst.m.RawRowView(m.Output), dstRow,
			src.m.RawRowView(m.Input), srcRow,
			1, array.SampleMapping{}, start, end,
		)
	}
	return nil
}

// Values returns a float64 copy of a.
func (b *Backend) Values(a *Array) []float64 {
	return append([]float64(nil), a.Data()...)
}
