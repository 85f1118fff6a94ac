// Package cpu hosts arrays stored in born RawTensors.
//
// CPUBackend adapts *tensor.RawTensor to the bridge.Host contract. Element
// type does not matter to any operation here: transposes and sample moves
// work on raw bytes using the dtype's element size.
package cpu

import (
	"errors"
	"fmt"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/born-ml/blockstore/internal/bridge"
	"github.com/born-ml/blockstore/internal/parallel"
	"github.com/born-ml/blockstore/internal/tensor"
)

// OriginName is the origin registered for RawTensor arrays.
const OriginName = "born.cpu"

// ErrDTypeMismatch is returned when moving samples between tensors of different dtypes.
var ErrDTypeMismatch = errors.New("dtype mismatch")

// CPUBackend implements bridge.Host for RawTensors.
type CPUBackend struct {
	parallel parallel.Config
}

var (
	_ bridge.Host[*tensor.RawTensor]        = (*CPUBackend)(nil)
	_ bridge.Releaser[*tensor.RawTensor]    = (*CPUBackend)(nil)
	_ bridge.ValueReader[*tensor.RawTensor] = (*CPUBackend)(nil)
)

// New creates a CPU host using the parallel configuration from the environment.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU host with an explicit parallel configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{parallel: cfg}
}

// NewBridge creates the bridge exposing RawTensors as records.
func NewBridge(opts ...bridge.Option) *bridge.Bridge[*tensor.RawTensor] {
	return bridge.New[*tensor.RawTensor](New(), opts...)
}

// Name returns the origin name.
func (cpu *CPUBackend) Name() string {
	return OriginName
}

// Accept reports whether v is a RawTensor.
func (cpu *CPUBackend) Accept(v any) (*tensor.RawTensor, bool) {
	t, ok := v.(*tensor.RawTensor)
	return t, ok && t != nil
}

// Shape returns the tensor's shape.
func (cpu *CPUBackend) Shape(t *tensor.RawTensor) array.Shape {
	return t.Shape()
}

// Reshape returns a view of t with the new shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, shape array.Shape) (*tensor.RawTensor, error) {
	return t.View(shape)
}

// SwapAxes returns a new contiguous tensor with two axes exchanged.
func (cpu *CPUBackend) SwapAxes(t *tensor.RawTensor, axis1, axis2 int) (*tensor.RawTensor, error) {
	result, err := tensor.NewRaw(t.Shape().Swapped(axis1, axis2), t.DType(), t.Device())
	if err != nil {
		return nil, fmt.Errorf("swap axes: %w", err)
	}
	array.SwapAxes(result.Data(), t.Data(), t.Shape(), t.DType().Size(), axis1, axis2)
	return result, nil
}

// Zeros allocates a zero-filled tensor with like's dtype and device.
func (cpu *CPUBackend) Zeros(like *tensor.RawTensor, shape array.Shape) (*tensor.RawTensor, error) {
	return tensor.NewRaw(shape, like.DType(), like.Device())
}

// Clone returns a deep copy of t.
func (cpu *CPUBackend) Clone(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	return t.Copy(), nil
}

// MoveSamples copies the selected rows of src into dst. Mappings with
// distinct output rows between tensors that do not share a buffer are
// copied in parallel.
func (cpu *CPUBackend) MoveSamples(dst, src *tensor.RawTensor, samples []array.SampleMapping, start, end int) error {
	if dst.DType() != src.DType() {
		return fmt.Errorf("move samples: %w: %s into %s", ErrDTypeMismatch, src.DType(), dst.DType())
	}

	elem := dst.DType().Size()
	dstData, srcData := dst.Data(), src.Data()
	dstShape, srcShape := dst.Shape(), src.Shape()

	if dst.SharesBuffer(src) || !array.DistinctOutputs(samples) {
		array.MoveSamples(dstData, dstShape, srcData, srcShape, elem, samples, start, end)
		return nil
	}

	parallel.For(len(samples), func(i int) {
		array.CopySample(dstData, dstShape, srcData, srcShape, elem, samples[i], start, end)
	}, cpu.parallel)
	return nil
}

// Release drops the bridge's reference to t.
func (cpu *CPUBackend) Release(t *tensor.RawTensor) {
	t.Release()
}

// Values returns a float64 copy of t.
func (cpu *CPUBackend) Values(t *tensor.RawTensor) []float64 {
	return t.Float64s()
}
