// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"sync"

	"github.com/born-ml/blockstore/array"
	internalcpu "github.com/born-ml/blockstore/internal/backend/cpu"
	"github.com/born-ml/blockstore/internal/bridge"
	"github.com/born-ml/blockstore/tensor"
)

// OriginName is the origin registered for RawTensors.
const OriginName = internalcpu.OriginName

// ErrDTypeMismatch is returned when moving samples between tensors of different dtypes.
var ErrDTypeMismatch = internalcpu.ErrDTypeMismatch

// Backend is the RawTensor host implementation.
type Backend = internalcpu.CPUBackend

// Bridge exposes RawTensors as records.
type Bridge = bridge.Bridge[*tensor.RawTensor]

// Compile-time check that Bridge can join an array.Set.
var _ array.Backend = (*Bridge)(nil)

// New creates a bridge for RawTensors.
//
// Example:
//
//	b := cpu.New(array.WithLogger(logger))
//	record, _ := b.Wrap(raw)
func New(opts ...array.Option) *Bridge {
	return internalcpu.NewBridge(opts...)
}

var defaultBridge = sync.OnceValue(func() *Bridge { return New() })

// Default returns the package-level bridge used by Wrap and Value.
func Default() *Bridge {
	return defaultBridge()
}

// Wrap exposes raw as a record. The caller keeps ownership of raw.
func Wrap(raw *tensor.RawTensor) (*array.Record, error) {
	return Default().Wrap(raw)
}

// Value returns the tensor behind a record created by the default bridge.
func Value(r *array.Record) (*tensor.RawTensor, error) {
	return Default().Value(r)
}

// Zeros creates a zero-filled CPU tensor.
func Zeros(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return tensor.Zeros(shape, dtype, tensor.CPU)
}

// FromFloat64s creates a CPU tensor of the given dtype from float64 values.
func FromFloat64s(values []float64, shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return tensor.FromFloat64s(values, shape, dtype, tensor.CPU)
}
