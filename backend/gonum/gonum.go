// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package gonum

import (
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/blockstore/array"
	"github.com/born-ml/blockstore/internal/backend/gonum"
	"github.com/born-ml/blockstore/internal/bridge"
)

// OriginName is the origin registered for gonum arrays.
const OriginName = gonum.OriginName

// Array is an n-dimensional array backed by a mat.Dense.
type Array = gonum.Array

// Backend is the gonum host implementation.
type Backend = gonum.Backend

// Bridge exposes gonum arrays as records.
type Bridge = bridge.Bridge[*gonum.Array]

// Compile-time check that Bridge can join an array.Set.
var _ array.Backend = (*Bridge)(nil)

// New creates a bridge for gonum arrays.
func New(opts ...array.Option) *Bridge {
	return gonum.NewBridge(opts...)
}

// NewArray creates an array of the given shape. A nil data slice gives a zero-filled array.
func NewArray(shape array.Shape, data []float64) (*Array, error) {
	return gonum.NewArray(shape, data)
}

// FromDense views m as a two-dimensional array.
func FromDense(m *mat.Dense) *Array {
	return gonum.FromDense(m)
}

var defaultBridge = sync.OnceValue(func() *Bridge { return New() })

// Default returns the package-level bridge used by Wrap, WrapArray and Value.
func Default() *Bridge {
	return defaultBridge()
}

// Wrap exposes m as a record. The caller keeps ownership of m.
func Wrap(m *mat.Dense) (*array.Record, error) {
	return Default().Wrap(gonum.FromDense(m))
}

// WrapArray exposes a as a record. The caller keeps ownership of a.
func WrapArray(a *Array) (*array.Record, error) {
	return Default().Wrap(a)
}

// Value returns the array behind a record created by the default bridge.
func Value(r *array.Record) (*Array, error) {
	return Default().Value(r)
}
