// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"log/slog"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/born-ml/blockstore/internal/bridge"
	"github.com/born-ml/blockstore/internal/origin"
)

// Record is the capability record of one array: an opaque handle plus the
// operations of the backend that owns it.
type Record = array.Record

// Ops is the operation table a backend implements.
type Ops = array.Ops

// ValueOps is implemented by backends that can export values as float64.
type ValueOps = array.ValueOps

// Handle is an opaque reference into a backend.
type Handle = array.Handle

// Shape is the shape of an array. Arrays have at least two axes.
type Shape = array.Shape

// SampleMapping copies sample Input of the source into sample Output of the destination.
type SampleMapping = array.SampleMapping

// Scope destroys the records it tracks when closed.
type Scope = array.Scope

// OriginID identifies the backend an array comes from.
type OriginID = origin.ID

// Set dispatches between several backends by origin.
type Set = bridge.Set

// Backend is a bridge that can be added to a Set.
type Backend = bridge.Backend

// Option configures a backend bridge.
type Option = bridge.Option

// Errors returned by record operations. Match them with errors.Is.
var (
	ErrUnknownOrigin      = array.ErrUnknownOrigin
	ErrUnsupportedBackend = array.ErrUnsupportedBackend
	ErrInvalidShape       = array.ErrInvalidShape
	ErrAxisOutOfRange     = array.ErrAxisOutOfRange
	ErrOriginMismatch     = array.ErrOriginMismatch
	ErrIndexOutOfBounds   = array.ErrIndexOutOfBounds
	ErrDestroyed          = array.ErrDestroyed
)

// NewScope creates an empty scope.
//
// Example:
//
//	scope := array.NewScope()
//	defer scope.Close()
//	tmp, _ := scope.Copy(record)
func NewScope() *Scope {
	return array.NewScope()
}

// NewSet creates a set dispatching between backends.
func NewSet(backends ...Backend) *Set {
	return bridge.NewSet(backends...)
}

// WithLogger sets the logger backend bridges use for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return bridge.WithLogger(l)
}

// Register returns the origin ID for name, registering it on first use.
func Register(name string) OriginID {
	return origin.Register(name)
}

// OriginName returns the name registered for id.
func OriginName(id OriginID) (string, error) {
	return origin.Name(id)
}

// Origins returns every registered origin name in registration order.
func Origins() []string {
	return origin.Default().Names()
}
