// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array is the opaque foreign-array interface of blockstore.
//
// # Overview
//
// The core never touches host arrays directly. Every array is reached
// through a Record: an opaque handle plus the operations (Ops) its backend
// implements. Records carry the origin of their backend, and the core
// refuses to combine records of different origins.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/blockstore/array"
//	    "github.com/born-ml/blockstore/backend/gonum"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    src, _ := gonum.Wrap(mat.NewDense(3, 5, nil))
//	    defer src.Destroy()
//
//	    scope := array.NewScope()
//	    defer scope.Close()
//
//	    dst, _ := scope.Create(src, array.Shape{4, 5})
//	    _ = dst.MoveSamplesFrom(src, []array.SampleMapping{{Input: 2, Output: 3}}, 1, 4)
//	}
//
// # Lifetime
//
// Arrays wrapped from host values stay owned by the host. Arrays returned by
// Create and Copy belong to the caller, who destroys each exactly once,
// directly or through a Scope. Using a record after Destroy fails with
// ErrDestroyed.
package array
