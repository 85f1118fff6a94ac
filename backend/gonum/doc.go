// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gonum exposes gonum matrices to the array core.
//
// # Overview
//
// Arrays are registered under the "gonum.mat" origin. An Array of shape
// (n, d1, ..., dk) is stored as an n by d1*...*dk mat.Dense, one sample per
// matrix row. A *mat.Dense wraps directly as a two-dimensional array.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/blockstore/backend/gonum"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    m := mat.NewDense(3, 4, nil)
//	    record, _ := gonum.Wrap(m)
//	    defer record.Destroy()
//	}
package gonum
