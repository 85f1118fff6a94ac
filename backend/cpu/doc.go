// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes born RawTensors to the array core.
//
// # Overview
//
// Tensors are registered under the "born.cpu" origin. Every dtype of the
// tensor package is supported, including float16. Reshape returns views that
// share the tensor buffer; SwapAxes, Create and Copy allocate new buffers.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/blockstore/backend/cpu"
//	    "github.com/born-ml/blockstore/tensor"
//	)
//
//	func main() {
//	    raw, _ := tensor.NewRaw(tensor.Shape{3, 2, 5}, tensor.Float32, tensor.CPU)
//	    record, _ := cpu.Wrap(raw)
//	    defer record.Destroy()
//
//	    child, _ := record.Create(array.Shape{4, 2, 5})
//	    defer child.Destroy()
//	    out, _ := cpu.Value(child) // *tensor.RawTensor
//	}
//
// # Performance
//
// Sample moves with distinct output rows are split across goroutines when
// there are enough of them. BLOCKSTORE_NUM_THREADS,
// BLOCKSTORE_PARALLEL_MIN_CHUNK and BLOCKSTORE_NO_PARALLEL tune this.
package cpu
