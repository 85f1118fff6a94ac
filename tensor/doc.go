// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides RawTensor, the host array type of the born.cpu backend.
//
// # Overview
//
// A RawTensor is a dense row-major n-dimensional array stored in a
// reference-counted byte buffer. Views created by reshaping share the buffer;
// Copy gives independent storage.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/blockstore/backend/cpu"
//	    "github.com/born-ml/blockstore/tensor"
//	)
//
//	func main() {
//	    raw, _ := tensor.FromFloat64s([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//
//	    // Expose the tensor to the array core.
//	    record, _ := cpu.Wrap(raw)
//	    defer record.Destroy()
//	}
//
// # Element Types
//
// float32, float64, int32, int64, uint8 and IEEE 754 half precision
// (github.com/x448/float16) are supported.
package tensor
