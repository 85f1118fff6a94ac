package tensor

import (
	"fmt"

	"github.com/x448/float16"
)

// Zeros creates a zero-filled tensor.
//
// Example:
//
//	t, _ := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float64, tensor.CPU)
func Zeros(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor holding a copy of data.
//
// Example:
//
//	t, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("from slice: %d values do not fill shape %v", len(data), shape)
	}
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), device)
	if err != nil {
		return nil, err
	}
	copy(asSlice[T](raw), data)
	return raw, nil
}

// FromFloat64s creates a tensor of the given dtype from float64 values,
// converting each value.
func FromFloat64s(values []float64, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if len(values) != shape.NumElements() {
		return nil, fmt.Errorf("from float64s: %d values do not fill shape %v", len(values), shape)
	}
	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}

	switch dtype {
	case Float32:
		fill(raw.AsFloat32(), values, func(v float64) float32 { return float32(v) })
	case Float64:
		copy(raw.AsFloat64(), values)
	case Int32:
		fill(raw.AsInt32(), values, func(v float64) int32 { return int32(v) })
	case Int64:
		fill(raw.AsInt64(), values, func(v float64) int64 { return int64(v) })
	case Uint8:
		fill(raw.AsUint8(), values, func(v float64) uint8 { return uint8(v) })
	case Float16:
		fill(raw.AsFloat16(), values, func(v float64) float16.Float16 { return float16.Fromfloat32(float32(v)) })
	default:
		return nil, fmt.Errorf("from float64s: unsupported dtype %s", dtype)
	}
	return raw, nil
}

// Float64s returns a row-major float64 copy of the tensor contents.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		fill(out, r.AsFloat32(), func(v float32) float64 { return float64(v) })
	case Float64:
		copy(out, r.AsFloat64())
	case Int32:
		fill(out, r.AsInt32(), func(v int32) float64 { return float64(v) })
	case Int64:
		fill(out, r.AsInt64(), func(v int64) float64 { return float64(v) })
	case Uint8:
		fill(out, r.AsUint8(), func(v uint8) float64 { return float64(v) })
	case Float16:
		fill(out, r.AsFloat16(), func(v float16.Float16) float64 { return float64(v.Float32()) })
	default:
		panic(fmt.Sprintf("float64s: unsupported dtype %s", r.dtype))
	}
	return out
}

func fill[D, S any](dst []D, src []S, conv func(S) D) {
	for i, v := range src {
		dst[i] = conv(v)
	}
}
