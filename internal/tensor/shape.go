package tensor

import (
	"fmt"

	"github.com/born-ml/blockstore/internal/array"
)

// Shape represents the dimensions of a tensor.
type Shape = array.Shape

// validateDims checks that no dimension is negative. Unlike array shapes, a
// RawTensor may have any rank.
func validateDims(s Shape) error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}
