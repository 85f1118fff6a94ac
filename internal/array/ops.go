// Package array defines the capability contract through which the core
// manipulates arrays it does not own.
//
// A host array backend implements Ops once. Each array it exposes is then a
// Record: the backend's Ops plus a Handle naming the array inside the
// backend. The core only ever calls Record methods and never sees the
// concrete array type.
package array

import (
	"fmt"

	"github.com/born-ml/blockstore/internal/origin"
)

// Handle names one array inside a backend. Generation changes every time a
// slot is reused, so a stale handle is detected instead of aliasing a new array.
type Handle struct {
	Index      uint32
	Generation uint32
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.Index, h.Generation)
}

// SampleMapping pairs an input row with the output row it is copied to.
type SampleMapping struct {
	Input  int
	Output int
}

// Ops is the vtable a host backend provides for all of its arrays.
//
// Implementations may assume that the owning Record already validated shapes,
// axes and ranges, and that calls on one handle are serialized.
type Ops interface {
	// Origin returns the ID registered for the backend.
	Origin() origin.ID

	// Shape returns the current shape of the array.
	Shape(h Handle) (Shape, error)

	// Reshape changes the shape in place, keeping the row-major element order.
	Reshape(h Handle, shape Shape) error

	// SwapAxes physically transposes two axes.
	SwapAxes(h Handle, axis1, axis2 int) error

	// Create allocates a zero-filled array with the same element type and device.
	Create(h Handle, shape Shape) (Handle, error)

	// Copy allocates a deep copy.
	Copy(h Handle) (Handle, error)

	// Destroy releases the array. The handle is invalid afterwards.
	Destroy(h Handle) error

	// MoveSamplesFrom sets h[m.Output, ..., start:end] = input[m.Input, ..., start:end]
	// for every mapping, in order.
	MoveSamplesFrom(h, input Handle, samples []SampleMapping, start, end int) error
}

// ValueOps is implemented by backends that can expose array contents as float64.
type ValueOps interface {
	// Values returns a row-major float64 copy of the array contents.
	Values(h Handle) ([]float64, error)
}
