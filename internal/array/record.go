package array

import (
	"fmt"
	"sync"

	"github.com/born-ml/blockstore/internal/origin"
)

// Record is one array as seen by the core: the backend vtable, the handle of
// the array inside that backend and a mirror of its current shape.
//
// Mutating calls on a Record are serialized. A Record returned by Create or
// Copy is owned by the caller, who must Destroy it exactly once (or hand it to
// a Scope).
type Record struct {
	mu        sync.Mutex
	ops       Ops
	handle    Handle
	origin    origin.ID
	shape     Shape
	destroyed bool
}

// NewRecord builds the record for handle h of backend ops.
func NewRecord(ops Ops, h Handle) (*Record, error) {
	shape, err := ops.Shape(h)
	if err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Record{
		ops:    ops,
		handle: h,
		origin: ops.Origin(),
		shape:  shape.Clone(),
	}, nil
}

// Origin returns the origin of the backend owning the array.
func (r *Record) Origin() origin.ID {
	return r.origin
}

// Handle returns the backend handle of the array.
func (r *Record) Handle() Handle {
	return r.handle
}

// Ops returns the backend vtable.
func (r *Record) Ops() Ops {
	return r.ops
}

// Shape returns a copy of the current shape.
func (r *Record) Shape() Shape {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shape.Clone()
}

// Reshape changes the shape in place. On error the array is left untouched.
func (r *Record) Reshape(shape Shape) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.live("reshape"); err != nil {
		return err
	}
	if err := CheckReshape(r.shape, shape); err != nil {
		return fmt.Errorf("reshape: %w", err)
	}
	if err := r.ops.Reshape(r.handle, shape.Clone()); err != nil {
		return fmt.Errorf("reshape: %w", err)
	}
	return r.refresh()
}

// SwapAxes exchanges two axes of the shape and of the data layout.
func (r *Record) SwapAxes(axis1, axis2 int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.live("swap axes"); err != nil {
		return err
	}
	if err := CheckSwapAxes(r.shape, axis1, axis2); err != nil {
		return fmt.Errorf("swap axes: %w", err)
	}
	if axis1 == axis2 {
		return nil
	}
	if err := r.ops.SwapAxes(r.handle, axis1, axis2); err != nil {
		return fmt.Errorf("swap axes: %w", err)
	}
	return r.refresh()
}

// Create allocates a new zero-filled array of the given shape in the same backend.
func (r *Record) Create(shape Shape) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.live("create"); err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	h, err := r.ops.Create(r.handle, shape.Clone())
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return r.adopt(h, "create")
}

// Copy allocates a deep copy of the array in the same backend.
func (r *Record) Copy() (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.live("copy"); err != nil {
		return nil, err
	}
	h, err := r.ops.Copy(r.handle)
	if err != nil {
		return nil, fmt.Errorf("copy: %w", err)
	}
	return r.adopt(h, "copy")
}

// Destroy releases the array. Any later call on r returns ErrDestroyed.
func (r *Record) Destroy() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.live("destroy"); err != nil {
		return err
	}
	r.destroyed = true
	if err := r.ops.Destroy(r.handle); err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	return nil
}

// MoveSamplesFrom copies input[m.Input, ..., start:end] into r[m.Output, ..., start:end]
// for every mapping. Every precondition is checked before the first write, so on
// error r is unchanged. When two mappings target the same output row the later
// one wins.
func (r *Record) MoveSamplesFrom(input *Record, samples []SampleMapping, start, end int) error {
	if input.origin != r.origin {
		return fmt.Errorf("move samples: %w: cannot move data from %s into %s",
			ErrOriginMismatch, input.origin, r.origin)
	}
	// Handles are only meaningful inside the backend instance that issued them.
	if input.ops != r.ops {
		return fmt.Errorf("move samples: %w: %s arrays belong to different %s instances",
			ErrOriginMismatch, input.handle, r.origin)
	}

	// Read the input shape before locking r: input may be r itself.
	input.mu.Lock()
	inputShape, inputErr := input.shape, input.live("move samples")
	input.mu.Unlock()
	if inputErr != nil {
		return inputErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.live("move samples"); err != nil {
		return err
	}
	if err := CheckMove(r.shape, inputShape, samples, start, end); err != nil {
		return fmt.Errorf("move samples: %w", err)
	}
	if len(samples) == 0 {
		return nil
	}
	if err := r.ops.MoveSamplesFrom(r.handle, input.handle, samples, start, end); err != nil {
		return fmt.Errorf("move samples: %w", err)
	}
	return nil
}

// Values returns a row-major float64 copy of the array contents, if the
// backend supports it.
func (r *Record) Values() ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.live("values"); err != nil {
		return nil, err
	}
	vo, ok := r.ops.(ValueOps)
	if !ok {
		return nil, fmt.Errorf("values: %w: %s does not expose its data", ErrUnsupportedBackend, r.origin)
	}
	return vo.Values(r.handle)
}

// String implements fmt.Stringer.
func (r *Record) String() string {
	return fmt.Sprintf("array(%s, %s, %v)", r.origin, r.handle, r.Shape())
}

func (r *Record) live(op string) error {
	if r.destroyed {
		return fmt.Errorf("%s: %w: handle %s", op, ErrDestroyed, r.handle)
	}
	return nil
}

func (r *Record) refresh() error {
	shape, err := r.ops.Shape(r.handle)
	if err != nil {
		return err
	}
	r.shape = shape.Clone()
	return nil
}

// adopt wraps a handle freshly returned by Create or Copy, destroying it if
// it does not describe a valid array.
func (r *Record) adopt(h Handle, op string) (*Record, error) {
	child, err := NewRecord(r.ops, h)
	if err != nil {
		_ = r.ops.Destroy(h)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return child, nil
}
