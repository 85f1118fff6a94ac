// Package bridge exposes host arrays as capability records.
//
// A Bridge adapts one concrete host array type T to the array.Ops vtable.
// Host values live in a generational arena owned by the bridge; records only
// carry the arena handle, so a record used after Destroy fails with
// array.ErrDestroyed instead of touching freed storage.
//
// Lifetime policy:
//   - values passed to Wrap stay owned by the host. Destroying their record
//     forgets them without releasing them.
//   - values the bridge allocates (Create, Copy, and the replacements produced
//     by Reshape or SwapAxes) are owned by the bridge and released on Destroy.
package bridge

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/born-ml/blockstore/internal/origin"
)

// Host adapts a host array type to the capability contract. The bridge
// validates shapes, axes and ranges before calling it.
type Host[T comparable] interface {
	// Name is the origin name registered for the backend.
	Name() string

	// Accept reports whether v is an array of this backend.
	Accept(v any) (T, bool)

	// Shape returns the current shape of v.
	Shape(v T) array.Shape

	// Reshape returns v with a new shape and the same row-major elements.
	// It may return v itself after mutating it.
	Reshape(v T, shape array.Shape) (T, error)

	// SwapAxes returns v with two axes physically transposed.
	// It may return v itself after mutating it.
	SwapAxes(v T, axis1, axis2 int) (T, error)

	// Zeros allocates a zero-filled array with the element type and device of like.
	Zeros(like T, shape array.Shape) (T, error)

	// Clone allocates a deep copy of v.
	Clone(v T) (T, error)

	// MoveSamples sets dst[m.Output, ..., start:end] = src[m.Input, ..., start:end].
	MoveSamples(dst, src T, samples []array.SampleMapping, start, end int) error
}

// Releaser is implemented by hosts whose arrays hold resources beyond GC memory.
type Releaser[T any] interface {
	Release(v T)
}

// ValueReader is implemented by hosts that can convert arrays to float64.
type ValueReader[T any] interface {
	Values(v T) []float64
}

type entry[T comparable] struct {
	value     T
	owned     bool
	parent    array.Handle
	hasParent bool
	children  []array.Handle
}

// Bridge implements array.Ops on top of a Host.
type Bridge[T comparable] struct {
	host   Host[T]
	origin origin.ID
	logger *slog.Logger

	mu    sync.Mutex
	arena arena[entry[T]]
}

var _ array.Ops = (*Bridge[*int])(nil)

// Option configures a Bridge.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for lifecycle events. Without it the bridge
// logs to whatever slog.Default() is at the time of the event.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a bridge for host, registering its origin name.
func New[T comparable](host Host[T], opts ...Option) *Bridge[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	b := &Bridge[T]{
		host:   host,
		origin: origin.Register(host.Name()),
	}
	if o.logger != nil {
		b.logger = o.logger.With("origin", host.Name())
	}
	return b
}

// Name returns the origin name of the backend.
func (b *Bridge[T]) Name() string {
	return b.host.Name()
}

// Origin implements array.Ops.
func (b *Bridge[T]) Origin() origin.ID {
	return b.origin
}

// Wrap exposes a host-owned value as a record. The host keeps ownership of v.
func (b *Bridge[T]) Wrap(v T) (*array.Record, error) {
	if err := b.host.Shape(v).Validate(); err != nil {
		return nil, fmt.Errorf("wrap: %w", err)
	}

	b.mu.Lock()
	h := b.arena.insert(entry[T]{value: v})
	b.mu.Unlock()

	b.log().Debug("wrapped array", "handle", h, "shape", b.host.Shape(v))
	return array.NewRecord(b, h)
}

// WrapAny wraps v if it is an array of this backend.
func (b *Bridge[T]) WrapAny(v any) (*array.Record, bool, error) {
	value, ok := b.host.Accept(v)
	if !ok {
		return nil, false, nil
	}
	r, err := b.Wrap(value)
	return r, true, err
}

// Value recovers the host array behind a record of this backend.
func (b *Bridge[T]) Value(r *array.Record) (T, error) {
	var zero T
	if r.Origin() != b.origin || r.Ops() != array.Ops(b) {
		return zero, fmt.Errorf("%w: record comes from %s, not %s", array.ErrUnsupportedBackend, r.Origin(), b.Name())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.arena.get(r.Handle())
	if err != nil {
		return zero, err
	}
	return e.value, nil
}

// ValueAny is the untyped form of Value.
func (b *Bridge[T]) ValueAny(r *array.Record) (any, error) {
	return b.Value(r)
}

// Children returns the handles of live arrays created from r with Create.
func (b *Bridge[T]) Children(r *array.Record) ([]array.Handle, error) {
	if r.Ops() != array.Ops(b) {
		return nil, fmt.Errorf("%w: record comes from another %s bridge", array.ErrUnsupportedBackend, b.Name())
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.arena.get(r.Handle())
	if err != nil {
		return nil, err
	}
	return slices.Clone(e.children), nil
}

// Live returns the number of arrays currently known to the bridge.
func (b *Bridge[T]) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.arena.len()
}

// Shape implements array.Ops.
func (b *Bridge[T]) Shape(h array.Handle) (array.Shape, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.arena.get(h)
	if err != nil {
		return nil, err
	}
	return b.host.Shape(e.value).Clone(), nil
}

// Reshape implements array.Ops.
func (b *Bridge[T]) Reshape(h array.Handle, shape array.Shape) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.arena.get(h)
	if err != nil {
		return err
	}
	if err := array.CheckReshape(b.host.Shape(e.value), shape); err != nil {
		return err
	}
	v, err := b.host.Reshape(e.value, shape)
	if err != nil {
		return err
	}
	b.replace(e, v)
	return nil
}

// SwapAxes implements array.Ops.
func (b *Bridge[T]) SwapAxes(h array.Handle, axis1, axis2 int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.arena.get(h)
	if err != nil {
		return err
	}
	if err := array.CheckSwapAxes(b.host.Shape(e.value), axis1, axis2); err != nil {
		return err
	}
	v, err := b.host.SwapAxes(e.value, axis1, axis2)
	if err != nil {
		return err
	}
	b.replace(e, v)
	return nil
}

// Create implements array.Ops. The new array is tracked as a child of h.
func (b *Bridge[T]) Create(h array.Handle, shape array.Shape) (array.Handle, error) {
	if err := shape.Validate(); err != nil {
		return array.Handle{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.arena.get(h)
	if err != nil {
		return array.Handle{}, err
	}
	v, err := b.host.Zeros(e.value, shape)
	if err != nil {
		return array.Handle{}, err
	}
	child := b.arena.insert(entry[T]{value: v, owned: true, parent: h, hasParent: true})

	// insert may have grown the arena; look the parent up again.
	e, _ = b.arena.get(h)
	e.children = append(e.children, child)

	b.log().Debug("created array", "handle", child, "parent", h, "shape", shape)
	return child, nil
}

// Copy implements array.Ops.
func (b *Bridge[T]) Copy(h array.Handle) (array.Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.arena.get(h)
	if err != nil {
		return array.Handle{}, err
	}
	v, err := b.host.Clone(e.value)
	if err != nil {
		return array.Handle{}, err
	}
	c := b.arena.insert(entry[T]{value: v, owned: true})

	b.log().Debug("copied array", "handle", c, "source", h)
	return c, nil
}

// Destroy implements array.Ops.
func (b *Bridge[T]) Destroy(h array.Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.arena.remove(h)
	if err != nil {
		return err
	}

	if e.hasParent {
		if p, err := b.arena.get(e.parent); err == nil {
			p.children = slices.DeleteFunc(p.children, func(c array.Handle) bool { return c == h })
		}
	}
	for _, c := range e.children {
		if child, err := b.arena.get(c); err == nil {
			child.hasParent = false
		}
	}
	if len(e.children) > 0 {
		b.log().Debug("destroyed array with live children", "handle", h, "children", len(e.children))
	}

	if e.owned {
		b.release(e.value)
	}
	b.log().Debug("destroyed array", "handle", h, "owned", e.owned)
	return nil
}

// MoveSamplesFrom implements array.Ops.
func (b *Bridge[T]) MoveSamplesFrom(h, input array.Handle, samples []array.SampleMapping, start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	dst, err := b.arena.get(h)
	if err != nil {
		return err
	}
	src, err := b.arena.get(input)
	if err != nil {
		return err
	}
	if err := array.CheckMove(b.host.Shape(dst.value), b.host.Shape(src.value), samples, start, end); err != nil {
		return err
	}
	return b.host.MoveSamples(dst.value, src.value, samples, start, end)
}

// Values implements array.ValueOps.
func (b *Bridge[T]) Values(h array.Handle) ([]float64, error) {
	reader, ok := b.host.(ValueReader[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s does not expose its data", array.ErrUnsupportedBackend, b.Name())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.arena.get(h)
	if err != nil {
		return nil, err
	}
	return reader.Values(e.value), nil
}

// replace installs v as the new value of e. A replaced value is released only
// if the bridge owned it; v is owned by the bridge unless it is the same value.
func (b *Bridge[T]) replace(e *entry[T], v T) {
	if v == e.value {
		return
	}
	if e.owned {
		b.release(e.value)
	}
	e.value = v
	e.owned = true
}

// log returns the configured logger, or the current slog default.
func (b *Bridge[T]) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return slog.Default().With("origin", b.host.Name())
}

func (b *Bridge[T]) release(v T) {
	if r, ok := b.host.(Releaser[T]); ok {
		r.Release(v)
	}
}
