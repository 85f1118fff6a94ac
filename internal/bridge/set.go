package bridge

import (
	"fmt"
	"sync"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/born-ml/blockstore/internal/origin"
)

// Backend is the untyped view of a Bridge.
type Backend interface {
	array.Ops
	Name() string
	WrapAny(v any) (*array.Record, bool, error)
	ValueAny(r *array.Record) (any, error)
}

var _ Backend = (*Bridge[*int])(nil)

// Set dispatches between the backends known to a host. Wrapping tries each
// backend in registration order; unwrapping is keyed by the record's origin.
type Set struct {
	mu       sync.RWMutex
	byOrigin map[origin.ID]Backend
	ordered  []Backend
}

// NewSet creates a set holding backends.
func NewSet(backends ...Backend) *Set {
	s := &Set{byOrigin: make(map[origin.ID]Backend)}
	for _, b := range backends {
		s.Add(b)
	}
	return s
}

// Add registers a backend. Adding a second backend with the same origin panics.
func (s *Set) Add(b Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byOrigin[b.Origin()]; ok {
		panic(fmt.Sprintf("bridge: backend %q already registered", b.Name()))
	}
	s.byOrigin[b.Origin()] = b
	s.ordered = append(s.ordered, b)
}

// Backend returns the backend registered for id.
func (s *Set) Backend(id origin.ID) (Backend, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byOrigin[id]
	return b, ok
}

// Backends returns the registered backends in registration order.
func (s *Set) Backends() []Backend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Backend(nil), s.ordered...)
}

// Wrap exposes v through the first backend that accepts it.
func (s *Set) Wrap(v any) (*array.Record, error) {
	for _, b := range s.Backends() {
		r, ok, err := b.WrapAny(v)
		if ok {
			return r, err
		}
	}
	return nil, fmt.Errorf("%w: unknown array type %T", array.ErrUnsupportedBackend, v)
}

// Unwrap returns the host value behind r.
func (s *Set) Unwrap(r *array.Record) (any, error) {
	b, ok := s.Backend(r.Origin())
	if !ok {
		return nil, fmt.Errorf("%w: unable to handle data coming from '%s'", array.ErrUnsupportedBackend, r.Origin())
	}
	return b.ValueAny(r)
}
