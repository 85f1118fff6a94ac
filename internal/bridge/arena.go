package bridge

import (
	"fmt"

	"github.com/born-ml/blockstore/internal/array"
)

// arena stores values under generational handles. A slot freed by remove is
// reused with a bumped generation, so stale handles are rejected.
// It is not safe for concurrent use.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

type slot[T any] struct {
	value      T
	generation uint32
	used       bool
}

func (a *arena[T]) insert(v T) array.Handle {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		index = uint32(len(a.slots) - 1)
	}
	s := &a.slots[index]
	s.generation++
	s.value = v
	s.used = true
	a.live++
	return array.Handle{Index: index, Generation: s.generation}
}

func (a *arena[T]) get(h array.Handle) (*T, error) {
	if int(h.Index) >= len(a.slots) {
		return nil, fmt.Errorf("%w: unknown handle %s", array.ErrDestroyed, h)
	}
	s := &a.slots[h.Index]
	if !s.used || s.generation != h.Generation {
		return nil, fmt.Errorf("%w: stale handle %s", array.ErrDestroyed, h)
	}
	return &s.value, nil
}

func (a *arena[T]) remove(h array.Handle) (T, error) {
	var zero T
	if _, err := a.get(h); err != nil {
		return zero, err
	}
	s := &a.slots[h.Index]
	v := s.value
	s.value = zero
	s.used = false
	a.free = append(a.free, h.Index)
	a.live--
	return v, nil
}

func (a *arena[T]) len() int {
	return a.live
}
