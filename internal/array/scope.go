package array

import (
	"errors"
	"sync"
)

// Scope owns records until Close destroys them, so callers can write
//
//	s := array.NewScope()
//	defer s.Close()
//
// instead of pairing every Create or Copy with a Destroy.
type Scope struct {
	mu      sync.Mutex
	records []*Record
	closed  bool
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Track hands ownership of r to the scope and returns r.
func (s *Scope) Track(r *Record) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic("array: Track on closed scope")
	}
	s.records = append(s.records, r)
	return r
}

// Create calls parent.Create and tracks the result.
func (s *Scope) Create(parent *Record, shape Shape) (*Record, error) {
	r, err := parent.Create(shape)
	if err != nil {
		return nil, err
	}
	return s.Track(r), nil
}

// Copy calls r.Copy and tracks the result.
func (s *Scope) Copy(r *Record) (*Record, error) {
	c, err := r.Copy()
	if err != nil {
		return nil, err
	}
	return s.Track(c), nil
}

// Release stops tracking r and returns it, transferring ownership back to the
// caller. It reports false if r is not tracked by s.
func (s *Scope) Release(r *Record) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tracked := range s.records {
		if tracked == r {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return r, true
		}
	}
	return nil, false
}

// Len returns the number of tracked records.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Close destroys every tracked record, newest first. Calling Close again is a no-op.
func (s *Scope) Close() error {
	s.mu.Lock()
	records := s.records
	s.records = nil
	s.closed = true
	s.mu.Unlock()

	var errs []error
	for i := len(records) - 1; i >= 0; i-- {
		if err := records[i].Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
