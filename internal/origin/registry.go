// Package origin tags arrays with the backend that owns their storage.
//
// Every host array backend registers a name once per process and receives a
// small integer ID. Arrays carry that ID so the core can refuse to combine
// buffers coming from different backends.
package origin

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownOrigin is returned when an ID was never registered in this process.
var ErrUnknownOrigin = errors.New("unknown data origin")

// ID identifies a registered backend. The zero value is never assigned.
type ID uint64

// Registry maps backend names to IDs. It only grows.
type Registry struct {
	mu    sync.RWMutex
	ids   map[string]ID
	names []string // names[id-1]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]ID)}
}

// Register returns the ID for name, assigning the next free ID on first use.
func (r *Registry) Register(name string) ID {
	r.mu.RLock()
	id, ok := r.ids[name]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have won the race between the two locks.
	if id, ok := r.ids[name]; ok {
		return id
	}
	r.names = append(r.names, name)
	id = ID(len(r.names))
	r.ids[name] = id
	return id
}

// Name returns the name registered for id.
func (r *Registry) Name(id ID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == 0 || uint64(id) > uint64(len(r.names)) {
		return "", fmt.Errorf("%w: %d", ErrUnknownOrigin, uint64(id))
	}
	return r.names[id-1], nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register registers name in the process-wide registry.
func Register(name string) ID {
	return Default().Register(name)
}

// Name looks id up in the process-wide registry.
func Name(id ID) (string, error) {
	return Default().Name(id)
}

// String returns the registered name, or a placeholder for unknown IDs.
func (id ID) String() string {
	name, err := Name(id)
	if err != nil {
		return fmt.Sprintf("origin(%d)", uint64(id))
	}
	return name
}
