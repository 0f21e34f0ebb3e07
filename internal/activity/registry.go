package activity

import (
	"errors"
	"sync"
)

var (
	ErrNilAdapter        = errors.New("activity: adapter is nil")
	ErrDuplicateCategory = errors.New("activity: an adapter for this category is already registered")
	ErrUnknownCategory   = errors.New("activity: unknown category")
)

// Registry holds the active adapters in registration order. It is safe for
// concurrent use; readers receive snapshots, so adapters may be added or
// removed while aggregations are in flight.
type Registry struct {
	mu       sync.RWMutex
	adapters []Adapter
}

// NewRegistry creates a registry and registers adapters in order.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{}
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds an adapter. Each category may be owned by a single adapter.
func (r *Registry) Register(a Adapter) error {
	if a == nil {
		return ErrNilAdapter
	}
	if _, ok := ParseCategory(string(a.Category())); !ok {
		return ErrUnknownCategory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.adapters {
		if existing.Category() == a.Category() {
			return ErrDuplicateCategory
		}
	}
	r.adapters = append(r.adapters, a)
	return nil
}

// Unregister removes the adapter owning c and reports whether one was found.
func (r *Registry) Unregister(c Category) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.adapters {
		if a.Category() == c {
			r.adapters = append(r.adapters[:i:i], r.adapters[i+1:]...)
			return true
		}
	}
	return false
}

// Adapters returns a snapshot of the registered adapters.
func (r *Registry) Adapters() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// Select returns the adapters whose category is selected by f.
func (r *Registry) Select(f Filters) []Adapter {
	all := r.Adapters()
	if len(f.Categories) == 0 {
		return all
	}
	out := make([]Adapter, 0, len(all))
	for _, a := range all {
		if f.HasCategory(a.Category()) {
			out = append(out, a)
		}
	}
	return out
}

// EventTypes returns every registered category with the event types its
// adapter recognizes.
func (r *Registry) EventTypes() map[Category][]string {
	out := make(map[Category][]string)
	for _, a := range r.Adapters() {
		types := a.EventTypes()
		cp := make([]string, len(types))
		copy(cp, types)
		out[a.Category()] = cp
	}
	return out
}

// KnownEventType reports whether any registered adapter recognizes et.
func (r *Registry) KnownEventType(et string) bool {
	for _, a := range r.Adapters() {
		for _, known := range a.EventTypes() {
			if known == et {
				return true
			}
		}
	}
	return false
}
