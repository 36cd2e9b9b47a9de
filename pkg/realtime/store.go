package realtime

import "sync"

// Registry holds keyed state values, e.g. one game session per participant.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Get returns the value stored under id.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	return v, ok
}

// GetOrCreate returns the value under id, calling create to build it when missing.
// create runs under the registry lock and must not call back into the registry.
func (r *Registry[T]) GetOrCreate(id string, create func() T) (T, bool) {
	r.mu.RLock()
	v, ok := r.items[id]
	r.mu.RUnlock()
	if ok {
		return v, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok = r.items[id]; ok {
		return v, false
	}
	v = create()
	r.items[id] = v
	return v, true
}

// Delete removes id and returns the value that was stored.
func (r *Registry[T]) Delete(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[id]
	if ok {
		delete(r.items, id)
	}
	return v, ok
}

// Len reports how many values are stored.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Values returns a snapshot of the stored values in no particular order.
func (r *Registry[T]) Values() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out
}
