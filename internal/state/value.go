// Package state holds observable values owned by the composition root and
// injected into the components that read or write them.
package state

import "sync"

// Value is a single observable value. Subscribers are called after every
// Set, in registration order, with the value that was set. The zero Value
// holds the zero T and is ready to use.
type Value[T any] struct {
	mu          sync.RWMutex
	current     T
	nextID      int
	subscribers map[int]func(T)
	order       []int
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current:     initial,
		subscribers: make(map[int]func(T)),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the current value and notifies subscribers.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	v.current = next
	fns := v.snapshotSubscribers()
	v.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// Update applies fn to the current value under the write lock, then
// notifies subscribers with the result.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	next := fn(v.current)
	v.current = next
	fns := v.snapshotSubscribers()
	v.mu.Unlock()

	for _, f := range fns {
		f(next)
	}
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is safe to call more than once.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.subscribers == nil {
		v.subscribers = make(map[int]func(T))
	}
	id := v.nextID
	v.nextID++
	v.subscribers[id] = fn
	v.order = append(v.order, id)

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if _, ok := v.subscribers[id]; !ok {
			return
		}
		delete(v.subscribers, id)
		for i, sid := range v.order {
			if sid == id {
				v.order = append(v.order[:i], v.order[i+1:]...)
				break
			}
		}
	}
}

// snapshotSubscribers must be called with mu held.
func (v *Value[T]) snapshotSubscribers() []func(T) {
	fns := make([]func(T), 0, len(v.order))
	for _, id := range v.order {
		fns = append(fns, v.subscribers[id])
	}
	return fns
}
