package motion

import (
	"cmp"
	"log"
	"slices"
)

// Registry keeps modifiers sorted by ascending priority. Equal priorities
// keep their registration order.
type Registry struct {
	host       Host
	sorted     []Modifier
	registered []Modifier // registration order, used for teardown
}

// NewRegistry creates an empty registry whose modifiers are initialized with host.
func NewRegistry(host Host) *Registry {
	return &Registry{host: host}
}

// Add registers m and returns it. Registering an instance twice logs a
// warning and returns the already registered instance.
func (r *Registry) Add(m Modifier) Modifier {
	if m == nil {
		return nil
	}
	if i := r.indexOf(m); i >= 0 {
		log.Printf("[Registry] modifier %s already added", m.Kind())
		return r.sorted[i]
	}

	m.Init(r.host)
	r.sorted = append(r.sorted, m)
	r.registered = append(r.registered, m)
	slices.SortStableFunc(r.sorted, func(a, b Modifier) int {
		return cmp.Compare(a.Priority(), b.Priority())
	})
	return m
}

// Remove unregisters m. It reports false if m was not registered.
func (r *Registry) Remove(m Modifier) bool {
	i := r.indexOf(m)
	if i < 0 {
		return false
	}
	r.sorted = slices.Delete(r.sorted, i, i+1)
	if j := slices.Index(r.registered, m); j >= 0 {
		r.registered = slices.Delete(r.registered, j, j+1)
	}
	m.Remove()
	return true
}

// RemoveKind unregisters the first modifier of kind k in execution order.
func (r *Registry) RemoveKind(k Kind) bool {
	m, ok := r.Get(k)
	if !ok {
		return false
	}
	return r.Remove(m)
}

// Get returns the first modifier of kind k in execution order.
func (r *Registry) Get(k Kind) (Modifier, bool) {
	for _, m := range r.sorted {
		if m.Kind() == k {
			return m, true
		}
	}
	return nil, false
}

// Has reports whether any modifier of kind k is registered.
func (r *Registry) Has(k Kind) bool {
	_, ok := r.Get(k)
	return ok
}

// AllOfKind appends every modifier of kind k to out[:0] and returns it.
func (r *Registry) AllOfKind(k Kind, out []Modifier) []Modifier {
	out = out[:0]
	for _, m := range r.sorted {
		if m.Kind() == k {
			out = append(out, m)
		}
	}
	return out
}

// All returns the modifiers in execution order. The slice is owned by the
// registry and must not be modified.
func (r *Registry) All() []Modifier {
	return r.sorted
}

// Len returns the number of registered modifiers.
func (r *Registry) Len() int {
	return len(r.sorted)
}

// Clear removes every modifier in reverse registration order.
func (r *Registry) Clear() {
	for i := len(r.registered) - 1; i >= 0; i-- {
		r.registered[i].Remove()
	}
	r.sorted = nil
	r.registered = nil
}

func (r *Registry) indexOf(m Modifier) int {
	for i, existing := range r.sorted {
		if existing == m {
			return i
		}
	}
	return -1
}

// Find returns the first modifier of kind k as a T.
func Find[T Modifier](r *Registry, k Kind) (T, bool) {
	var zero T
	for _, m := range r.sorted {
		if m.Kind() != k {
			continue
		}
		if typed, ok := m.(T); ok {
			return typed, true
		}
	}
	return zero, false
}
