package motion

// Signal is a synchronous multicast notification. Subscribers run in
// subscription order on the emitting goroutine.
type Signal[T any] struct {
	subs   []subscriber[T]
	nextID int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that unregisters it.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every subscriber with v. Subscriptions changed during Emit
// take effect on the next call.
func (s *Signal[T]) Emit(v T) {
	if len(s.subs) == 0 {
		return
	}
	subs := s.subs
	for _, sub := range subs {
		sub.fn(v)
	}
}

// Clear drops every subscriber.
func (s *Signal[T]) Clear() {
	s.subs = nil
}

// Len returns the number of subscribers.
func (s *Signal[T]) Len() int {
	return len(s.subs)
}
