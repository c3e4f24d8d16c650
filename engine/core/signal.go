package core

// signal is a synchronous observer list. Handlers run on the loop goroutine
// in subscription order.
type signal[T any] struct {
	next     int
	handlers []handler[T]
}

type handler[T any] struct {
	id int
	fn func(T)
}

func (s *signal[T]) subscribe(fn func(T)) func() {
	s.next++
	id := s.next
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return func() {
		for i, h := range s.handlers {
			if h.id == id {
				s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

func (s *signal[T]) fire(v T) {
	// Copy so handlers may unsubscribe while firing.
	hs := append([]handler[T](nil), s.handlers...)
	for _, h := range hs {
		h.fn(v)
	}
}
