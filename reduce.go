package genflow

// ReduceFunc is a generic function that folds an element's value and key
// into an accumulator.
type ReduceFunc[K, V, A any] func(acc A, value V, key K) A

// Reduce is the non-OO version of Pipeline.Reduce().  It must be used when
// the accumulator type differs from the element type.
func Reduce[K comparable, V, A any](s *Pipeline[K, V], initial A, r ReduceFunc[K, V, A], opts ...Option) A {
	acc := initial
	s.drain("Reduce", opts, func(k K, v V) {
		acc = r(acc, v, k)
	})

	return acc
}

// Reduce folds the remaining elements of the pipeline left to right,
// starting with initial, and returns the final accumulator.  Each element is
// visited exactly once, in order.
func (s *Pipeline[K, V]) Reduce(initial V, r ReduceFunc[K, V, V], opts ...Option) V {
	return Reduce(s, initial, r, opts...)
}

// Count drains the pipeline and returns the number of elements that
// remained in it.  Elements are not retained.
func (s *Pipeline[K, V]) Count(opts ...Option) int {
	n := 0
	s.drain("Count", opts, func(K, V) {
		n++
	})

	return n
}

// Apply calls f for each remaining element until f returns false or the
// pipeline is exhausted, and returns the number of times f was called.
//
// The element for which f returned false is consumed.  If Apply stops early
// the pipeline remains usable from the following element;  if it reaches
// the end the pipeline is consumed.
func (s *Pipeline[K, V]) Apply(f func(value V, key K) bool, opts ...Option) int {
	s.check("Apply")

	t := s.stageOptions(opts...).tracer("Apply")
	defer t.End()

	n := 0
	for {
		p, ok := s.c.Advance()
		if !ok {
			s.drained()
			break
		}

		n++
		if !f(p.Value, p.Key) {
			t.Msg("stopped after %d elements", n)
			break
		}
	}

	return n
}

// drain drives the pipeline to exhaustion, calling f for every pair, and
// marks it consumed.
func (s *Pipeline[K, V]) drain(op string, opts []Option, f func(K, V)) {
	s.check(op)

	t := s.stageOptions(opts...).tracer(op)
	defer t.End()

	n := 0
	for {
		p, ok := s.c.Advance()
		if !ok {
			break
		}
		f(p.Key, p.Value)
		n++
	}

	t.Msg("consumed %d elements", n)
	s.drained()
}
