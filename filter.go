package genflow

import (
	"context"

	"github.com/jake-scott/go-genflow/access"
)

// FilterFunc is a generic function type that takes an element's value and
// key and returns true if it is to be included or false if the element is
// to be excluded from the result set.
//
// Example:
//
//	func findEvenInts(i int, _ int) bool {
//	    return i%2 == 0
//	}
type FilterFunc[K, V any] func(value V, key K) bool

// Filter is the non-OO version of Pipeline.Filter().
func Filter[K comparable, V any](s *Pipeline[K, V], f FilterFunc[K, V], opts ...Option) *Pipeline[K, V] {
	return s.Filter(f, opts...)
}

// Filter returns a new pipeline containing the elements of this pipeline
// for which f(value, key) is true.  Surviving elements keep their original
// keys;  they are not renumbered.
//
// Nothing is read from this pipeline until the returned pipeline is driven.
func (s *Pipeline[K, V]) Filter(f FilterFunc[K, V], opts ...Option) *Pipeline[K, V] {
	merged := s.stageOptions(opts...)
	src := s.take("Filter")

	i := &filterIterator[K, V]{
		src: src,
		f:   f,
		trace: stageTrace{
			start: func() Tracer { return merged.tracer("Filter") },
		},
	}

	return nextPipeline[K, V, K, V](s, i, DefaultSizeHint, opts...)
}

// FilterField returns a new pipeline containing the elements whose named
// field is truthy, as decided by access.Truthy.  Elements without the field
// are dropped.
func (s *Pipeline[K, V]) FilterField(field string, opts ...Option) *Pipeline[K, V] {
	return FilterBy(s, MapFunc[K, V, any](access.Field[K, V](field)), opts...)
}

// FilterBy returns a new pipeline containing the elements for which the
// value selected by sel is truthy, as decided by access.Truthy.
func FilterBy[K comparable, V, R any](s *Pipeline[K, V], sel MapFunc[K, V, R], opts ...Option) *Pipeline[K, V] {
	return s.Filter(func(v V, k K) bool {
		return access.Truthy(sel(v, k))
	}, opts...)
}

type filterIterator[K, V any] struct {
	src   Iterator[K, V]
	f     FilterFunc[K, V]
	trace stageTrace
}

func (i *filterIterator[K, V]) Next(ctx context.Context) bool {
	for i.src.Next(ctx) {
		if i.f(i.src.Value(), i.src.Key()) {
			i.trace.pulled()
			return true
		}
	}

	i.trace.exhausted()
	return false
}

// the upstream cursor still holds the element that passed the filter
func (i *filterIterator[K, V]) Key() K {
	return i.src.Key()
}

func (i *filterIterator[K, V]) Value() V {
	return i.src.Value()
}

func (i *filterIterator[K, V]) Error() error {
	return i.src.Error()
}

func (i *filterIterator[K, V]) Stop() {
	stopSource(i.src)
}
