package genflow

import (
	"context"

	"github.com/jake-scott/go-genflow/access"
)

// MapFunc is a generic function that takes an element's value and key and
// returns a transformed value.
//
// Example:
//
//	func domainName(email string, _ int) string {
//	    return strings.SplitN(email, "@", 2)[1]
//	}
type MapFunc[K, V, M any] func(value V, key K) M

// Map returns a new pipeline whose elements are this pipeline's elements
// with their values replaced by m(value, key).  Keys are unchanged.
//
// If the map function returns values of a different type to the input values,
// the non-OO version of Map() must be used instead.
//
// Nothing is read from this pipeline until the returned pipeline is driven.
func (s *Pipeline[K, V]) Map(m MapFunc[K, V, V], opts ...Option) *Pipeline[K, V] {
	return Map(s, m, opts...)
}

// Pluck returns a new pipeline whose values are the named field of each of
// this pipeline's values, resolved with access.Resolve.  Values without the
// field become nil.
func (s *Pipeline[K, V]) Pluck(field string, opts ...Option) *Pipeline[K, any] {
	return Map(s, MapFunc[K, V, any](access.Field[K, V](field)), opts...)
}

// Map is the non-OO version of Pipeline.Map().  It must be used in the case
// where the map function returns items of a different type than the input
// elements, due to limitations of Golang's generic syntax.
func Map[K comparable, V, M any](s *Pipeline[K, V], m MapFunc[K, V, M], opts ...Option) *Pipeline[K, M] {
	merged := s.stageOptions(opts...)
	src := s.take("Map")

	i := &mapIterator[K, V, M]{
		src: src,
		m:   m,
		trace: stageTrace{
			start: func() Tracer { return merged.tracer("Map") },
		},
	}

	return nextPipeline[K, V, K, M](s, i, s.opts.sizeHint, opts...)
}

// K: key type;  V: input type;  M: mapped type
type mapIterator[K, V, M any] struct {
	src   Iterator[K, V]
	m     MapFunc[K, V, M]
	key   K
	val   M
	trace stageTrace
}

func (i *mapIterator[K, V, M]) Next(ctx context.Context) bool {
	if !i.src.Next(ctx) {
		i.trace.exhausted()
		return false
	}

	i.trace.pulled()
	i.key = i.src.Key()
	i.val = i.m(i.src.Value(), i.key)
	return true
}

func (i *mapIterator[K, V, M]) Key() K {
	return i.key
}

func (i *mapIterator[K, V, M]) Value() M {
	return i.val
}

func (i *mapIterator[K, V, M]) Error() error {
	return i.src.Error()
}

func (i *mapIterator[K, V, M]) Stop() {
	stopSource(i.src)
}
