package genflow

import (
	"context"

	"github.com/jake-scott/go-genflow/access"
)

// KeyFunc derives a new key for an element from its value and current key.
type KeyFunc[K, V any, NK comparable] func(value V, key K) NK

// IndexBy returns a new pipeline whose elements are the elements of s
// re-keyed by f(value, key).  Values are unchanged.  Keys produced more than
// once are all passed on;  when the pipeline is materialized with ToDict the
// last value for a key wins.
func IndexBy[K comparable, V any, NK comparable](s *Pipeline[K, V], f KeyFunc[K, V, NK], opts ...Option) *Pipeline[NK, V] {
	merged := s.stageOptions(opts...)
	src := s.take("IndexBy")

	i := &indexIterator[K, V, NK]{
		src: src,
		f:   f,
		trace: stageTrace{
			start: func() Tracer { return merged.tracer("IndexBy") },
		},
	}

	return nextPipeline[K, V, NK, V](s, i, s.opts.sizeHint, opts...)
}

// IndexByField re-keys the pipeline by the named field of each value,
// resolved with access.Resolve.  Values without the field are keyed by nil.
//
// The field values become map keys when the pipeline is materialized, so
// they must be comparable at run time.
func (s *Pipeline[K, V]) IndexByField(field string, opts ...Option) *Pipeline[any, V] {
	return IndexBy(s, KeyFunc[K, V, any](access.Field[K, V](field)), opts...)
}

type indexIterator[K, V any, NK comparable] struct {
	src   Iterator[K, V]
	f     KeyFunc[K, V, NK]
	key   NK
	trace stageTrace
}

func (i *indexIterator[K, V, NK]) Next(ctx context.Context) bool {
	if !i.src.Next(ctx) {
		i.trace.exhausted()
		return false
	}

	i.trace.pulled()
	i.key = i.f(i.src.Value(), i.src.Key())
	return true
}

func (i *indexIterator[K, V, NK]) Key() NK {
	return i.key
}

func (i *indexIterator[K, V, NK]) Value() V {
	return i.src.Value()
}

func (i *indexIterator[K, V, NK]) Error() error {
	return i.src.Error()
}

func (i *indexIterator[K, V, NK]) Stop() {
	stopSource(i.src)
}
