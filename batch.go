package genflow

import (
	"context"

	"github.com/jake-scott/go-genflow/dict"
)

// Batch is an ordered run of consecutive pairs from a pipeline, with their
// original keys.
type Batch[K comparable, V any] []Pair[K, V]

// Len returns the number of pairs in the batch.
func (b Batch[K, V]) Len() int {
	return len(b)
}

// Keys returns the keys of the batch in order.
func (b Batch[K, V]) Keys() []K {
	keys := make([]K, len(b))
	for i, p := range b {
		keys[i] = p.Key
	}
	return keys
}

// Values returns the values of the batch in order.
func (b Batch[K, V]) Values() []V {
	values := make([]V, len(b))
	for i, p := range b {
		values[i] = p.Value
	}
	return values
}

// ToDict returns the batch as a mapping.  A key repeated within the batch
// keeps its first position and its last value.
func (b Batch[K, V]) ToDict() *dict.Dict[K, V] {
	d := dict.New[K, V]()
	for _, p := range b {
		d.Set(p.Key, p.Value)
	}
	return d
}

// Batches returns a new pipeline whose elements are batches of up to size
// consecutive pairs of s, keyed by batch number starting at zero.  Every
// batch except possibly the last holds exactly size pairs;  the last holds
// whatever remains and an empty remainder produces no batch.
//
// Batches panics with a *BatchSizeError if size is not positive.  The check
// happens before anything is read from s, and s is left usable.
func Batches[K comparable, V any](s *Pipeline[K, V], size int, opts ...Option) *Pipeline[int, Batch[K, V]] {
	if size <= 0 {
		panic(&BatchSizeError{Size: size})
	}

	merged := s.stageOptions(opts...)
	src := s.take("Batches")

	i := &batchIterator[K, V]{
		src:  src,
		size: size,
		seq:  -1,
		trace: stageTrace{
			start: func() Tracer { return merged.tracer("Batches(%d)", size) },
		},
	}

	hint := (s.opts.sizeHint + uint(size) - 1) / uint(size)
	return nextPipeline[K, V, int, Batch[K, V]](s, i, hint, opts...)
}

type batchIterator[K comparable, V any] struct {
	src   Iterator[K, V]
	size  int
	seq   int
	cur   Batch[K, V]
	done  bool
	trace stageTrace
}

func (i *batchIterator[K, V]) Next(ctx context.Context) bool {
	if i.done {
		i.trace.exhausted()
		return false
	}

	batch := make(Batch[K, V], 0, i.size)
	for len(batch) < i.size {
		if !i.src.Next(ctx) {
			i.done = true
			break
		}
		batch = append(batch, Pair[K, V]{Key: i.src.Key(), Value: i.src.Value()})
	}

	if len(batch) == 0 {
		i.trace.exhausted()
		return false
	}

	i.trace.pulled()
	i.seq++
	i.cur = batch
	return true
}

func (i *batchIterator[K, V]) Key() int {
	return i.seq
}

func (i *batchIterator[K, V]) Value() Batch[K, V] {
	return i.cur
}

func (i *batchIterator[K, V]) Error() error {
	return i.src.Error()
}

func (i *batchIterator[K, V]) Stop() {
	i.done = true
	stopSource(i.src)
}
