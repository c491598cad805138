package genflow

import (
	"errors"
	"iter"

	"github.com/bytedance/sonic"
	"github.com/jake-scott/go-genflow/dict"
)

// Array is the materialized form of a pipeline returned by ToArray.
// Exactly one of Dict and List is set.
type Array[K comparable, V any] struct {
	Dict *dict.Dict[K, V]
	List []V
}

// MarshalJSON encodes whichever form the array holds.
func (a Array[K, V]) MarshalJSON() ([]byte, error) {
	if a.Dict != nil {
		return a.Dict.MarshalJSON()
	}
	if a.List == nil {
		return []byte("[]"), nil
	}

	return sonic.Marshal(a.List)
}

// ToArray drains the pipeline.  With preserveKeys it collects a mapping in
// production order (see ToDict), otherwise a dense list of values (see
// ToSlice).
func (s *Pipeline[K, V]) ToArray(preserveKeys bool, opts ...Option) Array[K, V] {
	if preserveKeys {
		return Array[K, V]{Dict: s.ToDict(opts...)}
	}

	return Array[K, V]{List: s.ToSlice(opts...)}
}

// ToDict drains the pipeline into a mapping that keeps the order in which
// keys were first produced.  A key produced more than once holds its last
// value.
//
// Collection continues from wherever the pipeline's cursor stands, including
// an element that has only been inspected with First.
func (s *Pipeline[K, V]) ToDict(opts ...Option) *dict.Dict[K, V] {
	d := dict.New[K, V]()
	s.drain("ToDict", opts, func(k K, v V) {
		d.Set(k, v)
	})

	return d
}

// ToSlice drains the pipeline into a slice of its values, discarding keys.
func (s *Pipeline[K, V]) ToSlice(opts ...Option) []V {
	out := make([]V, 0, s.opts.sizeHint)
	s.drain("ToSlice", opts, func(_ K, v V) {
		out = append(out, v)
	})

	return out
}

// Pairs drains the pipeline into a slice of its pairs.  Unlike ToDict,
// repeated keys are all kept.
func (s *Pipeline[K, V]) Pairs(opts ...Option) []Pair[K, V] {
	out := make([]Pair[K, V], 0, s.opts.sizeHint)
	s.drain("Pairs", opts, func(k K, v V) {
		out = append(out, Pair[K, V]{Key: k, Value: v})
	})

	return out
}

// First returns the value of the pipeline's current element without
// consuming it, or false if the pipeline is empty.  It can be called any
// number of times;  a later drain still includes the element, once, in its
// original position.
func (s *Pipeline[K, V]) First() (V, bool) {
	p, ok := s.FirstPair()
	return p.Value, ok
}

// FirstPair is like First but returns the key as well as the value.
func (s *Pipeline[K, V]) FirstPair() (Pair[K, V], bool) {
	s.check("First")
	return s.c.Peek()
}

// IsEmpty reports whether the pipeline has no remaining elements.  It does
// not consume anything.
func (s *Pipeline[K, V]) IsEmpty() bool {
	s.check("IsEmpty")
	_, ok := s.c.Peek()
	return !ok
}

// All returns an iterator over the remaining pairs for use with range.  The
// pipeline is moved into the iterator.  Breaking out of the loop stops the
// pipeline's source, after which the iterator yields nothing.
func (s *Pipeline[K, V]) All() iter.Seq2[K, V] {
	c := s.take("All")

	return func(yield func(K, V) bool) {
		for {
			p, ok := c.Advance()
			if !ok {
				return
			}
			if !yield(p.Key, p.Value) {
				c.Stop()
				return
			}
		}
	}
}

// Iterator returns the cursor underlying the pipeline, moving it to the
// caller.  The cursor yields the current element first, so an element
// inspected with First is not lost.
func (s *Pipeline[K, V]) Iterator() *Cursor[K, V] {
	return s.take("Iterator")
}

// MarshalJSON drains the pipeline with keys preserved and encodes the
// result.  See dict.Dict.MarshalJSON.
func (s *Pipeline[K, V]) MarshalJSON() (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			var oe *OwnershipError
			if e, ok := r.(error); ok && errors.As(e, &oe) {
				err = oe
				return
			}
			panic(r)
		}
	}()

	return s.ToDict().MarshalJSON()
}
