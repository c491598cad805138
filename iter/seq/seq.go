// Package seq implements an iterator over Go range functions (iter.Seq and
// iter.Seq2).
//
// The range function is converted to a pull iterator the first time Next is
// called and stopped as soon as it is exhausted, the context is cancelled,
// or Stop is called.  A partially read Iterator that is abandoned should be
// stopped by its owner.
package seq

import (
	"context"
	"iter"
)

// Iterator traverses the key/value pairs produced by an iter.Seq2.
//
// Iterator does not support the Size interface.
type Iterator[K, V any] struct {
	seq  iter.Seq2[K, V]
	next func() (K, V, bool)
	stop func()
	key  K
	val  V
	done bool
	err  error
}

// New2 returns an Iterator over the pairs produced by s.
func New2[K, V any](s iter.Seq2[K, V]) Iterator[K, V] {
	return Iterator[K, V]{
		seq: s,
	}
}

// New returns an Iterator over the values produced by s, keyed by their
// position starting at zero.
func New[V any](s iter.Seq[V]) Iterator[int, V] {
	return New2(func(yield func(int, V) bool) {
		i := 0
		for v := range s {
			if !yield(i, v) {
				return
			}
			i++
		}
	})
}

// Next pulls the next pair from the range function.  It returns false when
// the function has no more pairs, after Stop, or if the context is
// cancelled, in which case Error returns the context's error.
func (i *Iterator[K, V]) Next(ctx context.Context) bool {
	if i.done {
		return false
	}

	select {
	case <-ctx.Done():
		i.err = ctx.Err()
		i.Stop()
		return false
	default:
	}

	if i.next == nil {
		i.next, i.stop = iter.Pull2(i.seq)
	}

	k, v, ok := i.next()
	if !ok {
		i.Stop()
		return false
	}

	i.key, i.val = k, v
	return true
}

// Key returns the key of the current pair.
func (i *Iterator[K, V]) Key() K {
	return i.key
}

// Value returns the value of the current pair.
func (i *Iterator[K, V]) Value() V {
	return i.val
}

// Error returns the context's error if the context was cancelled during a
// call to Next.
func (i *Iterator[K, V]) Error() error {
	return i.err
}

// Stop releases the pull iterator.  Next returns false after Stop.  It is
// safe to call Stop more than once.
func (i *Iterator[K, V]) Stop() {
	i.done = true
	if i.stop != nil {
		i.stop()
	}
}
