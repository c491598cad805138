// Package channel implements an interator that reads a data stream from
// the supplied channel.  Elements are keyed by the order they were
// received in, starting at zero.
package channel

import "context"

// Iterator traverses the elements of type T from a channel, until
// the channel is closed.
type Iterator[T any] struct {
	ch   <-chan T
	item *T
	seq  int
	err  error
}

// New returns an implementation of Iterator that traverses the
// provided channel until reading the channel returns an error,  or the channel
// is closed.
//
// Iterator does not support the Size interface
func New[T any](ch <-chan T) Iterator[T] {
	return Iterator[T]{
		ch:  ch,
		seq: -1,
	}
}

// Next reads an item from the channel and stores the value, which can be
// retrieved using the Value() method.  Next returns true if an element was
// successfully read from the channel, or false if the channel was closed or
// if the context expired.
//
// If the context expired, Error() will return the result of the context's
// Err() function.
func (i *Iterator[T]) Next(ctx context.Context) bool {
	ret := false

	select {
	case item, ok := <-i.ch:
		if ok {
			i.item = &item
			i.seq++
			ret = true
		}

		// if ok is false, the read failed due to empty closed channel
	case <-ctx.Done():
		i.err = ctx.Err()
	}

	return ret
}

// Key returns the receive sequence number of the current element, or -1
// if Next has not been called.
func (i *Iterator[T]) Key() int {
	return i.seq
}

// Value returns the value stored by the last successful Next method call,
// or the zero value of type T if Next has not been called.
func (i *Iterator[T]) Value() T {
	// return the zero value if called before Next()
	if i.item == nil {
		var ret T
		return ret
	}

	return *i.item
}

// Error returns the context expiry reason if any from a previous call
// to Next, otherwise it returns nil.
func (i *Iterator[T]) Error() error {
	return i.err
}
