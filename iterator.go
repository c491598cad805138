package genflow

import (
	"context"
)

// Iterator is a generic interface for one-directional traversal through
// a collection or stream of key/value pairs.
type Iterator[K, V any] interface {
	// Next traverses the iterator to the next element
	// Returns true if the iterator advanced, or false if there are no more
	// elements or if an error occured (see Error() below)
	Next(ctx context.Context) bool

	// Key returns the key of the current element
	Key() K

	// Value returns the value of the current element
	Value() V

	// Error returns a non-nil value if an error occured processing Next()
	Error() error
}

// Stopper can be implemented by an iterator that holds resources, such as a
// pull iterator over a range function, which must be released if the
// iterator is abandoned before it is exhausted.
type Stopper interface {
	Stop()
}

// stopSource stops src if it is a Stopper
func stopSource(src any) {
	if s, ok := src.(Stopper); ok {
		s.Stop()
	}
}

// Size is an interface that can be implemented by an iterator that
// knows the number of elements in the collection when it is initialized
type Size interface {
	Size() uint
}
