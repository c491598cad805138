package genflow

import (
	"errors"
	"fmt"
)

var (
	// ErrMoved is the cause of a panic when a pipeline is used after it was
	// chained into a derived pipeline or handed out as an iterator.
	ErrMoved = errors.New("pipeline has been moved")

	// ErrConsumed is the cause of a panic when a pipeline is used after a
	// terminal operation drained it.
	ErrConsumed = errors.New("pipeline has been consumed")

	// ErrInvalidBatchSize is the cause of a panic when Batch is called with a
	// size that is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)

// OwnershipError is the panic value raised when a pipeline that no longer
// owns its cursor is driven.
type OwnershipError struct {
	Op  string
	Err error
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("genflow: %s: %s", e.Op, e.Err)
}

func (e *OwnershipError) Unwrap() error {
	return e.Err
}

// BatchSizeError is the panic value raised by Batch for a size that is not
// positive.
type BatchSizeError struct {
	Size int
}

func (e *BatchSizeError) Error() string {
	return fmt.Sprintf("genflow: %s, got %d", ErrInvalidBatchSize, e.Size)
}

func (e *BatchSizeError) Unwrap() error {
	return ErrInvalidBatchSize
}

// AbortError is the panic value raised when a source fails and the
// pipeline's error handler elects to abort.
type AbortError struct {
	Err error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("genflow: aborted: %s", e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// ErrorContext provides error handler callbacks with a hint about where in
// processing the error occured
type ErrorContext int

const (
	// ErrorContextIterator hints that the error occured reading an iterator
	ErrorContextIterator ErrorContext = iota

	// We don't know which phase of processing the error occured when
	// the hint is ErrorContextOther
	ErrorContextOther
)

func (c ErrorContext) String() string {
	switch c {
	case ErrorContextIterator:
		return "iterator"
	default:
		return "other"
	}
}

// Functions complying with the ErrorHandler prototype are called when the
// source of a pipeline reports an error.  The source has stopped producing
// elements by the time the handler is called.
//
// Parameters:
//   - where describes the context in which the error occured
//   - err is the error to be handled
//
// The handler should return true to treat the error as the end of the
// sequence, or false to abort:  the operation that was driving the pipeline
// then panics with an *AbortError.  The default handler returns true.
//
// Whatever the handler returns, the error is available from Pipeline.Err.
type ErrorHandler func(where ErrorContext, err error) bool

func nullErrorHandler(ErrorContext, error) bool {
	return true
}

// errorSink is shared by every cursor of a pipeline chain so that an error
// from the source is reported once, however many stages it passes through.
type errorSink struct {
	err     error
	handler ErrorHandler
}

func (s *errorSink) report(err error) {
	if s.err != nil {
		return
	}
	s.err = err

	if !s.handler(ErrorContextIterator, err) {
		panic(&AbortError{Err: err})
	}
}
