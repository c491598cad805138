// Package genflow provides lazy, single-pass pipelines over ordered
// sequences of key/value pairs.
//
// A Pipeline wraps a Cursor over a source.  Transformations such as Map,
// Filter, Batch and IndexBy return a new Pipeline without reading anything;
// elements are pulled through the whole chain one at a time when a terminal
// operation such as ToDict, Reduce, Count or GroupBy drives it.  First and
// IsEmpty inspect the head of a pipeline without consuming it.
//
// Pipelines have a single owner.  Chaining moves the cursor into the derived
// pipeline, and using the original afterwards panics with an error wrapping
// ErrMoved.  A pipeline drained by a terminal operation panics with an error
// wrapping ErrConsumed if it is used again.
package genflow

import (
	"context"
	"iter"
	"sync/atomic"

	"github.com/jake-scott/go-genflow/dict"
	"github.com/jake-scott/go-genflow/iter/channel"
	"github.com/jake-scott/go-genflow/iter/scanner"
	"github.com/jake-scott/go-genflow/iter/seq"
	"github.com/jake-scott/go-genflow/iter/slice"
	"github.com/rs/zerolog"
)

// DefaultSizeHint is used by materializing operations for initial allocations
// when the source cannot provide size infomation and a size hint has not
// been provided.
var DefaultSizeHint uint = 100

var pipelineCounter atomic.Uint32

type ownership int

const (
	owned ownership = iota
	moved
	consumed
)

// Pipeline is a chainable, lazily evaluated sequence of key/value pairs.
type Pipeline[K comparable, V any] struct {
	c     *Cursor[K, V]
	id    uint32
	owner ownership
	opts  options
}

type options struct {
	inheritOptions bool
	sizeHint       uint
	tracer         TraceFunc
	tracing        bool
	ctx            context.Context
	onError        ErrorHandler
}

func defaultOptions() options {
	return options{
		ctx:      context.Background(),
		sizeHint: DefaultSizeHint,
		onError:  nullErrorHandler,
	}
}

// Options customize how a pipeline pulls from its source, reports errors
// and traces its stages.
type Option func(o *options)

// The SizeHint option provides materializing operations with a guideline
// regarding the number of elements there are to collect.  This is primarily
// used with sources that cannot provide the information themselves.
//
// If not specified and the source cannot provide the information, the
// default value DefaultSizeHint is used.
func SizeHint(hint uint) Option {
	return func(o *options) {
		o.sizeHint = hint
	}
}

// WithContext attaches the provided context to the pipeline.  It is passed
// to the source on every pull;  cancelling it ends the sequence and is
// reported to the error handler.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithTraceFunc sets the trace function for the pipeline.  Use WithTracing
// to enable/disable tracing.
func WithTraceFunc(f TraceFunc) Option {
	return func(o *options) {
		o.tracer = f
	}
}

// WithLogger sends trace messages to l.  Use WithTracing to enable/disable
// tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.tracer = LoggerTraceFunc(l)
	}
}

// WithTracing enables tracing for the pipeline.  If a custom trace function
// has not been set using WithTraceFunc or WithLogger, DefaultTracer is used.
func WithTracing(enable bool) Option {
	return func(o *options) {
		o.tracing = enable
	}
}

// WithErrorHandler installs a custom error handler which will be called
// when the source reports an error.
//
// The handler should return true to end the sequence quietly or false to
// abort.  See ErrorHandler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(o *options) {
		o.onError = handler
	}
}

// InheritOptions causes this pipeline's options to be inherited by the
// pipelines derived from it.  The derived pipeline can override these
// inherited options.  Further inheritence can be disabled by passing this
// option with a false value.
//
// The default is no inheritence.
func InheritOptions(inherit bool) Option {
	return func(o *options) {
		o.inheritOptions = inherit
	}
}

func (o *options) processOptions(opts ...Option) {
	for _, f := range opts {
		f(o)
	}
}

// FromIterator instantiates a pipeline from an Iterator and optional set of
// options.
func FromIterator[K comparable, V any](i Iterator[K, V], opts ...Option) *Pipeline[K, V] {
	p := &Pipeline[K, V]{
		opts: defaultOptions(),
		id:   pipelineCounter.Add(1),
	}
	p.opts.processOptions(opts...)

	if sh, ok := i.(Size); ok {
		p.opts.sizeHint = sh.Size()
	}

	p.c = newCursor(p.opts.ctx, i, &errorSink{handler: p.opts.onError})
	return p
}

// From instantiates a pipeline using a slice iterator backed by the
// provided slice.  Elements are keyed by their index.
func From[V any](s []V, opts ...Option) *Pipeline[int, V] {
	it := slice.New(s)
	return FromIterator[int, V](&it, opts...)
}

// Gen is shorthand for From.
func Gen[V any](s []V, opts ...Option) *Pipeline[int, V] {
	return From(s, opts...)
}

// FromChannel instantiates a pipeline using a channel iterator backed by the
// provided channel.  Elements are keyed by the order they are received in.
func FromChannel[V any](ch <-chan V, opts ...Option) *Pipeline[int, V] {
	it := channel.New(ch)
	return FromIterator[int, V](&it, opts...)
}

// FromScanner instantiates a pipeline using a scanner iterator, backed by
// the provided scanner.  Tokens are keyed by their position in the stream.
func FromScanner(s scanner.Scanner, opts ...Option) *Pipeline[int, string] {
	it := scanner.New(s)
	return FromIterator[int, string](&it, opts...)
}

// FromSeq instantiates a pipeline from a range function.  Values are keyed
// by their position.  A pipeline abandoned before its sequence is exhausted
// should be stopped with Stop.
func FromSeq[V any](s iter.Seq[V], opts ...Option) *Pipeline[int, V] {
	it := seq.New(s)
	return FromIterator[int, V](&it, opts...)
}

// FromSeq2 instantiates a pipeline from a range function yielding
// key/value pairs.  See FromSeq about stopping it.
func FromSeq2[K comparable, V any](s iter.Seq2[K, V], opts ...Option) *Pipeline[K, V] {
	it := seq.New2(s)
	return FromIterator[K, V](&it, opts...)
}

// FromDict instantiates a pipeline over the pairs of d in insertion order.
// The pairs are copied when the pipeline is created, so later changes to d
// are not seen.
func FromDict[K comparable, V any](d *dict.Dict[K, V], opts ...Option) *Pipeline[K, V] {
	pairs := make([]Pair[K, V], 0, d.Len())
	for k, v := range d.All() {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
	}

	return FromPairs(pairs, opts...)
}

// FromPairs instantiates a pipeline over an explicit list of pairs, which
// may repeat keys.
func FromPairs[K comparable, V any](pairs []Pair[K, V], opts ...Option) *Pipeline[K, V] {
	it := pairIterator[K, V]{pairs: pairs}
	return FromIterator[K, V](&it, opts...)
}

type pairIterator[K, V any] struct {
	pairs []Pair[K, V]
	pos   int
	err   error
}

func (i *pairIterator[K, V]) Size() uint {
	return uint(len(i.pairs))
}

func (i *pairIterator[K, V]) Next(ctx context.Context) bool {
	if i.pos >= len(i.pairs) {
		return false
	}

	select {
	case <-ctx.Done():
		i.err = ctx.Err()
		return false
	default:
	}

	i.pos++
	return true
}

func (i *pairIterator[K, V]) Key() K {
	if i.pos == 0 {
		var k K
		return k
	}
	return i.pairs[i.pos-1].Key
}

func (i *pairIterator[K, V]) Value() V {
	if i.pos == 0 {
		var v V
		return v
	}
	return i.pairs[i.pos-1].Value
}

func (i *pairIterator[K, V]) Error() error {
	return i.err
}

// Err returns the first error reported by the pipeline's source, if any.
// It can be called at any time, including after the pipeline has been
// moved or consumed.
func (s *Pipeline[K, V]) Err() error {
	return s.c.Err()
}

// Stop abandons the pipeline, releasing its source if the source holds
// resources.  Pipelines created by FromSeq and FromSeq2 run their range
// function as a pull iterator, which is only released on its own once the
// sequence is exhausted;  stop such a pipeline when dropping it early, for
// example after First or an Apply that returned false.
//
// Stop follows the chain, so stopping a derived pipeline stops the source it
// was built from.  The pipeline is consumed afterwards.
func (s *Pipeline[K, V]) Stop() {
	s.check("Stop")
	s.c.Stop()
	s.drained()
}

func (s *Pipeline[K, V]) tracer(description string, v ...any) Tracer {
	if s.opts.tracing {
		return NewTracer(s.id, description, s.opts.tracer, v...)
	} else {
		return NullTracer{}
	}
}

// check panics if s does not own its cursor any more
func (s *Pipeline[K, V]) check(op string) {
	switch s.owner {
	case moved:
		panic(&OwnershipError{Op: op, Err: ErrMoved})
	case consumed:
		panic(&OwnershipError{Op: op, Err: ErrConsumed})
	}
}

// take transfers ownership of s's cursor to the caller
func (s *Pipeline[K, V]) take(op string) *Cursor[K, V] {
	s.check(op)
	s.owner = moved
	return s.c
}

// drained marks s as consumed by a terminal operation
func (s *Pipeline[K, V]) drained() {
	s.owner = consumed
}

// nextPipeline returns a pipeline reading from i, which wraps the cursor of
// s.  The option handling follows the inheritence rules of InheritOptions.
func nextPipeline[K comparable, V any, NK comparable, NV any](s *Pipeline[K, V], i Iterator[NK, NV], sizeHint uint, opts ...Option) *Pipeline[NK, NV] {
	next := &Pipeline[NK, NV]{
		id: pipelineCounter.Add(1),
	}

	// if this pipeline has inheritence enabled them copy its options to the
	// next pipeline
	if s.opts.inheritOptions {
		next.opts = s.opts
	} else {
		next.opts = defaultOptions()
		next.opts.ctx = s.opts.ctx
	}
	next.opts.sizeHint = sizeHint
	next.opts.processOptions(opts...)

	next.c = newCursor(next.opts.ctx, i, s.c.sink)
	return next
}

// stageOptions returns s's options overridden by the options passed to a
// stage call
func (s *Pipeline[K, V]) stageOptions(opts ...Option) *Pipeline[K, V] {
	merged := *s
	merged.opts.processOptions(opts...)
	return &merged
}
