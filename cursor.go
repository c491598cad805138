package genflow

import "context"

// CursorState describes where a Cursor is in its traversal of the source.
type CursorState int

const (
	// NotStarted cursors have not pulled anything from their source
	NotStarted CursorState = iota

	// Active cursors hold a current element that can be peeked any number
	// of times
	Active

	// Advanced cursors have handed out their current element;  the next
	// element is pulled when the cursor is next inspected
	Advanced

	// Exhausted cursors have no more elements.  This state is terminal.
	Exhausted
)

func (s CursorState) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Active:
		return "Active"
	case Advanced:
		return "Advanced"
	case Exhausted:
		return "Exhausted"
	default:
		return "unknown"
	}
}

// Cursor is the resumable production of pairs from an Iterator, with a
// current element that can be inspected without being consumed.
//
// Each element is pulled from the source exactly once, in order.  Peek
// never changes which element is current;  only Advance does.  Pulling is
// deferred until an element is actually inspected, so the cursor never
// reads ahead of its consumer.
//
// Cursor also implements Iterator, yielding the current element first.  It
// is not safe for concurrent use.
type Cursor[K, V any] struct {
	src   Iterator[K, V]
	ctx   context.Context
	state CursorState
	cur   Pair[K, V]
	last  Pair[K, V]
	sink  *errorSink
}

// NewCursor returns a Cursor over src.  Source errors are recorded and can
// be retrieved with Err.
func NewCursor[K, V any](ctx context.Context, src Iterator[K, V]) *Cursor[K, V] {
	return newCursor(ctx, src, &errorSink{handler: nullErrorHandler})
}

func newCursor[K, V any](ctx context.Context, src Iterator[K, V], sink *errorSink) *Cursor[K, V] {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Cursor[K, V]{
		src:  src,
		ctx:  ctx,
		sink: sink,
	}
}

func (c *Cursor[K, V]) pull(ctx context.Context) {
	if c.src.Next(ctx) {
		c.cur = Pair[K, V]{Key: c.src.Key(), Value: c.src.Value()}
		c.state = Active
		return
	}

	c.cur = Pair[K, V]{}
	c.state = Exhausted

	if err := c.src.Error(); err != nil {
		c.sink.report(err)
	}
}

func (c *Cursor[K, V]) peek(ctx context.Context) (Pair[K, V], bool) {
	switch c.state {
	case NotStarted, Advanced:
		c.pull(ctx)
	}

	if c.state == Active {
		return c.cur, true
	}

	return Pair[K, V]{}, false
}

func (c *Cursor[K, V]) advance(ctx context.Context) (Pair[K, V], bool) {
	p, ok := c.peek(ctx)
	if ok {
		c.state = Advanced
	}

	return p, ok
}

// Peek returns the current element without consuming it.  Repeated calls
// return the same element until Advance is called.  The second return value
// is false once the source is exhausted.
func (c *Cursor[K, V]) Peek() (Pair[K, V], bool) {
	return c.peek(c.ctx)
}

// Advance returns the current element and moves past it.  An immediately
// following Peek observes the next element.
//
// The next element is not pulled until it is inspected, so handing out the
// last element leaves the cursor Advanced rather than Exhausted.
func (c *Cursor[K, V]) Advance() (Pair[K, V], bool) {
	return c.advance(c.ctx)
}

// Exhausted reports whether the cursor is known to have no element left.
// It does not pull from the source, so it only turns true once an
// inspection has found the source empty:  after Advance hands out the last
// element it is still false, and the following Peek makes it true.
func (c *Cursor[K, V]) Exhausted() bool {
	return c.state == Exhausted
}

// State returns the cursor's current state.
func (c *Cursor[K, V]) State() CursorState {
	return c.state
}

// Stop releases the source if it implements Stopper and leaves the cursor
// exhausted.  It is safe to call Stop more than once.
func (c *Cursor[K, V]) Stop() {
	c.cur = Pair[K, V]{}
	c.state = Exhausted
	stopSource(c.src)
}

// Err returns the first error reported by the source, if any.
func (c *Cursor[K, V]) Err() error {
	return c.sink.err
}

// Next advances the cursor, implementing Iterator.  The first call yields
// the element that Peek would return.
func (c *Cursor[K, V]) Next(ctx context.Context) bool {
	p, ok := c.advance(ctx)
	if ok {
		c.last = p
	}

	return ok
}

// Key returns the key of the element yielded by the last call to Next.
func (c *Cursor[K, V]) Key() K {
	return c.last.Key
}

// Value returns the value of the element yielded by the last call to Next.
func (c *Cursor[K, V]) Value() V {
	return c.last.Value
}

// Error returns the first error reported by the source, if any.
func (c *Cursor[K, V]) Error() error {
	return c.sink.err
}
