package genflow

import (
	"context"
	"testing"

	"github.com/jake-scott/go-genflow/iter/slice"
	"github.com/stretchr/testify/assert"
)

func TestCursorPeekIsIdempotent(t *testing.T) {
	assert := assert.New(t)

	i := newCountingIter([]string{"a", "b", "c"})
	c := NewCursor[int, string](context.Background(), i)

	assert.Equal(NotStarted, c.State())
	assert.False(c.Exhausted())
	assert.Equal(0, i.pulls)

	for range 5 {
		p, ok := c.Peek()
		assert.True(ok)
		assert.Equal(PairOf(0, "a"), p)
	}
	assert.Equal(Active, c.State())
	assert.Equal(1, i.pulls)
}

func TestCursorAdvance(t *testing.T) {
	assert := assert.New(t)

	i := newCountingIter([]string{"a", "b"})
	c := NewCursor[int, string](context.Background(), i)

	// advancing from NotStarted pulls and returns the first element
	p, ok := c.Advance()
	assert.True(ok)
	assert.Equal(PairOf(0, "a"), p)
	assert.Equal(Advanced, c.State())

	// the next element is not pulled until it is inspected
	assert.Equal(1, i.pulls)

	p, ok = c.Peek()
	assert.True(ok)
	assert.Equal(PairOf(1, "b"), p)
	assert.Equal(2, i.pulls)

	p, ok = c.Advance()
	assert.True(ok)
	assert.Equal(PairOf(1, "b"), p)

	_, ok = c.Advance()
	assert.False(ok)
	assert.Equal(Exhausted, c.State())
	assert.True(c.Exhausted())
	assert.Equal(3, i.pulls)

	// exhaustion is terminal and has no side effects
	_, ok = c.Peek()
	assert.False(ok)
	_, ok = c.Advance()
	assert.False(ok)
	assert.Equal(3, i.pulls)
	assert.NoError(c.Err())
}

func TestCursorEmptySource(t *testing.T) {
	assert := assert.New(t)

	c := NewCursor[int, int](context.Background(), newCountingIter([]int{}))
	assert.False(c.Exhausted())

	_, ok := c.Peek()
	assert.False(ok)
	assert.True(c.Exhausted())
	assert.Equal("Exhausted", c.State().String())
}

func TestCursorAsIterator(t *testing.T) {
	assert := assert.New(t)

	it := slice.New([]int{10, 20, 30})
	c := NewCursor[int, int](context.Background(), &it)

	// a peeked head is the first element the iterator yields
	head, _ := c.Peek()
	assert.Equal(10, head.Value)

	ctx := context.Background()
	var keys, values []int
	for c.Next(ctx) {
		keys = append(keys, c.Key())
		values = append(values, c.Value())
	}

	assert.Equal([]int{0, 1, 2}, keys)
	assert.Equal([]int{10, 20, 30}, values)
	assert.NoError(c.Error())
}

func TestCursorRecordsError(t *testing.T) {
	assert := assert.New(t)

	it := badSliceIter{slice.New(hundredInts), nil}
	c := NewCursor[int, int](context.Background(), &it)

	n := 0
	for {
		if _, ok := c.Advance(); !ok {
			break
		}
		n++
	}

	assert.Equal(countIntsBefore66, n)
	assert.ErrorIs(c.Err(), errIs66)
	assert.ErrorIs(c.Error(), errIs66)
}

func TestCursorStateString(t *testing.T) {
	assert.Equal(t, "NotStarted", NotStarted.String())
	assert.Equal(t, "Active", Active.String())
	assert.Equal(t, "Advanced", Advanced.String())
	assert.Equal(t, "Exhausted", Exhausted.String())
	assert.Equal(t, "unknown", CursorState(42).String())
}

func TestCursorExhaustedAfterLastAdvance(t *testing.T) {
	assert := assert.New(t)

	c := NewCursor[int, int](context.Background(), newCountingIter([]int{1}))

	_, ok := c.Advance()
	assert.True(ok)

	// nothing is known about the next element until it is inspected
	assert.Equal(Advanced, c.State())
	assert.False(c.Exhausted())

	_, ok = c.Peek()
	assert.False(ok)
	assert.True(c.Exhausted())
}

type stoppingIter struct {
	countingIter[int]
	stops int
}

func (i *stoppingIter) Stop() {
	i.stops++
}

func TestCursorStop(t *testing.T) {
	assert := assert.New(t)

	i := &stoppingIter{countingIter: countingIter[int]{Iterator: slice.New(oneToN(3))}}
	c := NewCursor[int, int](context.Background(), i)

	_, ok := c.Peek()
	assert.True(ok)

	c.Stop()
	assert.Equal(1, i.stops)
	assert.True(c.Exhausted())

	_, ok = c.Peek()
	assert.False(ok)
	assert.Equal(1, i.pulls)

	c.Stop()
	assert.Equal(2, i.stops)
}
