package genflow

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTracer(t *testing.T) {
	assert := assert.New(t)

	var buf string
	testTracer := func(format string, v ...any) {
		buf = fmt.Sprintf("XXX "+format, v...)
	}

	saved := DefaultTracer
	defer func() { DefaultTracer = saved }()
	DefaultTracer = func(format string, v ...any) {
		buf = fmt.Sprintf("YYY "+format, v...)
	}

	// test tracing using the default tracer function
	tr := NewTracer(123, "testDefaultTracer", nil)

	assert.Contains(buf, "YYY")
	assert.Contains(buf, "START [stage #123] testDefaultTracer")

	tr2 := tr.SubTracer("ZZZ %d", 321)
	assert.Contains(buf, "ZZZ 321")
	assert.Contains(buf, "START [stage #123.1] testDefaultTracer")

	tr3 := tr.SubTracer("PPP %d", 333)
	assert.Contains(buf, "PPP 333")
	assert.Contains(buf, "START [stage #123.2] testDefaultTracer")

	tr4 := tr3.SubTracer("QQQ %d", 666)
	assert.Contains(buf, "QQQ 666")
	assert.Contains(buf, "START [stage #123.2.1] testDefaultTracer")

	tr4.Msg("hello %s", "world")
	assert.Contains(buf, "MSG [stage #123.2.1]")
	assert.Contains(buf, "hello world")

	tr4.End()
	tr3.End()
	tr2.End()

	tr.End()
	assert.Contains(buf, "YYY")
	assert.Contains(buf, "END [stage #123] testDefaultTracer")

	// test tracing using a supplied tracing function
	tr = NewTracer(456, "testMyTracer", testTracer)
	assert.Contains(buf, "XXX")
	assert.Contains(buf, "START [stage #456] testMyTracer")

	tr.End()
	assert.Contains(buf, "XXX")
	assert.Contains(buf, "END [stage #456] testMyTracer")
}

func TestLoggerTraceFunc(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	f := LoggerTraceFunc(zerolog.New(&out))

	tr := NewTracer(7, "Map", f)
	tr.End()

	assert.Contains(out.String(), `"level":"debug"`)
	assert.Contains(out.String(), `"component":"genflow"`)
	assert.Contains(out.String(), "START [stage #7] Map")
	assert.Contains(out.String(), "END [stage #7] Map")
}

func TestNullTracer(t *testing.T) {
	var tr Tracer = NullTracer{}
	assert.Equal(t, tr, tr.SubTracer("anything"))

	// these should do nothing
	tr.Msg("foo")
	tr.End()
}

func TestPipelineTracing(t *testing.T) {
	assert := assert.New(t)

	var lines []string
	tr := func(format string, v ...any) {
		lines = append(lines, fmt.Sprintf(format, v...))
	}

	got := From(oneToN(6), WithTracing(true), WithTraceFunc(tr), InheritOptions(true)).
		Map(func(v, _ int) int { return v * v }).
		Filter(func(v, _ int) bool { return v > 10 }).
		ToSlice()
	assert.Equal([]int{16, 25, 36}, got)

	all := strings.Join(lines, "\n")
	for _, want := range []string{"Map", "Filter", "ToSlice"} {
		assert.Regexp(`START \[stage #\d+\] `+want, all)
		assert.Regexp(`END \[stage #\d+\] `+want, all)
	}
	assert.Contains(all, "Map: produced 6 elements")
	assert.Contains(all, "Filter: produced 3 elements")
	assert.Contains(all, "ToSlice: consumed 3 elements")
}

func TestPipelineTracingNotStartedUntilPulled(t *testing.T) {
	var lines []string
	tr := func(format string, v ...any) {
		lines = append(lines, fmt.Sprintf(format, v...))
	}

	p := From(oneToN(3), WithTracing(true), WithTraceFunc(tr), InheritOptions(true)).
		Map(func(v, _ int) int { return v })
	assert.Empty(t, lines)

	p.First()
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "START")
}

func TestPipelineWithLogger(t *testing.T) {
	var out bytes.Buffer
	l := zerolog.New(&out)

	From(oneToN(3), WithTracing(true), WithLogger(l)).Count()

	assert.Contains(t, out.String(), "Count: consumed 3 elements")
}
