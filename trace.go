package genflow

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type Tracer interface {
	SubTracer(description string, v ...any) Tracer
	Msg(format string, v ...any)
	End()
}

// TraceFunc defines the function prototype of a tracing function
// Per pipeline functions can be configured using WithTraceFunc or WithLogger
type TraceFunc func(format string, v ...any)

// LoggerTraceFunc returns a TraceFunc that writes trace messages to l at
// debug level.
func LoggerTraceFunc(l zerolog.Logger) TraceFunc {
	return func(format string, v ...any) {
		l.Debug().Str("component", "genflow").Msgf(format, v...)
	}
}

// DefaultTracer is the global default trace function.  It writes messages to
// stderr using zerolog.  DefaultTracer can be replaced by another tracing
// function to effect all pipelines.
var DefaultTracer = LoggerTraceFunc(zerolog.New(os.Stderr).With().Timestamp().Logger())

type tracer struct {
	begin       time.Time
	description string
	ids         []uint32
	subids      atomic.Uint32
	traceFunc   TraceFunc
}

func NewTracer(id uint32, description string, f TraceFunc, v ...any) *tracer {
	if f == nil {
		f = DefaultTracer
	}

	description = fmt.Sprintf(description, v...)

	t := &tracer{
		description: description,
		ids:         []uint32{id},
		traceFunc:   f,
	}

	t.start()
	return t
}

func (t *tracer) id() string {
	idStrings := make([]string, len(t.ids))
	for i, n := range t.ids {
		idStrings[i] = strconv.Itoa(int(n))
	}
	return strings.Join(idStrings, ".")
}

func (t *tracer) start() {
	t.begin = time.Now()
	t.traceFunc("START [stage #%s] %s", t.id(), t.description)
}

func (t *tracer) SubTracer(description string, v ...any) Tracer {
	subId := t.subids.Add(1)

	t2 := &tracer{
		description: t.description + fmt.Sprintf(" / "+description, v...),
		ids:         append(slices.Clone(t.ids), subId),
		traceFunc:   t.traceFunc,
	}

	t2.start()
	return t2
}

func (t *tracer) Msg(format string, v ...any) {
	var args []any = []any{
		t.id(), t.description,
	}
	args = append(args, v...)
	t.traceFunc("MSG [stage #%s] %s: "+format, args...)
}

func (t *tracer) End() {
	t.traceFunc("END [stage #%s] %s (%s)", t.id(), t.description, time.Since(t.begin))
}

type NullTracer struct{}

func (t NullTracer) SubTracer(description string, v ...any) Tracer { return t }
func (t NullTracer) Msg(string, ...any)                            {}
func (t NullTracer) End()                                          {}

// stageTrace starts a tracer the first time a stage is pulled and ends it
// when the stage is exhausted.
type stageTrace struct {
	start func() Tracer
	t     Tracer
	count int
	ended bool
}

func (s *stageTrace) pulled() {
	if s.t == nil {
		s.t = s.start()
	}
	s.count++
}

func (s *stageTrace) exhausted() {
	if s.ended {
		return
	}
	if s.t == nil {
		s.t = s.start()
	}

	s.t.Msg("produced %d elements", s.count)
	s.t.End()
	s.ended = true
}
