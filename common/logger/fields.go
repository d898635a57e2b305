package logger

import (
	"fmt"
	"runtime/debug"
	"strconv"

	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"
)

// WithPanic returns the fields we attach when recovering from a panic.
func WithPanic(recovered any) []Field {
	return []Field{
		String("panic", fmt.Sprintf("%v", recovered)),
		ByteString("stacktrace", debug.Stack()),
	}
}

// WithTrace returns the trace/span id fields so log lines can be joined with
// traces in the APM console.
func WithTrace(spanCtx *tracer.SpanContext) []Field {
	if spanCtx == nil {
		return nil
	}
	return []Field{
		String("dd.trace_id", spanCtx.TraceID()),
		String("dd.span_id", strconv.FormatUint(spanCtx.SpanID(), 10)),
	}
}
