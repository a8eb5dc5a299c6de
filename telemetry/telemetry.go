// Package telemetry collects hierarchical timings of the stages of a run.
//
// A Collector travels in the context together with the timer of the stage
// currently running, so instrumented code only needs the context:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	ctx, timer := telemetry.Start(ctx, "load ledger.txt")
//	defer timer.End()
//
//	_, parse := telemetry.Start(ctx, "parser.parse") // nested under "load ledger.txt"
//	parse.Annotate("%d blocks", 12)
//	parse.End()
//
//	collector.Report(os.Stderr, nil)
//
// Without a collector in the context every timer is a no-op.
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/money/output"
)

type contextKey int

const (
	collectorKey contextKey = iota
	timerKey
)

// Collector records timed stages and reports them as a tree.
type Collector interface {
	// Start times a stage beneath the innermost stage started on the
	// collector that is still running, or as a new tree when none is.
	Start(name string) Timer

	// Report writes the collected timings. Styles may be nil for plain output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer times a single stage.
type Timer interface {
	// End stops the timer. Ending a timer twice keeps the first end.
	End()

	// Child times a stage nested in this one.
	Child(name string) Timer

	// Annotate attaches a note to the stage, such as the amount of work it
	// did. A later note replaces an earlier one.
	Annotate(format string, args ...any)
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the collector of ctx, or one that records nothing.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// Start begins timing name as a child of the timer carried by ctx, or as a
// top-level operation of the context's collector. The returned context
// carries the new timer so nested stages end up beneath it.
func Start(ctx context.Context, name string) (context.Context, Timer) {
	var timer Timer
	if parent, ok := ctx.Value(timerKey).(Timer); ok {
		timer = parent.Child(name)
	} else {
		timer = FromContext(ctx).Start(name)
	}
	if _, ok := timer.(noOpTimer); ok {
		return ctx, timer
	}
	return context.WithValue(ctx, timerKey, timer), timer
}
