package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/money/output"
)

// TimingCollector builds trees of timed stages. It is safe for concurrent
// use, such as by the workers parsing the blocks of a document.
type TimingCollector struct {
	mu    sync.Mutex
	roots []*span
	// open holds the stages started on the collector itself that are still
	// running, innermost last.
	open []*span
}

type span struct {
	name     string
	note     string
	start    time.Time
	end      time.Time
	children []*span
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{name: name, start: time.Now()}
	if n := len(c.open); n > 0 {
		parent := c.open[n-1]
		parent.children = append(parent.children, s)
	} else {
		c.roots = append(c.roots, s)
	}
	c.open = append(c.open, s)

	return &timer{collector: c, span: s}
}

// Report writes every tree in the order its root was started. Stages still
// running are reported up to now.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		writeTree(w, root, styles)
	}
}

type timer struct {
	collector *TimingCollector
	span      *span
}

func (t *timer) End() {
	c := t.collector
	c.mu.Lock()
	defer c.mu.Unlock()

	if !t.span.end.IsZero() {
		return
	}
	t.span.end = time.Now()
	if i := slices.Index(c.open, t.span); i >= 0 {
		c.open = slices.Delete(c.open, i, i+1)
	}
}

func (t *timer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	s := &span{name: name, start: time.Now()}
	t.span.children = append(t.span.children, s)

	return &timer{collector: t.collector, span: s}
}

func (t *timer) Annotate(format string, args ...any) {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.span.note = fmt.Sprintf(format, args...)
}

// elapsed measures the stage up to now while it runs.
func (s *span) elapsed() time.Duration {
	if s.end.IsZero() {
		return time.Since(s.start)
	}
	return s.end.Sub(s.start)
}

func (s *span) label() string {
	if s.note == "" {
		return s.name
	}
	return s.name + " (" + s.note + ")"
}
