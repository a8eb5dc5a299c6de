package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	sources map[string][]byte // Filename -> content, as in error positions
}

// NewErrorRenderer creates a renderer that shows errors in the context of the
// given sources.
func NewErrorRenderer(sources map[string][]byte) *ErrorRenderer {
	return &ErrorRenderer{sources: sources}
}

// Render formats an error with styling and context. Aggregate errors are
// rendered one by one.
func (r *ErrorRenderer) Render(err error) string {
	if e, ok := err.(interface{ Unwrap() []error }); ok {
		return r.RenderAll(e.Unwrap())
	}

	var opts []errors.TextFormatterOption
	if e, ok := err.(interface{ GetPosition() ast.Position }); ok {
		if source, ok := r.sources[e.GetPosition().Filename]; ok {
			opts = append(opts, errors.WithSource(source))
		}
	}

	text := errors.NewTextFormatter(nil, opts...).Format(err)
	return r.style(strings.TrimRight(text, "\n"))
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// style colors the message line of a rendered error, dims the source lines
// and highlights the caret line.
func (r *ErrorRenderer) style(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = errorStyle.Render(line)
		case line == "":
		case isCaretLine(line):
			lines[i] = errCaretStyle.Render(line)
		default:
			lines[i] = errContextStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// isCaretLine reports whether line is the caret line below a source excerpt,
// which has an empty line number gutter.
func isCaretLine(line string) bool {
	gutter, rest, ok := strings.Cut(line, "|")
	return ok && strings.TrimSpace(gutter) == "" && strings.Contains(rest, "^")
}
