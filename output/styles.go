// Package output styles the parts of a ledger printed to a terminal.
package output

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// ANSI colors of the palette.
const (
	red     = "1"
	yellow  = "3"
	blue    = "4"
	magenta = "5"
)

// Styles renders ledger text for one writer. Colors are only emitted when the
// writer is a terminal that supports them.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates the styles for w.
func NewStyles(w io.Writer, opts ...termenv.OutputOption) *Styles {
	return &Styles{output: termenv.NewOutput(w, opts...)}
}

func (s *Styles) colored(text, color string) termenv.Style {
	return s.output.String(text).Foreground(s.output.Color(color))
}

// Date styles a transaction date.
func (s *Styles) Date(text string) string {
	return s.colored(text, blue).String()
}

// Payee styles the payee of a transaction header.
func (s *Styles) Payee(text string) string {
	return s.output.String(text).Bold().String()
}

// Account styles an account name.
func (s *Styles) Account(text string) string {
	return s.colored(text, yellow).String()
}

// Amount styles a formatted amount, in red when it is negative.
func (s *Styles) Amount(text string) string {
	if strings.Contains(text, "-") {
		return s.colored(text, red).String()
	}
	return s.colored(text, magenta).String()
}

// Keyword styles the name of a command or stage.
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).Bold().String()
}

// Dim styles secondary information such as timings and tree guides.
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Warning styles text that needs attention.
func (s *Styles) Warning(text string) string {
	return s.colored(text, yellow).Bold().String()
}

// Output returns the termenv output the styles write for.
func (s *Styles) Output() *termenv.Output {
	return s.output
}
