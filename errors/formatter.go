// Package errors renders the errors of the parser and ledger packages for
// different consumers. Domain error types stay in their own packages; this
// package only deals with presentation.
//
// Two formatters are provided:
//   - TextFormatter: command-line output with the offending source lines and
//     a caret under the failing column
//   - JSONFormatter: structured JSON for tools and editors
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/formatter"
	"github.com/robinvdvleuten/money/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// contextLines is the number of source lines shown before the failing one.
const contextLines = 2

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	formatter     *formatter.Formatter
	sourceContent []byte // Optional source content for error context
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content errors are located in.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// NewTextFormatter creates a new text formatter. Transactions quoted in
// ledger errors are rendered with f.
func NewTextFormatter(f *formatter.Formatter, opts ...TextFormatterOption) *TextFormatter {
	if f == nil {
		f = formatter.New(formatter.WithInferredAmounts(true))
	}
	tf := &TextFormatter{formatter: f}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	if e, ok := err.(interface{ Unwrap() []error }); ok {
		return tf.FormatAll(e.Unwrap())
	}

	if e, ok := err.(*parser.ParseError); ok && tf.sourceContent != nil {
		return tf.formatWithSourceContext(e.Pos, e.Error(), e.Message(), tf.sourceContent)
	}

	if e, ok := err.(interface {
		GetPosition() ast.Position
		GetTransaction() *ast.Transaction
	}); ok && e.GetTransaction() != nil {
		return tf.formatWithContext(err.Error(), e.GetTransaction())
	}

	if e, ok := err.(interface{ GetPosition() ast.Position }); ok && tf.sourceContent != nil {
		return tf.formatWithSourceContext(e.GetPosition(), err.Error(), "", tf.sourceContent)
	}

	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// formatWithSourceContext writes the message followed by the source lines
// leading up to pos, and a caret under its column:
//
//	line 2, column 1: expected " "
//
//	  1 | 2012-03-10 KFC
//	  2 | Expenses:Food   $20.00
//	    | ^ expected " "
func (tf *TextFormatter) formatWithSourceContext(pos ast.Position, message, hint string, source []byte) string {
	lines := strings.Split(string(source), "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return message
	}

	var buf bytes.Buffer
	buf.WriteString(message)
	buf.WriteString("\n\n")

	first := max(pos.Line-contextLines, 1)
	gutter := len(strconv.Itoa(pos.Line))

	for n := first; n <= pos.Line; n++ {
		line := strings.TrimSuffix(lines[n-1], "\r")
		fmt.Fprintf(&buf, "  %*d | %s\n", gutter, n, line)
	}

	line := strings.TrimSuffix(lines[pos.Line-1], "\r")
	fmt.Fprintf(&buf, "  %*s | %s^", gutter, "", strings.Repeat(" ", caretOffset(line, pos.Column)))
	if hint != "" {
		buf.WriteByte(' ')
		buf.WriteString(hint)
	}
	buf.WriteByte('\n')

	return buf.String()
}

// caretOffset returns the display width of the first column-1 runes of line.
func caretOffset(line string, column int) int {
	width := 0
	for i := 1; i < column && line != ""; i++ {
		r, size := utf8.DecodeRuneInString(line)
		width += runewidth.RuneWidth(r)
		line = line[size:]
	}
	return width
}

// formatWithContext writes the message followed by the offending transaction.
func (tf *TextFormatter) formatWithContext(message string, txn *ast.Transaction) string {
	var buf bytes.Buffer
	buf.WriteString(message)
	buf.WriteString("\n\n")

	var txnBuf bytes.Buffer
	if err := tf.formatter.FormatTransaction(txn, &txnBuf); err == nil {
		for _, line := range bytes.Split(txnBuf.Bytes(), []byte("\n")) {
			if len(line) > 0 {
				buf.WriteString("   ")
				buf.Write(line)
				buf.WriteByte('\n')
			}
		}
	}

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Position *PositionJSON     `json:"position,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs. Aggregate
// errors are flattened.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		if e, ok := err.(interface{ Unwrap() []error }); ok {
			result = append(result, jf.FormatAllToSlice(e.Unwrap())...)
			continue
		}
		result = append(result, jf.toJSON(err))
	}
	return result
}

// toJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]string),
	}

	if e, ok := err.(interface{ GetPosition() ast.Position }); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	switch e := err.(type) {
	case *parser.ParseError:
		errJSON.Details["kind"] = e.Kind.String()
		if e.Expected != "" {
			errJSON.Details["expected"] = e.Expected
		}
	case interface{ GetTransaction() *ast.Transaction }:
		if txn := e.GetTransaction(); txn != nil {
			errJSON.Details["date"] = txn.Date.String()
			errJSON.Details["payee"] = txn.Payee
		}
	}

	return errJSON
}
