package parser

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/money/ast"
)

// ErrorKind classifies why a grammar rule failed. Kinds are errors themselves so
// callers can test for them with errors.Is:
//
//	if errors.Is(err, parser.ExpectedAmount) { ... }
type ErrorKind uint8

const (
	// StructuralMismatch means an expected literal or delimiter was absent,
	// e.g. a posting line without leading indentation.
	StructuralMismatch ErrorKind = iota + 1
	// MinimumNotReached means a bounded character run was shorter than required.
	MinimumNotReached
	// ExpectedCommodity means neither a quoted nor a bare commodity matched.
	ExpectedCommodity
	// ExpectedAmount means neither amount ordering matched.
	ExpectedAmount
	// DateFormatInvalid means the date token did not match the date layout.
	DateFormatInvalid
	// IncompletePostingsList means the postings could not be balanced.
	IncompletePostingsList
)

var errorKindNames = map[ErrorKind]string{
	StructuralMismatch:     "structural mismatch",
	MinimumNotReached:      "minimum not reached",
	ExpectedCommodity:      "expected commodity",
	ExpectedAmount:         "expected amount",
	DateFormatInvalid:      "invalid date format",
	IncompletePostingsList: "incomplete postings list",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error implements the error interface so kinds can be used as errors.Is targets.
func (k ErrorKind) Error() string {
	return k.String()
}

// ParseError represents a located grammar failure.
type ParseError struct {
	Pos        ast.Position
	Kind       ErrorKind
	Expected   string // Human-readable description of what was expected at Pos
	Underlying error

	// committed errors are semantic failures raised after a successful
	// syntactic match; they are never replaced by a further syntax failure.
	committed bool
}

func (e *ParseError) Error() string {
	location := e.Pos.String()
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d, column %d", e.Pos.Line, e.Pos.Column)
	}

	return fmt.Sprintf("%s: %s", location, e.Message())
}

// Message returns the error description without its location.
func (e *ParseError) Message() string {
	switch e.Kind {
	case DateFormatInvalid, IncompletePostingsList:
		if e.Underlying != nil {
			return fmt.Sprintf("%s: %v", e.Kind, unwrapMessage(e.Underlying))
		}
		return e.Kind.String()
	}
	if e.Expected != "" {
		return "expected " + e.Expected
	}
	return e.Kind.String()
}

func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is the kind of this error.
func (e *ParseError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// unwrapMessage strips the location prefix of nested parse errors.
func unwrapMessage(err error) string {
	if pe, ok := err.(*ParseError); ok {
		return pe.Message()
	}
	return err.Error()
}

// ParseErrors collects the failures of every block of a document that could not be parsed.
type ParseErrors struct {
	Errors []error
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "%d parse errors:", len(e.Errors))
	for _, err := range e.Errors {
		buf.WriteString("\n  ")
		buf.WriteString(err.Error())
	}
	return buf.String()
}

func (e *ParseErrors) Unwrap() []error {
	return e.Errors
}
