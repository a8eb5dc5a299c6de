// Package loader reads ledger files from disk and parses them.
//
// Several files can be loaded at once; their transactions are merged into a
// single ledger sorted by date. A file named more than once is only loaded
// once.
//
// Example usage:
//
//	l := loader.New(loader.WithParserOptions(parser.WithDateLayout("2006/01/02")))
//	result, err := l.Load(ctx, "2023.ledger", "2024.ledger")
//
// Watch keeps the result up to date while the files are edited.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/parser"
	"github.com/robinvdvleuten/money/telemetry"
)

// bom is the UTF-8 byte order mark some editors put at the start of a file.
var bom = []byte{0xEF, 0xBB, 0xBF}

// Loader reads and parses ledger files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithParserOptions(parser.WithBalancePolicy(ledger.Lenient)))
type Loader struct {
	parserOptions []parser.Option
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithParserOptions sets the options every file is parsed with.
func WithParserOptions(opts ...parser.Option) Option {
	return func(l *Loader) {
		l.parserOptions = append(l.parserOptions, opts...)
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Result holds the outcome of loading one or more files.
type Result struct {
	// Ledger holds the transactions and comments of every file.
	Ledger *ast.Ledger

	// Root is the absolute path of the first file loaded.
	Root string

	// Files lists the absolute paths of every file loaded, in order.
	Files []string

	// Sources maps each filename, as it appears in error positions, to its
	// content so that errors can be shown in context.
	Sources map[string][]byte
}

// Load reads and parses the given files and merges them into one ledger.
// The errors of every file are returned together. On failure the result still
// holds the sources read so far, for rendering the errors.
func (l *Loader) Load(ctx context.Context, filenames ...string) (*Result, error) {
	if len(filenames) == 0 {
		return nil, fmt.Errorf("no files to load")
	}

	result := &Result{
		Ledger:  &ast.Ledger{},
		Sources: make(map[string][]byte, len(filenames)),
	}
	visited := make(map[string]bool, len(filenames))

	var errs []error
	for _, filename := range filenames {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		absPath, err := filepath.Abs(filename)
		if err != nil {
			return result, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
		}
		if visited[absPath] {
			continue
		}
		visited[absPath] = true
		result.Files = append(result.Files, absPath)
		if result.Root == "" {
			result.Root = absPath
		}

		fileCtx, timer := telemetry.Start(ctx, "load "+filepath.Base(filename))
		data, err := os.ReadFile(filename)
		if err != nil {
			timer.End()
			return result, fmt.Errorf("failed to read %s: %w", filename, err)
		}

		data = bytes.TrimPrefix(data, bom)
		result.Sources[filename] = data

		parsed, err := l.LoadBytes(fileCtx, filename, data)
		timer.End()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		merge(result.Ledger, parsed)
	}

	if len(errs) == 1 {
		return result, errs[0]
	}
	if len(errs) > 1 {
		return result, &parser.ParseErrors{Errors: flatten(errs)}
	}

	ast.SortTransactions(result.Ledger)
	return result, nil
}

// LoadBytes parses the content of a file that was read already. A leading
// byte order mark is ignored, and content that is not valid UTF-8 is rejected
// with an *EncodingError.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*ast.Ledger, error) {
	data = bytes.TrimPrefix(data, bom)

	if err := checkEncoding(filename, data); err != nil {
		return nil, err
	}

	return parser.ParseBytesWithFilename(ctx, filename, data, l.parserOptions...)
}

// merge appends the transactions and comments of src to dst.
func merge(dst, src *ast.Ledger) {
	dst.Transactions = append(dst.Transactions, src.Transactions...)
	dst.Comments = append(dst.Comments, src.Comments...)
}

// flatten unwraps the parse errors of several files into a single list.
func flatten(errs []error) []error {
	var result []error
	for _, err := range errs {
		if pe, ok := err.(*parser.ParseErrors); ok {
			result = append(result, pe.Errors...)
			continue
		}
		result = append(result, err)
	}
	return result
}

// EncodingError is returned for content that is not valid UTF-8.
type EncodingError struct {
	Pos ast.Position
}

func (e *EncodingError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d", e.Pos.Line)
	}
	return fmt.Sprintf("%s: invalid UTF-8 encoding at column %d", location, e.Pos.Column)
}

func (e *EncodingError) GetPosition() ast.Position {
	return e.Pos
}

// checkEncoding locates the first invalid UTF-8 sequence in data.
func checkEncoding(filename string, data []byte) error {
	if utf8.Valid(data) {
		return nil
	}

	pos := ast.Position{Filename: filename, Line: 1, Column: 1}
	for pos.Offset < len(data) {
		r, size := utf8.DecodeRune(data[pos.Offset:])
		if r == utf8.RuneError && size <= 1 {
			return &EncodingError{Pos: pos}
		}
		pos.Offset += size
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return nil
}
