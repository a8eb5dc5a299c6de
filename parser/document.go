package parser

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/telemetry"
)

// BlockKind tells what a block of a document holds.
type BlockKind uint8

const (
	// TransactionBlock is a header line and the indented lines below it.
	TransactionBlock BlockKind = iota + 1
	// CommentBlock is a single comment line outside a transaction.
	CommentBlock
)

func (k BlockKind) String() string {
	switch k {
	case TransactionBlock:
		return "transaction"
	case CommentBlock:
		return "comment"
	}
	return "unknown"
}

// Block is a span of a document that is parsed on its own.
type Block struct {
	Kind  BlockKind
	Start int // Byte offset of the first line
	End   int // Byte offset just past the last line, excluding its line break
	Line  int // Line number of the first line (1-indexed)
}

// Blocks splits a document into the spans that can be parsed independently.
//
// A transaction block starts at an unindented line beginning with a digit or
// with a date in the layout set by WithDateLayout, and takes every following
// non-blank line up to the next block start. An unindented line starting with
// a comment marker and a space is a comment block of its own, as is an indented one outside a transaction. Blank lines
// end the current block. Any other line that does not continue a block starts
// a transaction block, so that parsing it reports a located error.
func Blocks(source []byte, opts ...Option) []Block {
	return splitBlocks(source, newConfig(opts...).dateLayout)
}

func splitBlocks(source []byte, layout string) []Block {
	var (
		blocks  []Block
		current *Block
	)
	closeBlock := func() {
		if current != nil {
			blocks = append(blocks, *current)
			current = nil
		}
	}

	line := 0
	for start := 0; start < len(source); {
		line++
		end := len(source)
		next := end
		if i := bytes.IndexByte(source[start:], '\n'); i >= 0 {
			end = start + i
			next = end + 1
		}
		content := bytes.TrimSuffix(source[start:end], []byte{'\r'})
		trimmed := bytes.TrimLeft(content, " \t")

		switch {
		case len(trimmed) == 0:
			closeBlock()
		case isComment(content) || (current == nil && isComment(trimmed)):
			closeBlock()
			blocks = append(blocks, Block{Kind: CommentBlock, Start: start, End: start + len(content), Line: line})
		case current != nil && !startsTransaction(content, layout):
			current.End = start + len(content)
		default:
			closeBlock()
			current = &Block{Kind: TransactionBlock, Start: start, End: start + len(content), Line: line}
		}

		start = next
	}
	closeBlock()

	return blocks
}

func startsTransaction(line []byte, layout string) bool {
	if len(line) == 0 || line[0] == ' ' || line[0] == '\t' {
		return false
	}
	if isDigit(rune(line[0])) {
		return true
	}
	token, _, _ := bytes.Cut(line, []byte{' '})
	_, err := ast.ParseDate(layout, string(token))
	return err == nil
}

func isComment(line []byte) bool {
	return len(line) > 1 && strings.IndexByte(ast.CommentMarkers, line[0]) >= 0 && line[1] == ' '
}

// blockResult holds the outcome of parsing one block.
type blockResult struct {
	transaction *ast.Transaction
	comments    []*ast.Comment
	err         error
}

// ParseBytesWithFilename parses a complete document. Its blocks are parsed
// concurrently, and the failures of every block are reported together as
// *ParseErrors. Transactions keep their order of appearance.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte, opts ...Option) (*ast.Ledger, error) {
	cfg := newConfig(append([]Option{WithFilename(filename)}, opts...)...)
	if err := ValidateDateLayout(cfg.dateLayout); err != nil {
		return nil, err
	}

	ctx, timer := telemetry.Start(ctx, "parser.parse")
	defer timer.End()

	chunkTimer := timer.Child("parser.chunk")
	blocks := splitBlocks(data, cfg.dateLayout)
	chunkTimer.End()
	timer.Annotate("%s", humanize.Bytes(uint64(len(data))))

	blocksTimer := timer.Child("parser.blocks")
	blocksTimer.Annotate("%s blocks", humanize.Comma(int64(len(blocks))))
	results := make([]blockResult, len(blocks))
	interner := NewInterner(len(blocks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i, block := range blocks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = parseBlock(data, block, cfg, interner)
			return nil
		})
	}
	err := g.Wait()
	blocksTimer.End()
	if err != nil {
		return nil, err
	}

	ledger := &ast.Ledger{}
	var errs []error
	for _, result := range results {
		if result.err != nil {
			errs = append(errs, result.err)
			continue
		}
		if result.transaction != nil {
			ledger.Transactions = append(ledger.Transactions, result.transaction)
		}
		ledger.Comments = append(ledger.Comments, result.comments...)
	}
	if len(errs) > 0 {
		return nil, &ParseErrors{Errors: errs}
	}

	slices.SortFunc(ledger.Comments, func(a, b *ast.Comment) int {
		return a.Pos.Offset - b.Pos.Offset
	})

	return ledger, nil
}

func parseBlock(data []byte, block Block, cfg config, interner *Interner) blockResult {
	p := newParser(data, cfg, interner)
	p.window(block.Start, block.End, block.Line)

	switch block.Kind {
	case CommentBlock:
		var comment *ast.Comment
		err := p.parseAll(func() (err error) {
			comment, err = p.parseComment()
			return err
		})
		if err != nil {
			return blockResult{err: err}
		}
		return blockResult{comments: []*ast.Comment{comment}}

	default:
		var txn *ast.Transaction
		err := p.parseAll(func() (err error) {
			txn, err = p.parseTransaction()
			return err
		})
		if err != nil {
			return blockResult{err: err}
		}
		return blockResult{transaction: txn, comments: p.comments}
	}
}

// ParseBytes parses a complete document without a filename.
func ParseBytes(ctx context.Context, data []byte, opts ...Option) (*ast.Ledger, error) {
	return ParseBytesWithFilename(ctx, "", data, opts...)
}

// ParseString parses a complete document held in a string.
func ParseString(ctx context.Context, str string, opts ...Option) (*ast.Ledger, error) {
	return ParseBytes(ctx, []byte(str), opts...)
}

// Parse reads r to the end and parses it as a complete document.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*ast.Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(ctx, data, opts...)
}
