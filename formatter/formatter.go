// Package formatter renders parsed ledgers back to canonical text.
//
// Postings are indented and their amounts right-aligned to a common column.
// Rendering a ledger, parsing the result and rendering it again yields the
// same text.
package formatter

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/ledger"
)

const (
	// DefaultIndentation is the default indentation for postings
	DefaultIndentation = 4

	// MinimumSpacing is the minimum number of spaces between account and amount
	MinimumSpacing = 2

	// minimumDecimals is the number of decimals every amount is written with at least
	minimumDecimals = 2
)

// Formatter handles formatting of ledgers with proper alignment.
type Formatter struct {
	// CurrencyColumn is the column amounts end at. If 0, it is computed
	// from the widest posting of the ledger being formatted.
	CurrencyColumn int

	// Indentation is the number of spaces postings are indented with.
	Indentation int

	// InferredAmounts controls whether amounts filled in by balancing are
	// written out. By default they are left elided as in the source.
	InferredAmounts bool

	// PreserveComments controls whether comments are written.
	PreserveComments bool
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithCurrencyColumn sets a specific column for amount alignment.
func WithCurrencyColumn(col int) Option {
	return func(f *Formatter) {
		f.CurrencyColumn = col
	}
}

// WithIndentation sets the number of spaces postings are indented with.
// Values below one are ignored, as postings must be indented.
func WithIndentation(spaces int) Option {
	return func(f *Formatter) {
		if spaces > 0 {
			f.Indentation = spaces
		}
	}
}

// WithInferredAmounts enables or disables writing inferred amounts.
func WithInferredAmounts(write bool) Option {
	return func(f *Formatter) {
		f.InferredAmounts = write
	}
}

// WithPreserveComments enables or disables comment preservation.
func WithPreserveComments(preserve bool) Option {
	return func(f *Formatter) {
		f.PreserveComments = preserve
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		Indentation:      DefaultIndentation,
		PreserveComments: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// currencyColumn returns the configured column, or computes one that leaves
// at least MinimumSpacing between every account and its amount.
func (f *Formatter) currencyColumn(transactions []*ast.Transaction) int {
	if f.CurrencyColumn > 0 {
		return f.CurrencyColumn
	}

	column := 0
	for _, txn := range transactions {
		for _, posting := range txn.Postings {
			if !f.writesAmount(posting) {
				continue
			}
			width := f.Indentation + runewidth.StringWidth(posting.Account) +
				MinimumSpacing + runewidth.StringWidth(FormatAmount(*posting.Amount))
			column = max(column, width)
		}
	}
	return column
}

func (f *Formatter) writesAmount(posting *ast.Posting) bool {
	return posting.Amount != nil && (!posting.Inferred || f.InferredAmounts)
}

// Format writes the transactions of l separated by blank lines. Comments
// are written back where they appeared: top-level ones before the
// transaction they preceded, the others between the postings.
func (f *Formatter) Format(l *ast.Ledger, w io.Writer) error {
	column := f.currencyColumn(l.Transactions)

	var comments []*ast.Comment
	if f.PreserveComments {
		comments = l.Comments
	}

	var buf strings.Builder
	buf.Grow(len(l.Transactions) * 120)

	for i, txn := range l.Transactions {
		hasNext := i+1 < len(l.Transactions)
		next := 0
		if hasNext {
			next = l.Transactions[i+1].Pos.Offset
		}

		comments = f.writeComments(&buf, comments, txn.Pos.Offset, 0)
		inner := comments
		for len(inner) > 0 && (!hasNext || inner[0].Pos.Offset < next) && inner[0].Pos.Column > 1 {
			inner = inner[1:]
		}
		f.writeTransaction(&buf, txn, comments[:len(comments)-len(inner)], column)
		comments = inner

		if hasNext || len(comments) > 0 {
			buf.WriteByte('\n')
		}
	}
	f.writeComments(&buf, comments, -1, 0)

	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatTransaction writes a single transaction.
func (f *Formatter) FormatTransaction(txn *ast.Transaction, w io.Writer) error {
	var buf strings.Builder
	f.writeTransaction(&buf, txn, nil, f.currencyColumn([]*ast.Transaction{txn}))
	_, err := io.WriteString(w, buf.String())
	return err
}

// writeComments writes the leading comments located before offset, or all of
// them when offset is negative, and returns the rest.
func (f *Formatter) writeComments(buf *strings.Builder, comments []*ast.Comment, offset, indent int) []*ast.Comment {
	for len(comments) > 0 && (offset < 0 || comments[0].Pos.Offset < offset) {
		writeComment(buf, comments[0], indent)
		comments = comments[1:]
	}
	return comments
}

func writeComment(buf *strings.Builder, comment *ast.Comment, indent int) {
	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteRune(comment.Marker)
	buf.WriteByte(' ')
	buf.WriteString(comment.Text)
	buf.WriteByte('\n')
}

// writeTransaction writes the header line, then the postings with the
// comments found between them.
func (f *Formatter) writeTransaction(buf *strings.Builder, txn *ast.Transaction, comments []*ast.Comment, column int) {
	buf.WriteString(txn.Date.String())
	buf.WriteByte(' ')
	buf.WriteString(txn.Payee)
	buf.WriteByte('\n')

	for _, posting := range txn.Postings {
		comments = f.writeComments(buf, comments, posting.Pos.Offset, f.Indentation)
		f.writePosting(buf, posting, column)
	}
	f.writeComments(buf, comments, -1, f.Indentation)
}

// writePosting writes a posting with its amount right-aligned to column.
func (f *Formatter) writePosting(buf *strings.Builder, posting *ast.Posting, column int) {
	buf.WriteString(strings.Repeat(" ", f.Indentation))
	buf.WriteString(posting.Account)

	if f.writesAmount(posting) {
		amount := FormatAmount(*posting.Amount)
		width := f.Indentation + runewidth.StringWidth(posting.Account)
		padding := column - width - runewidth.StringWidth(amount)
		if padding < MinimumSpacing {
			padding = MinimumSpacing
		}
		buf.WriteString(strings.Repeat(" ", padding))
		buf.WriteString(amount)
	}

	buf.WriteByte('\n')
}

// FormatAmount renders an amount canonically. A commodity made of a single
// currency symbol is written before the number ("$20.00", "$-20.00"), any
// other commodity after it ("40.00 Stocks", `5.00 "50 cent pieces"`).
func FormatAmount(amount ast.Amount) string {
	number := FormatNumber(amount.Value)
	if isSymbol(amount.Commodity) {
		return string(amount.Commodity) + number
	}
	return number + " " + quoteCommodity(amount.Commodity)
}

// FormatNumber renders a value with at least two decimals and as many more as
// it needs. Infinities and NaN are written as "+Inf", "-Inf" and "NaN".
func FormatNumber(value float64) string {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	d := ledger.ToDecimal(ast.Amount{Value: value})
	if d.Exponent() > -minimumDecimals {
		return d.StringFixed(minimumDecimals)
	}
	return d.String()
}

func isSymbol(commodity ast.Commodity) bool {
	r, size := utf8.DecodeRuneInString(string(commodity))
	return size > 0 && size == len(commodity) && unicode.Is(unicode.Sc, r)
}
