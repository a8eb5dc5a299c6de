// Package parser implements the grammar of plain-text money ledgers.
//
// A transaction is written as a header line holding a date and a payee,
// followed by indented postings:
//
//	2012-03-10 KFC
//	    Expenses:Food                $20.00
//	    Assets:Cash                 $-20.00
//
// Every grammar rule is a method on Parser that either succeeds and advances
// the cursor, or fails with a located *ParseError and leaves the cursor where
// the rule started. The exported Parse* functions apply a single rule to a
// complete input; ParseBytes and friends split a whole document into blocks and
// parse those concurrently.
package parser

import (
	"github.com/robinvdvleuten/money/ast"
)

// Parser holds the state of a single parse. It is not safe for concurrent use;
// documents are parsed with one Parser per block.
type Parser struct {
	cursor
	config

	interner *Interner
	comments []*ast.Comment

	// furthest is the deepest failure swallowed by a repetition that stopped
	// early. It explains why the input did not go further than it did.
	furthest *ParseError
}

func newParser(source []byte, cfg config, interner *Interner) *Parser {
	return &Parser{
		cursor:   newCursor(source, cfg.filename),
		config:   cfg,
		interner: interner,
	}
}

// errorf returns a failure of kind at the current position.
func (p *Parser) errorf(kind ErrorKind, expected string) *ParseError {
	return &ParseError{
		Pos:      p.position(),
		Kind:     kind,
		Expected: expected,
	}
}

// note records a failure that ended a repetition without failing the rule.
func (p *Parser) note(err error) {
	pe, ok := err.(*ParseError)
	if !ok {
		return
	}
	if p.furthest == nil || pe.Pos.Offset > p.furthest.Pos.Offset {
		p.furthest = pe
	}
}

// explain picks the error reported for a failed parse: a committed error as
// is, otherwise whichever of err and the furthest noted failure got further.
func (p *Parser) explain(err error) error {
	pe, ok := err.(*ParseError)
	if !ok || pe.committed || p.furthest == nil {
		return err
	}
	if p.furthest.Pos.Offset >= pe.Pos.Offset {
		return p.furthest
	}
	return err
}

// parseAll applies rule and requires that nothing but blank lines remain.
func (p *Parser) parseAll(rule func() error) error {
	if err := rule(); err != nil {
		return p.explain(err)
	}
	for {
		p.spaces0()
		if err := p.lineBreak(); err != nil {
			break
		}
	}
	if !p.atEnd() {
		return p.explain(p.errorf(StructuralMismatch, "end of input"))
	}
	return nil
}

func (p *Parser) intern(s string) string {
	return p.interner.Intern(s)
}

// furthestError returns whichever failure got further into the input,
// preferring a on a tie.
func furthestError(a, b error) error {
	pa, okA := a.(*ParseError)
	pb, okB := b.(*ParseError)
	if !okA || !okB {
		if a != nil {
			return a
		}
		return b
	}
	if pb.Pos.Offset > pa.Pos.Offset {
		return pb
	}
	return pa
}

// parseWith applies rule to the complete source.
func parseWith[T any](source []byte, opts []Option, rule func(*Parser) (T, error)) (T, error) {
	cfg := newConfig(opts...)
	if err := ValidateDateLayout(cfg.dateLayout); err != nil {
		var zero T
		return zero, err
	}
	p := newParser(source, cfg, nil)

	var result T
	err := p.parseAll(func() error {
		var err error
		result, err = rule(p)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// ParseTransaction parses a single transaction: a header line followed by its
// postings. Trailing blank lines are allowed, anything else is an error.
func ParseTransaction(source []byte, opts ...Option) (*ast.Transaction, error) {
	return parseWith(source, opts, (*Parser).parseTransaction)
}

// ParseTransactionString is ParseTransaction for a string.
func ParseTransactionString(source string, opts ...Option) (*ast.Transaction, error) {
	return ParseTransaction([]byte(source), opts...)
}

// ParsePostings parses a postings list of at least two postings, balancing it
// according to the configured policy.
func ParsePostings(source string, opts ...Option) ([]*ast.Posting, error) {
	return parseWith([]byte(source), opts, (*Parser).parsePostings)
}

// ParsePosting parses a single indented posting line.
func ParsePosting(source string, opts ...Option) (*ast.Posting, error) {
	return parseWith([]byte(source), opts, (*Parser).parsePosting)
}

// ParseAmount parses an amount with the commodity on either side of the number.
func ParseAmount(source string, opts ...Option) (ast.Amount, error) {
	return parseWith([]byte(source), opts, (*Parser).parseAmount)
}

// ParseCommodity parses a quoted or bare commodity.
func ParseCommodity(source string, opts ...Option) (ast.Commodity, error) {
	return parseWith([]byte(source), opts, (*Parser).parseCommodity)
}

// ParseComment parses a single comment line.
func ParseComment(source string, opts ...Option) (*ast.Comment, error) {
	return parseWith([]byte(source), opts, (*Parser).parseComment)
}
