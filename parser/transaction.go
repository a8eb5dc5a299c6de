package parser

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/money/ast"
)

// parseTransaction parses a header line followed by its postings:
//
//	transaction := date spaces+ payee spaces* linebreak postings
func (p *Parser) parseTransaction() (*ast.Transaction, error) {
	start := p.mark()
	pos := p.position()

	token, err := p.charClass(isTokenRune, 1, unbounded, "date")
	if err != nil {
		return nil, err
	}
	date, err := ast.ParseDate(p.dateLayout, token)
	if err != nil {
		p.reset(start)
		return nil, &ParseError{
			Pos:        pos,
			Kind:       DateFormatInvalid,
			Expected:   fmt.Sprintf("date formatted as %s", p.dateLayout),
			Underlying: err,
			committed:  true,
		}
	}

	if err := p.spaces1(); err != nil {
		p.reset(start)
		return nil, err
	}

	payeePos := p.position()
	payee := strings.TrimRight(p.restOfLine(), " ")
	if payee == "" {
		p.reset(start)
		return nil, &ParseError{Pos: payeePos, Kind: MinimumNotReached, Expected: "payee"}
	}

	if err := p.lineBreak(); err != nil {
		p.reset(start)
		return nil, err
	}

	postings, err := p.parsePostings()
	if err != nil {
		p.reset(start)
		return nil, err
	}

	return &ast.Transaction{
		Pos:      pos,
		Date:     date,
		Payee:    p.intern(payee),
		Postings: postings,
	}, nil
}
