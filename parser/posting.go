package parser

import (
	"github.com/robinvdvleuten/money/ast"
)

// parsePosting parses an indented posting line. The amount may be left out for
// the postings list to infer it:
//
//	posting := spaces+ account spaces+ amount spaces* &eol
//	         | spaces+ account spaces* &eol
func (p *Parser) parsePosting() (*ast.Posting, error) {
	start := p.mark()
	if err := p.spaces1(); err != nil {
		return nil, err
	}

	pos := p.position()
	account, err := p.charClass(isTokenRune, 1, unbounded, "account")
	if err != nil {
		p.reset(start)
		return nil, err
	}
	afterAccount := p.mark()

	amount, amountErr := p.parsePostingAmount()
	if amountErr == nil {
		return &ast.Posting{Pos: pos, Account: p.intern(account), Amount: &amount}, nil
	}
	p.reset(afterAccount)

	p.spaces0()
	if err := p.lineEnd(); err != nil {
		p.reset(start)
		return nil, furthestError(amountErr, err)
	}

	return &ast.Posting{Pos: pos, Account: p.intern(account)}, nil
}

func (p *Parser) parsePostingAmount() (ast.Amount, error) {
	if err := p.spaces1(); err != nil {
		return ast.Amount{}, err
	}
	amount, err := p.parseAmount()
	if err != nil {
		return ast.Amount{}, err
	}
	p.spaces0()
	if err := p.lineEnd(); err != nil {
		return ast.Amount{}, err
	}
	return amount, nil
}
