package parser

import (
	"github.com/robinvdvleuten/money/ast"
)

// parseCommodity parses
//
//	commodity := spaces* (quoted | bare)
//	quoted    := '"' [^"]+ '"'
//	bare      := BareCommodity+
func (p *Parser) parseCommodity() (ast.Commodity, error) {
	start := p.mark()
	p.spaces0()

	var (
		name string
		err  error
	)
	if !p.atEnd() && p.peek() == '"' {
		name, err = p.parseQuotedCommodity()
	} else {
		name, err = p.charClass(BareCommodity, 1, unbounded, "commodity")
	}
	if err != nil {
		p.reset(start)
		cause := err.(*ParseError)
		return "", &ParseError{
			Pos:        cause.Pos,
			Kind:       ExpectedCommodity,
			Expected:   "commodity",
			Underlying: cause,
		}
	}

	return ast.Commodity(p.intern(name)), nil
}

func (p *Parser) parseQuotedCommodity() (string, error) {
	start := p.mark()
	if err := p.literal('"'); err != nil {
		return "", err
	}

	name, err := p.untilDelimiter('"')
	if err != nil {
		p.reset(start)
		return "", err
	}
	if name == "" {
		err := p.errorf(MinimumNotReached, "quoted commodity name")
		p.reset(start)
		return "", err
	}

	_ = p.literal('"')
	return name, nil
}
