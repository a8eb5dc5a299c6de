package parser

import (
	"strconv"

	"github.com/robinvdvleuten/money/ast"
)

// parseAmount parses an amount with the commodity before or after the number,
// trying the commodity-first ordering first:
//
//	amount := spaces* (commodity spaces* number | number spaces* commodity)
func (p *Parser) parseAmount() (ast.Amount, error) {
	start := p.mark()
	p.spaces0()
	begin := p.mark()

	amount, prefixErr := p.parsePrefixAmount()
	if prefixErr == nil {
		return amount, nil
	}
	p.reset(begin)

	amount, postfixErr := p.parsePostfixAmount()
	if postfixErr == nil {
		return amount, nil
	}
	p.reset(start)

	cause := furthestError(prefixErr, postfixErr).(*ParseError)
	return ast.Amount{}, &ParseError{
		Pos:        cause.Pos,
		Kind:       ExpectedAmount,
		Expected:   cause.Expected,
		Underlying: cause,
	}
}

// parsePrefixAmount parses "$20.00" and "$ 20.00".
func (p *Parser) parsePrefixAmount() (ast.Amount, error) {
	commodity, err := p.parseCommodity()
	if err != nil {
		return ast.Amount{}, err
	}
	p.spaces0()
	value, err := p.parseNumber()
	if err != nil {
		return ast.Amount{}, err
	}
	return ast.Amount{Value: value, Commodity: commodity}, nil
}

// parsePostfixAmount parses "40 Stocks" and "40€".
func (p *Parser) parsePostfixAmount() (ast.Amount, error) {
	value, err := p.parseNumber()
	if err != nil {
		return ast.Amount{}, err
	}
	p.spaces0()
	commodity, err := p.parseCommodity()
	if err != nil {
		return ast.Amount{}, err
	}
	return ast.Amount{Value: value, Commodity: commodity}, nil
}

// parseNumber parses an optionally negative decimal:
//
//	number := '-'? digit+ ('.' digit+)?
func (p *Parser) parseNumber() (float64, error) {
	start := p.mark()
	if !p.atEnd() && p.peek() == '-' {
		p.advance()
	}
	if _, err := p.charClass(isDigit, 1, unbounded, "number"); err != nil {
		p.reset(start)
		return 0, err
	}

	if !p.atEnd() && p.peek() == '.' {
		fraction := p.mark()
		p.advance()
		if _, err := p.charClass(isDigit, 1, unbounded, "digit"); err != nil {
			p.reset(fraction)
		}
	}

	value, err := strconv.ParseFloat(p.text(start), 64)
	if err != nil {
		p.reset(start)
		return 0, &ParseError{Pos: p.position(), Kind: StructuralMismatch, Expected: "number", Underlying: err}
	}
	return value, nil
}
