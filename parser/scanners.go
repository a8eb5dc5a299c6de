package parser

import (
	"fmt"
	"math"
	"unicode"
)

// Primitive scanners. Each one either succeeds, or fails with the cursor
// exactly where it started.

// unbounded is the maximum used for runs without an upper limit.
const unbounded = math.MaxInt

// charSet decides whether a rune belongs to a character class.
type charSet func(r rune) bool

// BareCommodity is the alphabet an unquoted commodity is drawn from: Unicode
// letters, Unicode currency symbols ($, €, £, ¥, ...) and the underscore.
// Digits, '-', '.', ',', quotes, ';' and whitespace are excluded so a bare
// commodity never swallows part of an adjacent number or comment.
func BareCommodity(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Sc, r) || r == '_'
}

func isSpace(r rune) bool {
	return r == ' '
}

func isTokenRune(r rune) bool {
	return r != ' ' && r != '\n' && r != '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// skipSpaces consumes a run of ' ' whose length must lie within [min, max].
func (p *Parser) skipSpaces(min, max int) error {
	start := p.mark()
	n := 0
	for n < max && !p.atEnd() && isSpace(p.peek()) {
		p.advance()
		n++
	}
	if n < min {
		p.reset(start)
		return p.errorf(StructuralMismatch, `" "`)
	}
	return nil
}

// spaces0 consumes any number of spaces, including none.
func (p *Parser) spaces0() {
	_ = p.skipSpaces(0, unbounded)
}

// spaces1 consumes at least one space.
func (p *Parser) spaces1() error {
	return p.skipSpaces(1, unbounded)
}

// charClass consumes the longest prefix of at most max runes that belong to
// set. It fails with MinimumNotReached when fewer than min runes matched.
func (p *Parser) charClass(set charSet, min, max int, what string) (string, error) {
	start := p.mark()
	n := 0
	for n < max && !p.atEnd() && set(p.peek()) {
		p.advance()
		n++
	}
	if n < min {
		p.reset(start)
		err := p.errorf(MinimumNotReached, what)
		if min > 1 {
			err.Expected = fmt.Sprintf("at least %d of %s", min, what)
		}
		return "", err
	}
	return p.text(start), nil
}

// restOfLine consumes everything up to, but not including, the next line break.
func (p *Parser) restOfLine() string {
	start := p.mark()
	for !p.atLineEnd() {
		p.advance()
	}
	return p.text(start)
}

// untilDelimiter consumes everything up to, but not including, delim. It fails
// when the line or the input ends before delim is found.
func (p *Parser) untilDelimiter(delim rune) (string, error) {
	start := p.mark()
	for !p.atLineEnd() {
		if p.peek() == delim {
			return p.text(start), nil
		}
		p.advance()
	}
	err := p.errorf(StructuralMismatch, fmt.Sprintf("%q", string(delim)))
	p.reset(start)
	return "", err
}

// literal consumes r or fails without consuming anything.
func (p *Parser) literal(r rune) error {
	if p.atEnd() || p.peek() != r {
		return p.errorf(StructuralMismatch, fmt.Sprintf("%q", string(r)))
	}
	p.advance()
	return nil
}

// lineBreak consumes exactly one "\n" or "\r\n".
func (p *Parser) lineBreak() error {
	start := p.mark()
	if p.peek() == '\r' {
		p.advance()
	}
	if p.atEnd() || p.peek() != '\n' {
		p.reset(start)
		return p.errorf(StructuralMismatch, "line break")
	}
	p.advance()
	return nil
}

// lineEnd succeeds without consuming anything if the cursor is at a line
// break or the end of input.
func (p *Parser) lineEnd() error {
	if !p.atLineEnd() {
		return p.errorf(StructuralMismatch, "end of line")
	}
	return nil
}
