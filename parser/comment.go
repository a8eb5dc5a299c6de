package parser

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/money/ast"
)

// parseComment parses a comment line. The text runs to the end of the line and
// is kept verbatim.
//
//	comment := spaces* marker ' ' text
func (p *Parser) parseComment() (*ast.Comment, error) {
	start := p.mark()
	p.spaces0()
	pos := p.position()

	marker := p.peek()
	if p.atEnd() || !strings.ContainsRune(ast.CommentMarkers, marker) {
		err := p.errorf(StructuralMismatch, fmt.Sprintf("one of %q", ast.CommentMarkers))
		p.reset(start)
		return nil, err
	}
	p.advance()

	if err := p.literal(' '); err != nil {
		p.reset(start)
		return nil, err
	}

	return &ast.Comment{
		Pos:    pos,
		Marker: marker,
		Text:   p.restOfLine(),
	}, nil
}
