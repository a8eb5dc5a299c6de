package parser

import (
	"unicode/utf8"

	"github.com/robinvdvleuten/money/ast"
)

// cursor walks a bounded window of a source buffer rune by rune, tracking the
// line and column of its position. Grammar rules take a mark before trying an
// alternative and reset to it on failure, so no rule leaves partial
// consumption behind.
type cursor struct {
	source   []byte
	filename string
	end      int // Exclusive bound of the window being parsed
	pos      int // Current byte offset
	line     int // Current line (1-indexed)
	column   int // Current column in runes (1-indexed)
}

// mark is a saved cursor location.
type mark struct {
	pos    int
	line   int
	column int
}

func newCursor(source []byte, filename string) cursor {
	return cursor{
		source:   source,
		filename: filename,
		end:      len(source),
		line:     1,
		column:   1,
	}
}

// window restricts the cursor to source[start:end], which begins at line.
func (c *cursor) window(start, end, line int) {
	c.pos = start
	c.end = end
	c.line = line
	c.column = 1
}

func (c *cursor) mark() mark {
	return mark{pos: c.pos, line: c.line, column: c.column}
}

func (c *cursor) reset(m mark) {
	c.pos = m.pos
	c.line = m.line
	c.column = m.column
}

// text returns the source consumed since m.
func (c *cursor) text(m mark) string {
	return string(c.source[m.pos:c.pos])
}

func (c *cursor) atEnd() bool {
	return c.pos >= c.end
}

// peek returns the rune at the cursor, or utf8.RuneError at the end of input.
func (c *cursor) peek() rune {
	if c.atEnd() {
		return utf8.RuneError
	}
	if b := c.source[c.pos]; b < utf8.RuneSelf {
		return rune(b)
	}
	r, _ := utf8.DecodeRune(c.source[c.pos:c.end])
	return r
}

// advance consumes one rune and returns it.
func (c *cursor) advance() rune {
	if c.atEnd() {
		return utf8.RuneError
	}
	r, size := rune(c.source[c.pos]), 1
	if r >= utf8.RuneSelf {
		r, size = utf8.DecodeRune(c.source[c.pos:c.end])
	}
	c.pos += size
	if r == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	return r
}

// atLineEnd reports whether the cursor sits on a line break or the end of input.
func (c *cursor) atLineEnd() bool {
	if c.atEnd() {
		return true
	}
	switch c.source[c.pos] {
	case '\n':
		return true
	case '\r':
		return c.pos+1 < c.end && c.source[c.pos+1] == '\n'
	}
	return false
}

func (c *cursor) position() ast.Position {
	return ast.Position{
		Filename: c.filename,
		Offset:   c.pos,
		Line:     c.line,
		Column:   c.column,
	}
}
