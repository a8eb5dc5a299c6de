package formatter

import (
	"strings"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/parser"
)

// needsQuotes reports whether a commodity must be written in quotes to parse
// back as the same commodity.
func needsQuotes(commodity ast.Commodity) bool {
	if commodity == "" {
		return true
	}
	for _, r := range string(commodity) {
		if !parser.BareCommodity(r) {
			return true
		}
	}
	return false
}

// quoteCommodity renders a commodity, quoting it when it holds characters
// outside the bare commodity alphabet.
func quoteCommodity(commodity ast.Commodity) string {
	if !needsQuotes(commodity) {
		return string(commodity)
	}

	var buf strings.Builder
	buf.Grow(len(commodity) + 2)
	buf.WriteByte('"')
	buf.WriteString(string(commodity))
	buf.WriteByte('"')
	return buf.String()
}
