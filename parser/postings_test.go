package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/ledger"
)

func amounts(postings []*ast.Posting) []*ast.Amount {
	result := make([]*ast.Amount, len(postings))
	for i, posting := range postings {
		result[i] = posting.Amount
	}
	return result
}

func TestParsePostings(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         []*ast.Amount
		wantInferred []bool
	}{
		{
			name:         "Explicit",
			input:        "    Expenses:Food  $20.00\n    Assets:Cash  $-20.00",
			want:         []*ast.Amount{{Value: 20, Commodity: "$"}, {Value: -20, Commodity: "$"}},
			wantInferred: []bool{false, false},
		},
		{
			name:         "ElidedLast",
			input:        "    Expenses:Food  $20.00\n    Assets:Cash",
			want:         []*ast.Amount{{Value: 20, Commodity: "$"}, {Value: -20, Commodity: "$"}},
			wantInferred: []bool{false, true},
		},
		{
			name:         "ElidedFirst",
			input:        "    Assets:Cash\n    Expenses:Food  $20.00",
			want:         []*ast.Amount{{Value: -20, Commodity: "$"}, {Value: 20, Commodity: "$"}},
			wantInferred: []bool{true, false},
		},
		{
			name:         "ElidedAmongThree",
			input:        "  Expenses:Food  10 EUR\n  Expenses:Drinks  5 EUR\n  Assets:Cash",
			want:         []*ast.Amount{{Value: 10, Commodity: "EUR"}, {Value: 5, Commodity: "EUR"}, {Value: -15, Commodity: "EUR"}},
			wantInferred: []bool{false, false, true},
		},
		{
			name:         "DecimalSum",
			input:        "  A  $0.10\n  B  $0.20\n  C",
			want:         []*ast.Amount{{Value: 0.1, Commodity: "$"}, {Value: 0.2, Commodity: "$"}, {Value: -0.3, Commodity: "$"}},
			wantInferred: []bool{false, false, true},
		},
		{
			name:         "UnbalancedIsKept",
			input:        "  A  $20\n  B  $-10",
			want:         []*ast.Amount{{Value: 20, Commodity: "$"}, {Value: -10, Commodity: "$"}},
			wantInferred: []bool{false, false},
		},
		{
			name:         "CommentsBetween",
			input:        "  A  $20\n  ; paid in cash\n  B",
			want:         []*ast.Amount{{Value: 20, Commodity: "$"}, {Value: -20, Commodity: "$"}},
			wantInferred: []bool{false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postings, err := ParsePostings(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, amounts(postings))
			for i, posting := range postings {
				assert.Equal(t, tt.wantInferred[i], posting.Inferred)
			}
		})
	}
}

func TestParsePostingsPositions(t *testing.T) {
	postings, err := ParsePostings("  A  $20\n    B")
	assert.NoError(t, err)
	assert.Equal(t, ast.Position{Offset: 2, Line: 1, Column: 3}, postings[0].Pos)
	assert.Equal(t, ast.Position{Offset: 13, Line: 2, Column: 5}, postings[1].Pos)
}

func TestParsePostingsTooFew(t *testing.T) {
	_, err := ParsePostings("  Expenses:Food  $20.00")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, StructuralMismatch))

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "line break followed by a posting", pe.Expected)
}

func TestParsePostingsAmbiguous(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantReason ledger.IncompleteReason
		wantLine   int
	}{
		{"TwoElided", "  Expenses:Food\n  Assets:Cash", ledger.MultipleMissingAmounts, 1},
		{"ThreeElided", "  A\n  B\n  C", ledger.MultipleMissingAmounts, 1},
		{"MixedCommodities", "  A  $20\n  B  10 EUR\n  C", ledger.MixedCommodities, 1},
		{"Overflow", "  A  $1" + strings.Repeat("0", 308) + "\n  B  $1" + strings.Repeat("0", 308) + "\n  C", ledger.AmountOverflow, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/Strict", func(t *testing.T) {
			_, err := ParsePostings(tt.input)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, IncompletePostingsList))

			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantLine, pe.Pos.Line)
			assert.Equal(t, 3, pe.Pos.Column)

			var incomplete *ledger.IncompletePostingsError
			assert.True(t, errors.As(err, &incomplete))
			assert.Equal(t, tt.wantReason, incomplete.Reason)
		})

		t.Run(tt.name+"/Lenient", func(t *testing.T) {
			postings, err := ParsePostings(tt.input, WithBalancePolicy(ledger.Lenient))
			assert.NoError(t, err)
			for _, posting := range postings {
				assert.False(t, posting.Inferred)
			}
			assert.Zero(t, postings[len(postings)-1].Amount)
		})
	}
}

func TestParsePostingsErrorMessage(t *testing.T) {
	_, err := ParsePostings("  Expenses:Food\n  Assets:Cash")
	assert.EqualError(t, err, "line 1, column 3: incomplete postings list: 2 postings are missing an amount, at most one can be inferred")

	_, err = ParsePostings("  A  $20\n  B  10 EUR\n  C")
	assert.EqualError(t, err, "line 1, column 3: incomplete postings list: cannot infer the missing amount from mixed commodities ($, EUR)")
}
