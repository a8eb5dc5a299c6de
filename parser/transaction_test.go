package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/ledger"
)

const kfc = `2012-03-10 KFC
    Expenses:Food                $20.00
    Assets:Cash                 $-20.00
`

func TestParseTransaction(t *testing.T) {
	txn, err := ParseTransactionString(kfc)
	assert.NoError(t, err)

	assert.Equal(t, "2012-03-10", txn.Date.String())
	assert.True(t, txn.Date.Equal(ast.NewDate(2012, time.March, 10).Time))
	assert.Equal(t, "KFC", txn.Payee)
	assert.Equal(t, ast.Position{Line: 1, Column: 1}, txn.Pos)

	assert.Equal(t, []*ast.Posting{
		{
			Pos:     ast.Position{Offset: 19, Line: 2, Column: 5},
			Account: "Expenses:Food",
			Amount:  &ast.Amount{Value: 20, Commodity: "$"},
		},
		{
			Pos:     ast.Position{Offset: 59, Line: 3, Column: 5},
			Account: "Assets:Cash",
			Amount:  &ast.Amount{Value: -20, Commodity: "$"},
		},
	}, txn.Postings)
}

func TestParseTransactionVariants(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		opts      []Option
		wantDate  string
		wantPayee string
		want      []*ast.Amount
	}{
		{
			name:      "Elided",
			input:     "2012-03-10 KFC\n    Expenses:Food  $20.00\n    Assets:Cash\n",
			wantDate:  "2012-03-10",
			wantPayee: "KFC",
			want:      []*ast.Amount{{Value: 20, Commodity: "$"}, {Value: -20, Commodity: "$"}},
		},
		{
			name:      "PayeeWithSpaces",
			input:     "2012-03-10 Kentucky Fried Chicken   \n  A  $1\n  B  $-1",
			wantDate:  "2012-03-10",
			wantPayee: "Kentucky Fried Chicken",
			want:      []*ast.Amount{{Value: 1, Commodity: "$"}, {Value: -1, Commodity: "$"}},
		},
		{
			name:      "CarriageReturns",
			input:     "2012-03-10 KFC\r\n  A  $1\r\n  B\r\n",
			wantDate:  "2012-03-10",
			wantPayee: "KFC",
			want:      []*ast.Amount{{Value: 1, Commodity: "$"}, {Value: -1, Commodity: "$"}},
		},
		{
			name:      "TrailingBlankLines",
			input:     "2012-03-10 KFC\n  A  $1\n  B\n\n   \n",
			wantDate:  "2012-03-10",
			wantPayee: "KFC",
			want:      []*ast.Amount{{Value: 1, Commodity: "$"}, {Value: -1, Commodity: "$"}},
		},
		{
			name:      "CommentInside",
			input:     "2012-03-10 KFC\n  ; lunch\n  A  $1\n  B",
			wantDate:  "2012-03-10",
			wantPayee: "KFC",
			want:      []*ast.Amount{{Value: 1, Commodity: "$"}, {Value: -1, Commodity: "$"}},
		},
		{
			name:      "DayAfterMonth",
			input:     "2012-03-31 KFC\n  A  $1\n  B",
			wantDate:  "2012-03-31",
			wantPayee: "KFC",
			want:      []*ast.Amount{{Value: 1, Commodity: "$"}, {Value: -1, Commodity: "$"}},
		},
		{
			name:      "CustomLayout",
			input:     "2012/03/10 KFC\n  A  $1\n  B",
			opts:      []Option{WithDateLayout("2006/01/02")},
			wantDate:  "2012-03-10",
			wantPayee: "KFC",
			want:      []*ast.Amount{{Value: 1, Commodity: "$"}, {Value: -1, Commodity: "$"}},
		},
		{
			name:      "QuotedCommodities",
			input:     "2012-03-10 Broker\n  Assets:Stocks  40.0 \"IBM Stocks\"\n  Assets:Broker",
			wantDate:  "2012-03-10",
			wantPayee: "Broker",
			want:      []*ast.Amount{{Value: 40, Commodity: "IBM Stocks"}, {Value: -40, Commodity: "IBM Stocks"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := ParseTransactionString(tt.input, tt.opts...)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantDate, txn.Date.String())
			assert.Equal(t, tt.wantPayee, txn.Payee)
			assert.Equal(t, tt.want, amounts(txn.Postings))
		})
	}
}

func TestParseTransactionErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		opts       []Option
		wantKind   ErrorKind
		wantLine   int
		wantColumn int
		wantError  string
	}{
		{
			name:       "InvalidMonth",
			input:      "2012-13-10 KFC\n  A  $1\n  B",
			wantKind:   DateFormatInvalid,
			wantLine:   1,
			wantColumn: 1,
		},
		{
			name:       "WrongLayout",
			input:      "10/03/2012 KFC\n  A  $1\n  B",
			wantKind:   DateFormatInvalid,
			wantLine:   1,
			wantColumn: 1,
		},
		{
			name:       "MissingPayee",
			input:      "2012-03-10\n  A  $1\n  B",
			wantKind:   StructuralMismatch,
			wantLine:   1,
			wantColumn: 11,
			wantError:  `line 1, column 11: expected " "`,
		},
		{
			name:       "BlankPayee",
			input:      "2012-03-10    \n  A  $1\n  B",
			wantKind:   MinimumNotReached,
			wantLine:   1,
			wantColumn: 15,
			wantError:  "line 1, column 15: expected payee",
		},
		{
			name:       "NoPostings",
			input:      "2012-03-10 KFC",
			wantKind:   StructuralMismatch,
			wantLine:   1,
			wantColumn: 15,
			wantError:  "line 1, column 15: expected line break",
		},
		{
			name:       "UnindentedPosting",
			input:      "2012-03-10 KFC\nExpenses:Food  $20.00\n  Assets:Cash",
			wantKind:   StructuralMismatch,
			wantLine:   2,
			wantColumn: 1,
		},
		{
			name:       "SinglePosting",
			input:      "2012-03-10 KFC\n  Expenses:Food  $20.00\n",
			wantKind:   StructuralMismatch,
			wantLine:   2,
			wantColumn: 24,
			wantError:  "line 2, column 24: expected line break followed by a posting",
		},
		{
			name:       "TwoElided",
			input:      "2012-03-10 KFC\n  Expenses:Food\n  Assets:Cash",
			wantKind:   IncompletePostingsList,
			wantLine:   2,
			wantColumn: 3,
		},
		{
			name:       "BadAmountInSecondPosting",
			input:      "2012-03-10 KFC\n  Expenses:Food  $20.00\n  Assets:Cash  USD\n",
			wantKind:   ExpectedAmount,
			wantLine:   3,
			wantColumn: 19,
			wantError:  "line 3, column 19: expected number",
		},
		{
			name:       "TrailingGarbage",
			input:      "2012-03-10 KFC\n  A  $1\n  B\nfoo",
			wantKind:   StructuralMismatch,
			wantLine:   4,
			wantColumn: 1,
			wantError:  "line 4, column 1: expected end of input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := ParseTransactionString(tt.input, tt.opts...)
			assert.Error(t, err)
			assert.Zero(t, txn)
			assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantLine, pe.Pos.Line)
			assert.Equal(t, tt.wantColumn, pe.Pos.Column)
			if tt.wantError != "" {
				assert.EqualError(t, err, tt.wantError)
			}
		})
	}
}

func TestParseTransactionDateMessage(t *testing.T) {
	_, err := ParseTransactionString("2012-03-10 KFC\n  A  $1\n  B", WithDateLayout("02.01.2006"), WithFilename("food.ledger"))
	assert.Error(t, err)

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "date formatted as 02.01.2006", pe.Expected)
	assert.Equal(t, "food.ledger", pe.Pos.Filename)
	assert.Contains(t, err.Error(), "food.ledger:1:1: invalid date format: parsing time")
}

func TestParseTransactionLenient(t *testing.T) {
	txn, err := ParseTransactionString("2012-03-10 KFC\n  Expenses:Food\n  Assets:Cash", WithBalancePolicy(ledger.Lenient))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(txn.Postings))
	assert.Zero(t, txn.Postings[0].Amount)
	assert.Zero(t, txn.Postings[1].Amount)
}
