package ledger

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/money/ast"
)

func TestValidateTransaction(t *testing.T) {
	march := ast.NewDate(2012, time.March, 10)

	tests := []struct {
		name    string
		txn     *ast.Transaction
		wantErr []string
	}{
		{
			name: "Balanced",
			txn: ast.NewTransaction(march, "KFC", ast.WithPostings(
				ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
				ast.NewPosting("Assets:Cash", ast.WithAmount(-20, "$")),
			)),
		},
		{
			name: "InfersMissingAmount",
			txn: ast.NewTransaction(march, "KFC", ast.WithPostings(
				ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
				ast.NewPosting("Assets:Cash"),
			)),
		},
		{
			name: "YearZero",
			txn: ast.NewTransaction(ast.NewDate(0, time.January, 1), "KFC", ast.WithPostings(
				ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
				ast.NewPosting("Assets:Cash", ast.WithAmount(-20, "$")),
			), ast.WithPosition(ast.Position{Line: 4})),
			wantErr: []string{"line 4: Invalid date: year 0 is out of range"},
		},
		{
			name: "YearTooLarge",
			txn: ast.NewTransaction(ast.NewDate(10000, time.January, 1), "KFC", ast.WithPostings(
				ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
				ast.NewPosting("Assets:Cash", ast.WithAmount(-20, "$")),
			), ast.WithPosition(ast.Position{Filename: "ledger.txt", Line: 1})),
			wantErr: []string{"ledger.txt:1: Invalid date: year 10000 is out of range"},
		},
		{
			name: "NotFinite",
			txn: ast.NewTransaction(march, "KFC", ast.WithPostings(
				ast.NewPosting("Expenses:Food", ast.WithAmount(math.Inf(1), "$")),
				ast.NewPosting("Assets:Cash", ast.WithAmount(math.NaN(), "$")),
			)),
			wantErr: []string{
				"2012-03-10: Invalid amount +Inf $ for account Expenses:Food",
				"2012-03-10: Invalid amount NaN $ for account Assets:Cash",
			},
		},
		{
			name: "Incomplete",
			txn: ast.NewTransaction(march, "KFC", ast.WithPostings(
				ast.NewPosting("Expenses:Food"),
				ast.NewPosting("Assets:Cash"),
			)),
			wantErr: []string{"2012-03-10: Transaction is incomplete: 2 postings are missing an amount, at most one can be inferred"},
		},
		{
			name: "NotBalanced",
			txn: ast.NewTransaction(march, "KFC", ast.WithPostings(
				ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
				ast.NewPosting("Assets:Cash", ast.WithAmount(-10, "$")),
			)),
			wantErr: []string{"2012-03-10: Transaction does not balance: (10 $)"},
		},
	}

	v := newValidator(NewToleranceConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.validateTransaction(tt.txn)
			messages := make([]string, len(errs))
			for i, err := range errs {
				messages[i] = err.Error()
			}
			if tt.wantErr == nil {
				assert.Equal(t, []string{}, messages)
				return
			}
			assert.Equal(t, tt.wantErr, messages)
		})
	}
}

func TestValidateTransactionStopsAtFirstStage(t *testing.T) {
	// An invalid date is reported on its own, even though the postings do not balance.
	txn := ast.NewTransaction(ast.NewDate(0, time.January, 1), "KFC", ast.WithPostings(
		ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
		ast.NewPosting("Assets:Cash", ast.WithAmount(-10, "$")),
	))

	errs := newValidator(nil).validateTransaction(txn)
	assert.Equal(t, 1, len(errs))

	var dateErr *InvalidDateError
	assert.True(t, errors.As(errs[0], &dateErr))
	assert.Equal(t, txn, dateErr.GetTransaction())
}
