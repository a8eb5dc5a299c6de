package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/money/ast"
)

func TestBalancePostings(t *testing.T) {
	tests := []struct {
		name     string
		postings []*ast.Posting
		want     []*ast.Amount
		inferred int // Index of the inferred posting, or -1
	}{
		{
			name: "NothingMissing",
			postings: []*ast.Posting{
				ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
				ast.NewPosting("Assets:Cash", ast.WithAmount(-20, "$")),
			},
			want:     []*ast.Amount{ast.NewAmount(20, "$"), ast.NewAmount(-20, "$")},
			inferred: -1,
		},
		{
			name: "OneMissing",
			postings: []*ast.Posting{
				ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
				ast.NewPosting("Assets:Cash"),
			},
			want:     []*ast.Amount{ast.NewAmount(20, "$"), ast.NewAmount(-20, "$")},
			inferred: 1,
		},
		{
			name: "OneMissingInTheMiddle",
			postings: []*ast.Posting{
				ast.NewPosting("Expenses:Food", ast.WithAmount(12.5, "€")),
				ast.NewPosting("Assets:Cash"),
				ast.NewPosting("Expenses:Tips", ast.WithAmount(1.25, "€")),
			},
			want:     []*ast.Amount{ast.NewAmount(12.5, "€"), ast.NewAmount(-13.75, "€"), ast.NewAmount(1.25, "€")},
			inferred: 1,
		},
		{
			name: "SumsAsDecimals",
			postings: []*ast.Posting{
				ast.NewPosting("A", ast.WithAmount(0.1, "$")),
				ast.NewPosting("B", ast.WithAmount(0.2, "$")),
				ast.NewPosting("C"),
			},
			want:     []*ast.Amount{ast.NewAmount(0.1, "$"), ast.NewAmount(0.2, "$"), ast.NewAmount(-0.3, "$")},
			inferred: 2,
		},
		{
			name: "ExplicitUnbalanced",
			postings: []*ast.Posting{
				ast.NewPosting("A", ast.WithAmount(20, "$")),
				ast.NewPosting("B", ast.WithAmount(-10, "$")),
			},
			want:     []*ast.Amount{ast.NewAmount(20, "$"), ast.NewAmount(-10, "$")},
			inferred: -1,
		},
	}

	for _, tt := range tests {
		for _, policy := range []Policy{Strict, Lenient} {
			t.Run(tt.name+"/"+policy.String(), func(t *testing.T) {
				postings := clonePostings(tt.postings)
				assert.NoError(t, BalancePostings(postings, policy))

				for i, posting := range postings {
					assert.Equal(t, tt.want[i], posting.Amount)
					assert.Equal(t, i == tt.inferred, posting.Inferred)
				}
			})
		}
	}
}

func TestBalancePostingsIncomplete(t *testing.T) {
	tests := []struct {
		name            string
		postings        []*ast.Posting
		wantReason      IncompleteReason
		wantMissing     int
		wantCommodities []ast.Commodity
		wantError       string
	}{
		{
			name: "TwoMissing",
			postings: []*ast.Posting{
				ast.NewPosting("Expenses:Food"),
				ast.NewPosting("Assets:Cash"),
			},
			wantReason:  MultipleMissingAmounts,
			wantMissing: 2,
			wantError:   "2 postings are missing an amount, at most one can be inferred",
		},
		{
			name: "TwoMissingWithAmount",
			postings: []*ast.Posting{
				ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
				ast.NewPosting("Assets:Cash"),
				ast.NewPosting("Assets:Bank"),
			},
			wantReason:  MultipleMissingAmounts,
			wantMissing: 2,
			wantError:   "2 postings are missing an amount, at most one can be inferred",
		},
		{
			name: "NoCommodity",
			postings: []*ast.Posting{
				ast.NewPosting("Assets:Cash"),
			},
			wantReason:  NoCommodity,
			wantMissing: 1,
			wantError:   "no posting has an amount to infer the missing one from",
		},
		{
			name: "MixedCommodities",
			postings: []*ast.Posting{
				ast.NewPosting("Assets:Stocks", ast.WithAmount(40, "Stocks")),
				ast.NewPosting("Assets:Cash", ast.WithAmount(-400, "$")),
				ast.NewPosting("Expenses:Fees"),
			},
			wantReason:      MixedCommodities,
			wantMissing:     1,
			wantCommodities: []ast.Commodity{"Stocks", "$"},
			wantError:       "cannot infer the missing amount from mixed commodities (Stocks, $)",
		},
		{
			name: "Overflow",
			postings: []*ast.Posting{
				ast.NewPosting("Assets:A", ast.WithAmount(math.MaxFloat64, "$")),
				ast.NewPosting("Assets:B", ast.WithAmount(math.MaxFloat64, "$")),
				ast.NewPosting("Assets:C"),
			},
			wantReason:  AmountOverflow,
			wantMissing: 1,
			wantError:   "the inferred amount is out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/Strict", func(t *testing.T) {
			postings := clonePostings(tt.postings)
			err := BalancePostings(postings, Strict)
			assert.EqualError(t, err, tt.wantError)

			var incomplete *IncompletePostingsError
			assert.True(t, errors.As(err, &incomplete))
			assert.Equal(t, tt.wantReason, incomplete.Reason)
			assert.Equal(t, tt.wantMissing, incomplete.Missing)
			assert.Equal(t, tt.wantCommodities, incomplete.Commodities)

			// A rejected list is left as parsed.
			assert.Equal(t, tt.postings, postings)
		})

		t.Run(tt.name+"/Lenient", func(t *testing.T) {
			postings := clonePostings(tt.postings)
			assert.NoError(t, BalancePostings(postings, Lenient))
			assert.Equal(t, tt.postings, postings)
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"strict", Strict, false},
		{"Lenient", Lenient, false},
		{"LENIENT", Lenient, false},
		{"loose", Strict, true},
		{"", Strict, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "Policy(7)", Policy(7).String())
}

// clonePostings copies postings so that balancing does not modify the test table.
func clonePostings(postings []*ast.Posting) []*ast.Posting {
	clones := make([]*ast.Posting, len(postings))
	for i, posting := range postings {
		clone := *posting
		if posting.Amount != nil {
			amount := *posting.Amount
			clone.Amount = &amount
		}
		clones[i] = &clone
	}
	return clones
}
