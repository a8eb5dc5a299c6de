package ast

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Summary holds the accounts and commodities a ledger refers to.
type Summary struct {
	Accounts    []string    // Sorted
	Commodities []Commodity // Sorted
}

// Summarize collects the accounts and commodities of l in a single pass.
// Commodities of inferred amounts are included.
func (l *Ledger) Summarize() Summary {
	accounts := make(map[string]bool)
	commodities := make(map[Commodity]bool)

	for _, txn := range l.Transactions {
		for _, posting := range txn.Postings {
			accounts[posting.Account] = true
			if posting.Amount != nil {
				commodities[posting.Amount.Commodity] = true
			}
		}
	}

	summary := Summary{
		Accounts:    maps.Keys(accounts),
		Commodities: maps.Keys(commodities),
	}
	slices.Sort(summary.Accounts)
	slices.Sort(summary.Commodities)

	return summary
}
