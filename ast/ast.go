// Package ast declares the types used to represent parsed plain-text ledgers.
//
// Values are built bottom-up by the parser package: commodities and amounts,
// postings, transactions and finally a Ledger holding every transaction and
// comment of a document. They can also be constructed by hand and rendered
// back to text with the formatter package.
package ast

import (
	"golang.org/x/exp/slices"
)

// Ledger represents a parsed document: its transactions in file order and the
// comment lines found between and inside them.
type Ledger struct {
	Transactions []*Transaction
	Comments     []*Comment
}

// compareTransactions orders transactions by date, falling back to their
// position in the source so that same-day entries keep file order.
func compareTransactions(a, b *Transaction) int {
	if c := a.Date.Compare(b.Date.Time); c != 0 {
		return c
	}
	return a.Pos.Offset - b.Pos.Offset
}

// SortTransactions sorts the ledger's transactions chronologically.
func SortTransactions(l *Ledger) {
	if slices.IsSortedFunc(l.Transactions, compareTransactions) {
		return
	}
	slices.SortStableFunc(l.Transactions, compareTransactions)
}
