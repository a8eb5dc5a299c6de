// Constructor functions for building ledgers from code, such as importers
// turning bank statements into transactions. Complex values are configured
// with functional options.

package ast

import (
	"time"
)

// NewAmount creates an amount of value in commodity.
//
// Example:
//
//	amount := ast.NewAmount(45.60, "€")
func NewAmount(value float64, commodity string) *Amount {
	return &Amount{
		Value:     value,
		Commodity: Commodity(commodity),
	}
}

// TransactionOption is a functional option for configuring a Transaction.
type TransactionOption func(*Transaction)

// NewTransaction creates a transaction on date for payee.
//
// Example:
//
//	txn := ast.NewTransaction(ast.NewDate(2012, time.March, 10), "KFC",
//	    ast.WithPostings(
//	        ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
//	        ast.NewPosting("Assets:Cash"),
//	    ),
//	)
func NewTransaction(date Date, payee string, opts ...TransactionOption) *Transaction {
	txn := &Transaction{
		Date:  date,
		Payee: payee,
	}

	for _, opt := range opts {
		opt(txn)
	}

	return txn
}

// NewTransactionOn is NewTransaction for a date given as a time.
func NewTransactionOn(t time.Time, payee string, opts ...TransactionOption) *Transaction {
	return NewTransaction(NewDate(t.Year(), t.Month(), t.Day()), payee, opts...)
}

// WithPostings sets the postings of the transaction.
func WithPostings(postings ...*Posting) TransactionOption {
	return func(t *Transaction) {
		t.Postings = postings
	}
}

// WithPosition sets where the transaction starts in its source.
func WithPosition(pos Position) TransactionOption {
	return func(t *Transaction) {
		t.Pos = pos
	}
}

// PostingOption is a functional option for configuring a Posting.
type PostingOption func(*Posting)

// NewPosting creates a posting to account. Without WithAmount the amount is
// left out, to be inferred when the transaction is balanced.
func NewPosting(account string, opts ...PostingOption) *Posting {
	posting := &Posting{
		Account: account,
	}

	for _, opt := range opts {
		opt(posting)
	}

	return posting
}

// WithAmount sets the amount of a posting.
func WithAmount(value float64, commodity string) PostingOption {
	return func(p *Posting) {
		p.Amount = NewAmount(value, commodity)
	}
}

// WithInferredAmount sets the amount of a posting and marks it as inferred.
func WithInferredAmount(value float64, commodity string) PostingOption {
	return func(p *Posting) {
		p.Amount = NewAmount(value, commodity)
		p.Inferred = true
	}
}

// NewComment creates a comment line with the given marker.
func NewComment(marker rune, text string) *Comment {
	return &Comment{
		Marker: marker,
		Text:   text,
	}
}
