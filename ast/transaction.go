package ast

// Transaction records a dated ledger entry with a payee and the postings that
// move amounts between accounts. A transaction has at least two postings and,
// once balanced, the postings of its commodity sum to zero.
//
// Example:
//
//	2012-03-10 KFC
//	    Expenses:Food                $20.00
//	    Assets:Cash
type Transaction struct {
	Pos      Position
	Date     Date
	Payee    string
	Postings []*Posting
}

// Accounts returns the distinct accounts touched by the transaction in posting order.
func (t *Transaction) Accounts() []string {
	accounts := make([]string, 0, len(t.Postings))
	seen := make(map[string]bool, len(t.Postings))
	for _, posting := range t.Postings {
		if !seen[posting.Account] {
			accounts = append(accounts, posting.Account)
			seen[posting.Account] = true
		}
	}
	return accounts
}

// Posting represents one leg of a transaction: an account path and an optional
// amount. A posting without an amount has it inferred when the transaction is
// balanced, in which case Inferred is set.
//
// Example postings within a transaction:
//
//	Expenses:Food                $20.00
//	Assets:Stocks                40.0 "IBM Stocks"
//	Assets:Cash
type Posting struct {
	Pos      Position
	Account  string
	Amount   *Amount
	Inferred bool // True if Amount was filled in by balancing (not parsed)
}
