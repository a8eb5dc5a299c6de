// Package ledger checks parsed ledgers and accumulates account balances.
//
// Balancing happens in two places. While parsing, BalancePostings infers the
// single amount a transaction may leave out. Afterwards, Ledger.Process checks
// that every transaction sums to zero in each of its commodities and posts the
// amounts to their accounts. All amounts are summed as decimals to avoid
// floating point drift.
//
// Example usage:
//
//	tree, err := parser.ParseBytes(ctx, source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	l := ledger.New()
//	if err := l.Process(ctx, tree); err != nil {
//	    var verr *ledger.ValidationErrors
//	    if errors.As(err, &verr) {
//	        for _, e := range verr.Errors {
//	            fmt.Println(e)
//	        }
//	    }
//	}
//
//	for _, account := range l.Accounts() {
//	    fmt.Println(account.Name, account.Balance)
//	}
package ledger

import (
	"context"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/telemetry"
)

// Ledger holds the accounts built from processed transactions and the
// validation errors found on the way.
type Ledger struct {
	accounts  map[string]*Account
	errors    []error
	tolerance *ToleranceConfig
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithTolerance sets the residual tolerated per commodity when checking that
// transactions balance.
func WithTolerance(config *ToleranceConfig) Option {
	return func(l *Ledger) {
		if config != nil {
			l.tolerance = config
		}
	}
}

// New creates a new empty ledger
func New(opts ...Option) *Ledger {
	l := &Ledger{
		accounts:  make(map[string]*Account),
		errors:    make([]error, 0),
		tolerance: NewToleranceConfig(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Process checks the transactions of tree in date order and posts their
// amounts to the accounts. Transactions that fail validation are reported in a
// *ValidationErrors and leave the accounts untouched.
func (l *Ledger) Process(ctx context.Context, tree *ast.Ledger) error {
	ast.SortTransactions(tree)

	_, timer := telemetry.Start(ctx, "ledger.process")
	defer timer.End()
	timer.Annotate("%s transactions", humanize.Comma(int64(len(tree.Transactions))))

	v := newValidator(l.tolerance)
	for _, txn := range tree.Transactions {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.processTransaction(v, txn)
	}

	if len(l.errors) > 0 {
		return &ValidationErrors{Errors: l.errors}
	}
	return nil
}

func (l *Ledger) processTransaction(v *validator, txn *ast.Transaction) {
	if errs := v.validateTransaction(txn); len(errs) > 0 {
		for _, err := range errs {
			l.addError(err)
		}
		return
	}

	for _, posting := range txn.Postings {
		account, ok := l.accounts[posting.Account]
		if !ok {
			account = newAccount(posting.Account)
			l.accounts[posting.Account] = account
		}
		account.post(txn.Date, *posting.Amount)
	}
}

func (l *Ledger) addError(err error) {
	l.errors = append(l.errors, err)
}

// Errors returns all collected errors
func (l *Ledger) Errors() []error {
	return l.errors
}

// GetAccount returns an account by name
func (l *Ledger) GetAccount(name string) (*Account, bool) {
	acc, ok := l.accounts[name]
	return acc, ok
}

// Accounts returns all accounts sorted by name.
func (l *Ledger) Accounts() []*Account {
	accounts := maps.Values(l.accounts)
	slices.SortFunc(accounts, func(a, b *Account) int {
		return strings.Compare(a.Name, b.Name)
	})
	return accounts
}

// BalanceTree returns the balances of all accounts as a tree.
func (l *Ledger) BalanceTree() *BalanceTree {
	return NewBalanceTree(l.Accounts())
}
