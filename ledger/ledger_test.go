package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/ledger"
	"github.com/robinvdvleuten/money/parser"
)

const journal = `2012-03-10 KFC
    Expenses:Food                $20.00
    Assets:Cash

2012-03-09 Broker
    Assets:Stocks                40 Stocks
    Assets:Cash                 $-400.00

2012-03-11 Paycheck
    Assets:Cash                 $1000.00
    Income:Salary
`

func process(t *testing.T, source string, opts ...ledger.Option) (*ledger.Ledger, error) {
	t.Helper()
	tree, err := parser.ParseString(context.Background(), source, parser.WithFilename("ledger.txt"))
	assert.NoError(t, err)

	l := ledger.New(opts...)
	return l, l.Process(context.Background(), tree)
}

func balances(l *ledger.Ledger) map[string]string {
	got := make(map[string]string)
	for _, account := range l.Accounts() {
		got[account.Name] = account.Balance.String()
	}
	return got
}

func TestProcess(t *testing.T) {
	l, err := process(t, journal)
	assert.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Assets:Cash":   "580 $",
		"Assets:Stocks": "40 Stocks",
		"Expenses:Food": "20 $",
		"Income:Salary": "-1000 $",
	}, balances(l))

	cash, ok := l.GetAccount("Assets:Cash")
	assert.True(t, ok)
	assert.Equal(t, 3, cash.Postings)
	assert.Equal(t, "2012-03-09", cash.FirstDate.String())
	assert.Equal(t, "2012-03-11", cash.LastDate.String())
	assert.Equal(t, ledger.AccountTypeAssets, cash.Type)

	_, ok = l.GetAccount("Assets:Bank")
	assert.False(t, ok)
	assert.Equal(t, 0, len(l.Errors()))
}

func TestProcessSortsTransactions(t *testing.T) {
	tree, err := parser.ParseString(context.Background(), journal)
	assert.NoError(t, err)

	assert.NoError(t, ledger.New().Process(context.Background(), tree))

	payees := make([]string, len(tree.Transactions))
	for i, txn := range tree.Transactions {
		payees[i] = txn.Payee
	}
	assert.Equal(t, []string{"Broker", "KFC", "Paycheck"}, payees)
}

func TestProcessNotBalanced(t *testing.T) {
	source := `2012-03-10 KFC
    Expenses:Food                $20.00
    Assets:Cash                 $-10.00

2012-03-11 Lunch
    Expenses:Food                $5.00
    Assets:Cash
`
	l, err := process(t, source)

	var verr *ledger.ValidationErrors
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, len(verr.Errors))
	assert.Equal(t, "ledger.txt:1: Transaction does not balance: (10 $)", err.Error())

	var balanceErr *ledger.TransactionNotBalancedError
	assert.True(t, errors.As(err, &balanceErr))
	assert.Equal(t, "KFC", balanceErr.Payee)

	// The unbalanced transaction posts nothing, the next one still does.
	assert.Equal(t, map[string]string{
		"Assets:Cash":   "-5 $",
		"Expenses:Food": "5 $",
	}, balances(l))
}

func TestProcessTolerance(t *testing.T) {
	source := `2012-03-10 Exchange
    Assets:Wallet                0.5 BTC
    Assets:Exchange             -0.49 BTC
`
	_, err := process(t, source)
	assert.Error(t, err)

	config, err := ledger.ParseToleranceConfig([]string{"BTC:0.01"})
	assert.NoError(t, err)

	_, err = process(t, source, ledger.WithTolerance(config))
	assert.NoError(t, err)
}

func TestProcessIncomplete(t *testing.T) {
	source := `2012-03-10 KFC
    Expenses:Food
    Assets:Cash
`
	tree, err := parser.ParseString(context.Background(), source, parser.WithBalancePolicy(ledger.Lenient))
	assert.NoError(t, err)

	err = ledger.New().Process(context.Background(), tree)

	var incomplete *ledger.IncompleteTransactionError
	assert.True(t, errors.As(err, &incomplete))
	assert.Equal(t, "2012-03-10: Transaction is incomplete: 2 postings are missing an amount, at most one can be inferred", err.Error())
}

func TestProcessBuiltTransactions(t *testing.T) {
	tree := &ast.Ledger{
		Transactions: []*ast.Transaction{
			ast.NewTransaction(ast.NewDate(2012, 3, 10), "KFC", ast.WithPostings(
				ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
				ast.NewPosting("Assets:Cash"),
			)),
			ast.NewTransaction(ast.NewDate(0, 1, 1), "Too early", ast.WithPostings(
				ast.NewPosting("Expenses:Food", ast.WithAmount(1, "$")),
				ast.NewPosting("Assets:Cash", ast.WithAmount(-1, "$")),
			)),
		},
	}

	l := ledger.New()
	err := l.Process(context.Background(), tree)

	var dateErr *ledger.InvalidDateError
	assert.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "Too early", dateErr.Transaction.Payee)

	assert.Equal(t, map[string]string{
		"Assets:Cash":   "-20 $",
		"Expenses:Food": "20 $",
	}, balances(l))
	assert.True(t, tree.Transactions[1].Postings[1].Inferred)
}

func TestProcessCancelled(t *testing.T) {
	tree, err := parser.ParseString(context.Background(), journal)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = ledger.New().Process(ctx, tree)
	assert.IsError(t, err, context.Canceled)
}

func TestBalanceTreeFromLedger(t *testing.T) {
	l, err := process(t, journal)
	assert.NoError(t, err)

	tree := l.BalanceTree()
	assert.Equal(t, []ast.Commodity{"$", "Stocks"}, tree.Commodities)

	var accounts []string
	tree.Walk(func(node *ledger.BalanceNode) {
		accounts = append(accounts, node.Account)
	})
	assert.Equal(t, []string{
		"Assets", "Assets:Cash", "Assets:Stocks",
		"Expenses", "Expenses:Food",
		"Income", "Income:Salary",
	}, accounts)
	assert.Equal(t, "580 $, 40 Stocks", tree.Roots[0].Balance.String())
}
