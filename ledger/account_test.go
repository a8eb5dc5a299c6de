package ledger

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/money/ast"
)

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		account string
		want    AccountType
	}{
		{"Assets:Cash", AccountTypeAssets},
		{"Asset", AccountTypeAssets},
		{"Liabilities:CreditCard", AccountTypeLiabilities},
		{"Equity:Opening Balances", AccountTypeEquity},
		{"Income:Salary", AccountTypeIncome},
		{"Revenue:Sales", AccountTypeIncome},
		{"Expenses:Food", AccountTypeExpenses},
		{"expense:food", AccountTypeExpenses},
		{"Budget:Food", AccountTypeUnknown},
		{"", AccountTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.account, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAccountType(tt.account))
		})
	}
}

func TestAccountTypeString(t *testing.T) {
	assert.Equal(t, "Assets", AccountTypeAssets.String())
	assert.Equal(t, "Expenses", AccountTypeExpenses.String())
	assert.Equal(t, "Unknown", AccountTypeUnknown.String())
}

func TestAccountPost(t *testing.T) {
	account := newAccount("Assets:Cash")
	assert.Equal(t, AccountTypeAssets, account.Type)

	account.post(ast.NewDate(2012, time.March, 10), ast.Amount{Value: -20, Commodity: "$"})
	account.post(ast.NewDate(2012, time.January, 2), ast.Amount{Value: 100, Commodity: "$"})
	account.post(ast.NewDate(2012, time.June, 1), ast.Amount{Value: 5, Commodity: "€"})

	assert.Equal(t, 3, account.Postings)
	assert.Equal(t, "2012-01-02", account.FirstDate.String())
	assert.Equal(t, "2012-06-01", account.LastDate.String())
	assert.Equal(t, "80 $, 5 €", account.Balance.String())
}
