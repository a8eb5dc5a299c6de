package ledger

import (
	"strings"

	"github.com/robinvdvleuten/money/ast"
)

// AccountType is the kind of account, derived from the first segment of its name.
type AccountType int

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeAssets
	AccountTypeLiabilities
	AccountTypeEquity
	AccountTypeIncome
	AccountTypeExpenses
)

// String returns the string representation of the account type
func (t AccountType) String() string {
	switch t {
	case AccountTypeAssets:
		return "Assets"
	case AccountTypeLiabilities:
		return "Liabilities"
	case AccountTypeEquity:
		return "Equity"
	case AccountTypeIncome:
		return "Income"
	case AccountTypeExpenses:
		return "Expenses"
	default:
		return "Unknown"
	}
}

// Account holds what the ledger learned about one account.
type Account struct {
	Name      string
	Type      AccountType
	FirstDate ast.Date // Date of the first transaction posting to the account
	LastDate  ast.Date // Date of the latest transaction posting to the account
	Postings  int
	Balance   *Balance
}

func newAccount(name string) *Account {
	return &Account{
		Name:    name,
		Type:    ParseAccountType(name),
		Balance: NewBalance(),
	}
}

// post records a posting made on date.
func (a *Account) post(date ast.Date, amount ast.Amount) {
	if a.Postings == 0 || date.Before(a.FirstDate.Time) {
		a.FirstDate = date
	}
	if a.Postings == 0 || date.After(a.LastDate.Time) {
		a.LastDate = date
	}
	a.Postings++
	a.Balance.Add(amount.Commodity, ToDecimal(amount))
}

// ParseAccountType parses the account type from the account name. Both
// "Expenses" and the singular "Expense" are recognized, case-insensitively.
func ParseAccountType(account string) AccountType {
	root, _, _ := strings.Cut(account, ":")

	switch strings.ToLower(root) {
	case "assets", "asset":
		return AccountTypeAssets
	case "liabilities", "liability":
		return AccountTypeLiabilities
	case "equity":
		return AccountTypeEquity
	case "income", "revenue", "revenues":
		return AccountTypeIncome
	case "expenses", "expense":
		return AccountTypeExpenses
	default:
		return AccountTypeUnknown
	}
}
