package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/money/ast"
)

// IncompleteReason tells why the missing amount of a postings list could not
// be inferred.
type IncompleteReason uint8

const (
	// MultipleMissingAmounts means more than one posting left out its amount.
	MultipleMissingAmounts IncompleteReason = iota + 1
	// NoCommodity means no posting carried an amount to infer a commodity from.
	NoCommodity
	// MixedCommodities means the explicit amounts use different commodities.
	MixedCommodities
	// AmountOverflow means the inferred amount is too large to represent.
	AmountOverflow
)

// IncompletePostingsError is returned by BalancePostings under the Strict policy.
type IncompletePostingsError struct {
	Reason      IncompleteReason
	Missing     int             // Number of postings without an amount
	Commodities []ast.Commodity // Commodities involved, for MixedCommodities
}

func (e *IncompletePostingsError) Error() string {
	switch e.Reason {
	case MultipleMissingAmounts:
		return fmt.Sprintf("%d postings are missing an amount, at most one can be inferred", e.Missing)
	case NoCommodity:
		return "no posting has an amount to infer the missing one from"
	case MixedCommodities:
		names := make([]string, len(e.Commodities))
		for i, c := range e.Commodities {
			names[i] = string(c)
		}
		return fmt.Sprintf("cannot infer the missing amount from mixed commodities (%s)", strings.Join(names, ", "))
	case AmountOverflow:
		return "the inferred amount is out of range"
	}
	return "postings list is incomplete"
}

// TransactionNotBalancedError is returned when the postings of a transaction
// do not sum to zero in every commodity.
type TransactionNotBalancedError struct {
	Pos         ast.Position
	Date        ast.Date
	Payee       string
	Residuals   map[ast.Commodity]decimal.Decimal // Commodity -> amount left over
	Transaction *ast.Transaction
}

func NewTransactionNotBalancedError(txn *ast.Transaction, residuals map[ast.Commodity]decimal.Decimal) *TransactionNotBalancedError {
	return &TransactionNotBalancedError{
		Pos:         txn.Pos,
		Date:        txn.Date,
		Payee:       txn.Payee,
		Residuals:   residuals,
		Transaction: txn,
	}
}

func (e *TransactionNotBalancedError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = e.Date.String()
	}

	return fmt.Sprintf("%s: Transaction does not balance: %s", location, e.formatResiduals())
}

// formatResiduals formats the residual amounts ordered by commodity.
func (e *TransactionNotBalancedError) formatResiduals() string {
	commodities := maps.Keys(e.Residuals)
	slices.Sort(commodities)

	var buf strings.Builder
	buf.WriteByte('(')
	for i, commodity := range commodities {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(e.Residuals[commodity].String())
		buf.WriteByte(' ')
		buf.WriteString(string(commodity))
	}
	buf.WriteByte(')')

	return buf.String()
}

func (e *TransactionNotBalancedError) GetPosition() ast.Position {
	return e.Pos
}

func (e *TransactionNotBalancedError) GetTransaction() *ast.Transaction {
	return e.Transaction
}

// ValidationErrors wraps multiple validation errors
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// Unwrap returns the underlying errors for error unwrapping
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

// IncompleteTransactionError is returned by Process for a transaction whose
// missing amounts cannot be inferred, such as one parsed under the Lenient
// policy.
type IncompleteTransactionError struct {
	Pos         ast.Position
	Transaction *ast.Transaction
	Err         error
}

func (e *IncompleteTransactionError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = e.Transaction.Date.String()
	}
	return fmt.Sprintf("%s: Transaction is incomplete: %v", location, e.Err)
}

func (e *IncompleteTransactionError) GetPosition() ast.Position {
	return e.Pos
}

func (e *IncompleteTransactionError) GetTransaction() *ast.Transaction {
	return e.Transaction
}

func (e *IncompleteTransactionError) Unwrap() error {
	return e.Err
}

// InvalidDateError is returned for a transaction dated outside years 1-9999.
type InvalidDateError struct {
	Pos         ast.Position
	Transaction *ast.Transaction
	Underlying  error
}

func (e *InvalidDateError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d", e.Pos.Line)
	}
	return fmt.Sprintf("%s: Invalid date: %v", location, e.Underlying)
}

func (e *InvalidDateError) GetPosition() ast.Position {
	return e.Pos
}

func (e *InvalidDateError) GetTransaction() *ast.Transaction {
	return e.Transaction
}

func (e *InvalidDateError) Unwrap() error {
	return e.Underlying
}

// InvalidAmountError is returned for an amount that is infinite or not a number.
type InvalidAmountError struct {
	Pos         ast.Position
	Transaction *ast.Transaction
	Account     string
	Amount      ast.Amount
}

func (e *InvalidAmountError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = e.Transaction.Date.String()
	}
	return fmt.Sprintf("%s: Invalid amount %v %s for account %s", location, e.Amount.Value, e.Amount.Commodity, e.Account)
}

func (e *InvalidAmountError) GetPosition() ast.Position {
	return e.Pos
}

func (e *InvalidAmountError) GetTransaction() *ast.Transaction {
	return e.Transaction
}
