package ledger

import (
	"fmt"
	"math"

	"github.com/robinvdvleuten/money/ast"
)

// Transaction Validation
//
// Every transaction goes through the same stages before its amounts are
// posted to accounts:
//
//  1. The date lies within years 1 to 9999.
//  2. Every explicit amount is a finite number.
//  3. The postings are balanced: a single missing amount is inferred, and
//     more missing amounts are an error.
//  4. The postings sum to zero in each commodity, within tolerance.
//
// Validation stops at the first stage that fails. It never touches the
// accounts of the ledger.

// validator checks transactions against the tolerance of a ledger.
type validator struct {
	tolerance *ToleranceConfig
}

func newValidator(tolerance *ToleranceConfig) *validator {
	return &validator{tolerance: tolerance}
}

// validateTransaction returns the errors of the first failing stage, if any.
func (v *validator) validateTransaction(txn *ast.Transaction) []error {
	if err := validateDateRange(txn); err != nil {
		return []error{err}
	}

	if errs := v.validateAmounts(txn); len(errs) > 0 {
		return errs
	}

	if err := BalancePostings(txn.Postings, Strict); err != nil {
		return []error{&IncompleteTransactionError{Pos: txn.Pos, Transaction: txn, Err: err}}
	}

	if residuals := residuals(txn, v.tolerance); residuals != nil {
		return []error{NewTransactionNotBalancedError(txn, residuals)}
	}

	return nil
}

// validateDateRange checks that the year of a transaction lies within 1-9999,
// the range dates can be written in.
func validateDateRange(txn *ast.Transaction) error {
	year := txn.Date.Year()
	if year < 1 || year > 9999 {
		return &InvalidDateError{
			Pos:         txn.Pos,
			Transaction: txn,
			Underlying:  fmt.Errorf("year %d is out of range", year),
		}
	}
	return nil
}

// validateAmounts checks that amounts are finite, as infinities and NaN
// cannot be summed.
func (v *validator) validateAmounts(txn *ast.Transaction) []error {
	var errs []error
	for _, posting := range txn.Postings {
		if posting.Amount == nil {
			continue
		}
		value := posting.Amount.Value
		if math.IsInf(value, 0) || math.IsNaN(value) {
			errs = append(errs, &InvalidAmountError{
				Pos:         posting.Pos,
				Transaction: txn,
				Account:     posting.Account,
				Amount:      *posting.Amount,
			})
		}
	}
	return errs
}
