package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/money/ast"
)

// residuals sums the amounts of a transaction per commodity and returns the
// sums that exceed the tolerance. Postings still without an amount contribute
// nothing. The result is nil when the transaction balances.
//
// Exactly two commodities left over with opposite signs are a conversion at
// an implied price, such as buying 40 Stocks for $400, and also balance.
func residuals(txn *ast.Transaction, tolerance *ToleranceConfig) map[ast.Commodity]decimal.Decimal {
	sums := getBalanceMap()
	defer putBalanceMap(sums)

	for _, posting := range txn.Postings {
		if posting.Amount == nil {
			continue
		}
		commodity := posting.Amount.Commodity
		sums[commodity] = sums[commodity].Add(ToDecimal(*posting.Amount))
	}

	var result map[ast.Commodity]decimal.Decimal
	for commodity, sum := range sums {
		if AmountEqual(sum, decimal.Zero, tolerance.GetDefaultTolerance(commodity)) {
			continue
		}
		if result == nil {
			result = make(map[ast.Commodity]decimal.Decimal)
		}
		result[commodity] = sum
	}

	if isConversion(result) {
		return nil
	}
	return result
}

func isConversion(sums map[ast.Commodity]decimal.Decimal) bool {
	if len(sums) != 2 {
		return false
	}
	sign := 1
	for _, sum := range sums {
		sign *= sum.Sign()
	}
	return sign < 0
}
