package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/money/ast"
)

// Policy decides what happens to a postings list whose missing amount cannot
// be inferred.
type Policy uint8

const (
	// Strict rejects a list with more than one missing amount, or with one
	// missing amount and no single commodity to infer it in.
	Strict Policy = iota
	// Lenient leaves such a list exactly as parsed.
	Lenient
)

var policyNames = map[Policy]string{
	Strict:  "strict",
	Lenient: "lenient",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy returns the policy with the given name.
func ParsePolicy(name string) (Policy, error) {
	for policy, n := range policyNames {
		if strings.EqualFold(n, name) {
			return policy, nil
		}
	}
	return Strict, fmt.Errorf("unknown balance policy %q", name)
}

// BalancePostings fills in the amount of the single posting that left it out,
// so that the postings sum to zero in their commodity. The explicit amounts are
// summed in order; the commodity of the first one is the dominant commodity.
//
// The amount is only inferred when exactly one posting is missing it and every
// explicit amount is in the dominant commodity, and only when the result fits
// a float64. In every other case with missing amounts, Strict returns an
// *IncompletePostingsError and Lenient leaves the postings untouched. Lists without missing amounts are returned as
// is; whether they actually balance is checked by Ledger.Process.
func BalancePostings(postings []*ast.Posting, policy Policy) error {
	var (
		missing   []*ast.Posting
		dominant  ast.Commodity
		found     bool
		sameUnits = true
		total     = decimal.Zero
	)

	for _, posting := range postings {
		if posting.Amount == nil {
			missing = append(missing, posting)
			continue
		}
		if !found {
			dominant = posting.Amount.Commodity
			found = true
		} else if posting.Amount.Commodity != dominant {
			sameUnits = false
		}
		total = total.Add(ToDecimal(*posting.Amount))
	}

	if len(missing) == 0 {
		return nil
	}

	if len(missing) == 1 && found && sameUnits {
		value, _ := total.Neg().Float64()
		if !math.IsInf(value, 0) {
			missing[0].Amount = &ast.Amount{Value: value, Commodity: dominant}
			missing[0].Inferred = true
			return nil
		}
	}

	if policy == Lenient {
		return nil
	}

	err := &IncompletePostingsError{Missing: len(missing)}
	switch {
	case len(missing) == 1 && found && sameUnits:
		err.Reason = AmountOverflow
	case len(missing) > 1:
		err.Reason = MultipleMissingAmounts
	case !found:
		err.Reason = NoCommodity
	default:
		err.Reason = MixedCommodities
		err.Commodities = commoditiesOf(postings)
	}
	return err
}

// commoditiesOf returns the distinct commodities of the explicit amounts in order.
func commoditiesOf(postings []*ast.Posting) []ast.Commodity {
	var commodities []ast.Commodity
	seen := make(map[ast.Commodity]bool)
	for _, posting := range postings {
		if posting.Amount == nil || seen[posting.Amount.Commodity] {
			continue
		}
		seen[posting.Amount.Commodity] = true
		commodities = append(commodities, posting.Amount.Commodity)
	}
	return commodities
}
