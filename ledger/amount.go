package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/money/ast"
)

// defaultTolerance is the residual below which a transaction counts as balanced.
var defaultTolerance = decimal.New(5, -3)

// ToDecimal converts the value of an amount to a decimal, using the shortest
// representation of the float so that 20.1 stays 20.1.
func ToDecimal(amount ast.Amount) decimal.Decimal {
	return decimal.NewFromFloat(amount.Value)
}

// ToleranceConfig holds the residual tolerated per commodity when checking
// that a transaction balances.
type ToleranceConfig struct {
	// defaults maps commodity to tolerance ("*" applies to every commodity)
	defaults map[ast.Commodity]decimal.Decimal
}

// NewToleranceConfig creates a configuration tolerating 0.005 in every commodity.
func NewToleranceConfig() *ToleranceConfig {
	return &ToleranceConfig{
		defaults: map[ast.Commodity]decimal.Decimal{
			"*": defaultTolerance,
		},
	}
}

// ParseToleranceConfig creates a ToleranceConfig from "COMMODITY:TOLERANCE"
// specs, such as "$:0.01" or "*:0.005".
func ParseToleranceConfig(specs []string) (*ToleranceConfig, error) {
	config := NewToleranceConfig()

	for _, spec := range specs {
		i := strings.LastIndexByte(spec, ':')
		if i < 0 {
			return nil, fmt.Errorf("invalid tolerance %q, expected COMMODITY:TOLERANCE", spec)
		}

		commodity := strings.TrimSpace(spec[:i])
		if commodity == "" {
			return nil, fmt.Errorf("invalid tolerance %q, missing commodity", spec)
		}

		tolerance, err := decimal.NewFromString(strings.TrimSpace(spec[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid tolerance value in %q: %w", spec, err)
		}
		if tolerance.IsNegative() {
			return nil, fmt.Errorf("invalid tolerance value in %q: must not be negative", spec)
		}

		config.defaults[ast.Commodity(commodity)] = tolerance
	}

	return config, nil
}

// GetDefaultTolerance returns the tolerance for a commodity.
// Checks the commodity-specific tolerance first, then wildcard "*".
func (c *ToleranceConfig) GetDefaultTolerance(commodity ast.Commodity) decimal.Decimal {
	if c == nil {
		return defaultTolerance
	}

	if tolerance, ok := c.defaults[commodity]; ok {
		return tolerance
	}

	if tolerance, ok := c.defaults["*"]; ok {
		return tolerance
	}

	return defaultTolerance
}

// AmountEqual checks if two amounts are equal within tolerance
func AmountEqual(a, b decimal.Decimal, tolerance decimal.Decimal) bool {
	diff := a.Sub(b).Abs()
	return diff.LessThanOrEqual(tolerance)
}
