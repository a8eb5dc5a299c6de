package ledger

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/money/ast"
)

// balanceMapPool provides the per-transaction maps used to sum postings.
var balanceMapPool = sync.Pool{
	New: func() any {
		return make(map[ast.Commodity]decimal.Decimal, 4) // most transactions use one or two commodities
	},
}

func getBalanceMap() map[ast.Commodity]decimal.Decimal {
	return balanceMapPool.Get().(map[ast.Commodity]decimal.Decimal)
}

// putBalanceMap clears and returns a balance map to the pool
func putBalanceMap(m map[ast.Commodity]decimal.Decimal) {
	clear(m)
	balanceMapPool.Put(m)
}
