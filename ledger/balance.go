package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/money/ast"
)

// Balance represents the balance of an account across one or more commodities.
// It stores amounts in a sorted slice for deterministic iteration and display.
type Balance struct {
	entries []*CommodityAmount
}

// CommodityAmount represents an amount in a specific commodity.
type CommodityAmount struct {
	Commodity ast.Commodity
	Amount    decimal.Decimal
}

// NewBalance creates an empty balance.
func NewBalance() *Balance {
	return &Balance{entries: []*CommodityAmount{}}
}

func compareEntries(a, b *CommodityAmount) int {
	return strings.Compare(string(a.Commodity), string(b.Commodity))
}

// Get returns the amount for a specific commodity, or zero if not found.
func (b *Balance) Get(commodity ast.Commodity) decimal.Decimal {
	for _, e := range b.entries {
		if e.Commodity == commodity {
			return e.Amount
		}
	}
	return decimal.Zero
}

// Add adds an amount to the balance of a commodity.
func (b *Balance) Add(commodity ast.Commodity, amount decimal.Decimal) {
	for _, e := range b.entries {
		if e.Commodity == commodity {
			e.Amount = e.Amount.Add(amount)
			return
		}
	}

	b.entries = append(b.entries, &CommodityAmount{Commodity: commodity, Amount: amount})
	slices.SortFunc(b.entries, compareEntries)
}

// IsZero returns true if all amounts are zero or balance is empty.
func (b *Balance) IsZero() bool {
	for _, e := range b.entries {
		if !e.Amount.IsZero() {
			return false
		}
	}
	return true
}

// Commodities returns a sorted list of all commodities in this balance.
func (b *Balance) Commodities() []ast.Commodity {
	commodities := make([]ast.Commodity, len(b.entries))
	for i, e := range b.entries {
		commodities[i] = e.Commodity
	}
	return commodities
}

// Entries returns the underlying sorted list of commodity amounts.
func (b *Balance) Entries() []*CommodityAmount {
	return b.entries
}

// String returns a human-readable representation of the balance.
func (b *Balance) String() string {
	if len(b.entries) == 0 {
		return "(empty)"
	}

	parts := make([]string, len(b.entries))
	for i, e := range b.entries {
		parts[i] = e.Amount.String() + " " + string(e.Commodity)
	}
	return strings.Join(parts, ", ")
}

// Merge combines another balance into this one by adding amounts.
func (b *Balance) Merge(other *Balance) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		b.Add(e.Commodity, e.Amount)
	}
}

// BalanceTree is a hierarchical view of account balances, following the
// colon-separated segments of account names. Balances are aggregated bottom-up
// so parent nodes include the sum of all their descendants.
type BalanceTree struct {
	// Roots holds the nodes of the first account segments ("Assets", "Expenses").
	Roots []*BalanceNode

	// Commodities lists all commodities present in the tree, sorted.
	Commodities []ast.Commodity
}

// BalanceNode represents a single account segment in the balance tree.
type BalanceNode struct {
	// Name is the last segment of the account path, like "Cash".
	Name string

	// Account is the full account path, like "Assets:Cash".
	Account string

	// Depth indicates the nesting level (0 for roots).
	Depth int

	// Balance is the aggregated balance of this node and all descendants.
	Balance *Balance

	// Children contains direct child nodes, sorted by name.
	Children []*BalanceNode
}

// NewBalanceTree builds the tree of the given account balances.
func NewBalanceTree(accounts []*Account) *BalanceTree {
	tree := &BalanceTree{}
	nodes := make(map[string]*BalanceNode)
	commodities := make(map[ast.Commodity]bool)

	for _, account := range accounts {
		segments := strings.Split(account.Name, ":")
		var parent *BalanceNode
		for depth := range segments {
			path := strings.Join(segments[:depth+1], ":")
			node, ok := nodes[path]
			if !ok {
				node = &BalanceNode{
					Name:    segments[depth],
					Account: path,
					Depth:   depth,
					Balance: NewBalance(),
				}
				nodes[path] = node
				if parent == nil {
					tree.Roots = append(tree.Roots, node)
				} else {
					parent.Children = append(parent.Children, node)
				}
			}
			node.Balance.Merge(account.Balance)
			parent = node
		}
		for _, commodity := range account.Balance.Commodities() {
			commodities[commodity] = true
		}
	}

	sortNodes(tree.Roots)
	for commodity := range commodities {
		tree.Commodities = append(tree.Commodities, commodity)
	}
	slices.Sort(tree.Commodities)

	return tree
}

func sortNodes(nodes []*BalanceNode) {
	slices.SortFunc(nodes, func(a, b *BalanceNode) int {
		return strings.Compare(a.Name, b.Name)
	})
	for _, node := range nodes {
		sortNodes(node.Children)
	}
}

// Walk calls fn for every node in depth-first order.
func (t *BalanceTree) Walk(fn func(node *BalanceNode)) {
	var walk func(nodes []*BalanceNode)
	walk = func(nodes []*BalanceNode) {
		for _, node := range nodes {
			fn(node)
			walk(node.Children)
		}
	}
	walk(t.Roots)
}
