package web

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/money/ledger"
)

// BalancesResponse is the JSON response structure for the balances endpoint.
type BalancesResponse struct {
	Roots       []*BalanceNodeResponse `json:"roots"`
	Commodities []string               `json:"commodities"`
}

// BalanceNodeResponse represents a node in the balance tree for JSON serialization.
type BalanceNodeResponse struct {
	Name     string                     `json:"name"`
	Account  string                     `json:"account"`
	Depth    int                        `json:"depth"`
	Balance  map[string]decimal.Decimal `json:"balance"`
	Children []*BalanceNodeResponse     `json:"children,omitempty"`
}

// handleGetBalances handles GET requests to /api/balances.
//
// Query parameters:
//   - types: Comma-separated account types (Assets,Liabilities,Equity,Income,Expenses).
//     If omitted, returns all accounts (trial balance).
//
// Examples:
//   - GET /api/balances - Trial balance
//   - GET /api/balances?types=Income,Expenses - Income statement
func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	var types map[ledger.AccountType]bool
	if typesParam := r.URL.Query().Get("types"); typesParam != "" {
		types = make(map[ledger.AccountType]bool)
		for _, t := range strings.Split(typesParam, ",") {
			accountType := ledger.ParseAccountType(strings.TrimSpace(t))
			if accountType == ledger.AccountTypeUnknown {
				http.Error(w, "invalid account type: "+t, http.StatusBadRequest)
				return
			}
			types[accountType] = true
		}
	}

	tree := s.current().ledger.BalanceTree()

	response := &BalancesResponse{
		Roots:       make([]*BalanceNodeResponse, 0, len(tree.Roots)),
		Commodities: make([]string, len(tree.Commodities)),
	}
	for i, commodity := range tree.Commodities {
		response.Commodities[i] = string(commodity)
	}
	for _, root := range tree.Roots {
		if types != nil && !types[ledger.ParseAccountType(root.Name)] {
			continue
		}
		response.Roots = append(response.Roots, convertBalanceNode(root))
	}

	writeJSONResponse(w, response)
}

// convertBalanceNode recursively converts a ledger.BalanceNode to a BalanceNodeResponse.
func convertBalanceNode(node *ledger.BalanceNode) *BalanceNodeResponse {
	var children []*BalanceNodeResponse
	if len(node.Children) > 0 {
		children = make([]*BalanceNodeResponse, len(node.Children))
		for i, child := range node.Children {
			children[i] = convertBalanceNode(child)
		}
	}

	balance := make(map[string]decimal.Decimal, len(node.Balance.Entries()))
	for _, entry := range node.Balance.Entries() {
		balance[string(entry.Commodity)] = entry.Amount
	}

	return &BalanceNodeResponse{
		Name:     node.Name,
		Account:  node.Account,
		Depth:    node.Depth,
		Balance:  balance,
		Children: children,
	}
}
