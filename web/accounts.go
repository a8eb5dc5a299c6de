package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/money/ledger"
)

// AccountInfo represents basic information about a ledger account.
type AccountInfo struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Postings  int    `json:"postings"`
	FirstDate string `json:"firstDate"`
	LastDate  string `json:"lastDate"`
}

// AccountsResponse is the JSON response structure for the accounts endpoint.
type AccountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

// AccountResponse describes a single account with its balance per commodity.
type AccountResponse struct {
	AccountInfo
	Balance map[string]decimal.Decimal `json:"balance"`
}

func accountInfo(account *ledger.Account) AccountInfo {
	return AccountInfo{
		Name:      account.Name,
		Type:      account.Type.String(),
		Postings:  account.Postings,
		FirstDate: account.FirstDate.String(),
		LastDate:  account.LastDate.String(),
	}
}

// handleGetAccounts handles GET requests to /api/accounts.
// Returns all accounts from the ledger, sorted alphabetically by name.
func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.current().ledger.Accounts()

	response := &AccountsResponse{Accounts: make([]AccountInfo, 0, len(accounts))}
	for _, account := range accounts {
		response.Accounts = append(response.Accounts, accountInfo(account))
	}

	writeJSONResponse(w, response)
}

// handleGetAccount handles GET requests to /api/accounts/{account}.
func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "account")

	account, ok := s.current().ledger.GetAccount(name)
	if !ok {
		http.Error(w, "unknown account: "+name, http.StatusNotFound)
		return
	}

	response := &AccountResponse{
		AccountInfo: accountInfo(account),
		Balance:     make(map[string]decimal.Decimal),
	}
	for _, entry := range account.Balance.Entries() {
		response.Balance[string(entry.Commodity)] = entry.Amount
	}

	writeJSONResponse(w, response)
}
