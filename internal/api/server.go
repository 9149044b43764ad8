// Package api exposes the ledger core over JSON HTTP. The core itself
// defines no wire protocol; this package is the thin transport the hosting
// application mounts.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakshiv-ermaa/splitwise-app/internal/service"
)

// Server holds the services the handlers delegate to.
type Server struct {
	groups   *service.GroupService
	ledger   *service.LedgerService
	balances *service.BalanceService
}

// New creates a Server over the given services.
func New(groups *service.GroupService, ledger *service.LedgerService, balances *service.BalanceService) *Server {
	return &Server{groups: groups, ledger: ledger, balances: balances}
}

// Handler builds the route table with logging, metrics, and CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/groups", s.handleListGroups)
	mux.HandleFunc("GET /api/groups/{id}", s.handleGetGroup)
	mux.HandleFunc("POST /api/groups/{id}/members", s.handleAddMembers)

	mux.HandleFunc("POST /api/groups/{id}/expenses", s.handleAddExpense)
	mux.HandleFunc("POST /api/groups/{id}/payments", s.handleRecordPayment)
	mux.HandleFunc("GET /api/expenses/recent", s.handleRecentExpenses)

	mux.HandleFunc("GET /api/groups/{id}/balances", s.handleGroupBalances)
	mux.HandleFunc("GET /api/groups/{id}/settlement", s.handleGroupSettlement)
	mux.HandleFunc("GET /api/users/{id}/overview", s.handleUserOverview)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return loggingMiddleware(corsMiddleware(mux))
}
