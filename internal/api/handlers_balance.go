package api

import (
	"net/http"
)

type memberBalanceJSON struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	NetBalance int64  `json:"net_balance"`
}

type debtEdgeJSON struct {
	FromUserID string `json:"from_user_id"`
	FromName   string `json:"from_name"`
	ToUserID   string `json:"to_user_id"`
	ToName     string `json:"to_name"`
	Amount     int64  `json:"amount"`
}

type groupBalancesJSON struct {
	GroupID string              `json:"group_id"`
	Name    string              `json:"name"`
	Members []memberBalanceJSON `json:"members"`
	Debts   []debtEdgeJSON      `json:"debts"`
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.balances.GroupBalances(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := groupBalancesJSON{GroupID: balances.Group.ID, Name: balances.Group.Name}
	for _, m := range balances.Members {
		out.Members = append(out.Members, memberBalanceJSON{
			UserID:     m.UserID,
			Name:       m.Name,
			NetBalance: m.NetBalance,
		})
	}
	for _, d := range balances.Debts {
		out.Debts = append(out.Debts, debtEdgeJSON(d))
	}
	writeJSON(w, http.StatusOK, out)
}

type suggestionJSON struct {
	FromUserID string `json:"from_user_id"`
	FromName   string `json:"from_name"`
	ToUserID   string `json:"to_user_id"`
	ToName     string `json:"to_name"`
	Amount     int64  `json:"amount"`
}

func (s *Server) handleGroupSettlement(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.balances.GroupSettlement(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]suggestionJSON, 0, len(suggestions))
	for _, sg := range suggestions {
		out = append(out, suggestionJSON(sg))
	}
	writeJSON(w, http.StatusOK, out)
}

type counterpartyJSON struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"` // positive = they owe the user
}

type overviewJSON struct {
	UserID         string             `json:"user_id"`
	UserName       string             `json:"user_name"`
	TotalOwed      int64              `json:"total_owed"`
	TotalOwes      int64              `json:"total_owes"`
	NetBalance     int64              `json:"net_balance"`
	Counterparties []counterpartyJSON `json:"counterparties"`
}

func (s *Server) handleUserOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.balances.UserOverview(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := overviewJSON{
		UserID:     overview.UserID,
		UserName:   overview.UserName,
		TotalOwed:  overview.TotalOwed,
		TotalOwes:  overview.TotalOwes,
		NetBalance: overview.NetBalance,
	}
	for _, c := range overview.Counterparties {
		out.Counterparties = append(out.Counterparties, counterpartyJSON(c))
	}
	writeJSON(w, http.StatusOK, out)
}
