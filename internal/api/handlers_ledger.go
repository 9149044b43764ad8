package api

import (
	"net/http"
	"strconv"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
)

type splitJSON struct {
	Type     string           `json:"type"`
	Percents map[string]int64 `json:"percents,omitempty"`
}

type expenseJSON struct {
	ID             string    `json:"id"`
	GroupID        string    `json:"group_id"`
	Description    string    `json:"description"`
	Amount         int64     `json:"amount"`
	PayerID        string    `json:"payer_id"`
	Split          splitJSON `json:"split"`
	ParticipantIDs []string  `json:"participant_ids"`
	CreatedAt      int64     `json:"created_at"`
}

func toExpenseJSON(e *models.Expense) expenseJSON {
	return expenseJSON{
		ID:             e.ID,
		GroupID:        e.GroupID,
		Description:    e.Description,
		Amount:         e.Amount,
		PayerID:        e.PayerID,
		Split:          splitJSON{Type: string(e.Split.Type), Percents: e.Split.Percents},
		ParticipantIDs: e.ParticipantIDs,
		CreatedAt:      e.CreatedAt,
	}
}

type addExpenseRequest struct {
	Description  string    `json:"description"`
	Amount       int64     `json:"amount"` // minor currency units
	PayerID      string    `json:"payer_id"`
	Split        splitJSON `json:"split"`
	Participants []string  `json:"participants,omitempty"` // empty = whole group
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rule := models.SplitRule{Type: models.SplitType(req.Split.Type), Percents: req.Split.Percents}
	expense, err := s.ledger.AddExpense(r.Context(), r.PathValue("id"),
		req.Description, req.Amount, req.PayerID, rule, req.Participants)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseJSON(expense))
}

type paymentJSON struct {
	ID         string `json:"id"`
	GroupID    string `json:"group_id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     int64  `json:"amount"`
	Note       string `json:"note,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

type recordPaymentRequest struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     int64  `json:"amount"`
	Note       string `json:"note,omitempty"`
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	payment, err := s.ledger.RecordPayment(r.Context(), r.PathValue("id"),
		req.FromUserID, req.ToUserID, req.Amount, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, paymentJSON{
		ID:         payment.ID,
		GroupID:    payment.GroupID,
		FromUserID: payment.FromUserID,
		ToUserID:   payment.ToUserID,
		Amount:     payment.Amount,
		Note:       payment.Note,
		CreatedAt:  payment.CreatedAt,
	})
}

func (s *Server) handleRecentExpenses(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	expenses, err := s.ledger.RecentExpenses(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseJSON(e))
	}
	writeJSON(w, http.StatusOK, out)
}
