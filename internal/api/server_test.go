package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakshiv-ermaa/splitwise-app/internal/service"
	"github.com/sakshiv-ermaa/splitwise-app/internal/storage/memory"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.New()
	locks := service.NewGroupLocks()
	srv := New(
		service.NewGroupService(store),
		service.NewLedgerService(store, locks),
		service.NewBalanceService(store, locks),
	)

	server := httptest.NewServer(srv.Handler())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response failed: %v", err)
		}
	}
	return resp
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response failed: %v", err)
		}
	}
	return resp
}

func TestGroupExpenseSettlementFlow(t *testing.T) {
	server := setupTestServer(t)

	// Create group.
	var group groupJSON
	resp := postJSON(t, server.URL+"/api/groups", createGroupRequest{
		Name:    "Weekend Trip",
		Members: []string{"Alice", "Bob", "Charlie"},
	}, &group)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create group: status = %d, want 201", resp.StatusCode)
	}
	if group.ID == "" || len(group.Members) != 3 {
		t.Fatalf("unexpected group: %+v", group)
	}
	alice := group.Members[0]
	bob := group.Members[1]
	charlie := group.Members[2]

	// Alice pays 9000 split equally; Bob pays 3000 split equally.
	var expense expenseJSON
	resp = postJSON(t, server.URL+"/api/groups/"+group.ID+"/expenses", addExpenseRequest{
		Description: "Hotel",
		Amount:      9000,
		PayerID:     alice.UserID,
		Split:       splitJSON{Type: "EQUAL"},
	}, &expense)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add expense: status = %d, want 201", resp.StatusCode)
	}
	if len(expense.ParticipantIDs) != 3 {
		t.Errorf("participants = %v, want whole group", expense.ParticipantIDs)
	}
	resp = postJSON(t, server.URL+"/api/groups/"+group.ID+"/expenses", addExpenseRequest{
		Description: "Dinner",
		Amount:      3000,
		PayerID:     bob.UserID,
		Split:       splitJSON{Type: "EQUAL"},
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add expense: status = %d, want 201", resp.StatusCode)
	}

	// Settlement: Charlie pays Alice 5000, then Bob 1000.
	var suggestions []suggestionJSON
	resp = getJSON(t, server.URL+"/api/groups/"+group.ID+"/settlement", &suggestions)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settlement: status = %d, want 200", resp.StatusCode)
	}
	want := []suggestionJSON{
		{FromUserID: charlie.UserID, FromName: "Charlie", ToUserID: alice.UserID, ToName: "Alice", Amount: 5000},
		{FromUserID: charlie.UserID, FromName: "Charlie", ToUserID: bob.UserID, ToName: "Bob", Amount: 1000},
	}
	if len(suggestions) != len(want) {
		t.Fatalf("suggestions = %v, want %v", suggestions, want)
	}
	for i := range want {
		if suggestions[i] != want[i] {
			t.Errorf("suggestion %d = %+v, want %+v", i, suggestions[i], want[i])
		}
	}

	// Balances view exposes both member nets and raw debt edges.
	var balances groupBalancesJSON
	getJSON(t, server.URL+"/api/groups/"+group.ID+"/balances", &balances)
	var sum int64
	for _, m := range balances.Members {
		sum += m.NetBalance
	}
	if sum != 0 {
		t.Errorf("net balances sum to %d, want 0", sum)
	}
	if len(balances.Debts) == 0 {
		t.Error("expected raw debt edges alongside settlement view")
	}

	// Overview for Alice across groups.
	var overview overviewJSON
	getJSON(t, server.URL+"/api/users/"+alice.UserID+"/overview", &overview)
	if overview.NetBalance != 5000 {
		t.Errorf("Alice net = %d, want 5000", overview.NetBalance)
	}

	// Recent expenses, newest first.
	var recent []expenseJSON
	getJSON(t, server.URL+"/api/expenses/recent?limit=1", &recent)
	if len(recent) != 1 {
		t.Fatalf("recent = %v, want 1 entry", recent)
	}
}

func TestValidationErrorsMapToBadRequest(t *testing.T) {
	server := setupTestServer(t)

	// Fewer than two members.
	resp := postJSON(t, server.URL+"/api/groups", createGroupRequest{
		Name:    "Solo",
		Members: []string{"Alice"},
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("one-member group: status = %d, want 400", resp.StatusCode)
	}

	var group groupJSON
	postJSON(t, server.URL+"/api/groups", createGroupRequest{
		Name:    "Pair",
		Members: []string{"Alice", "Bob"},
	}, &group)

	// Percentages that don't reach 100.
	resp = postJSON(t, server.URL+"/api/groups/"+group.ID+"/expenses", addExpenseRequest{
		Description: "Cab",
		Amount:      500,
		PayerID:     group.Members[0].UserID,
		Split: splitJSON{
			Type: "PERCENTAGE",
			Percents: map[string]int64{
				group.Members[0].UserID: 50,
				group.Members[1].UserID: 40,
			},
		},
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad percentages: status = %d, want 400", resp.StatusCode)
	}

	// Unknown group is a 404.
	resp = getJSON(t, server.URL+"/api/groups/nope/settlement", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown group: status = %d, want 404", resp.StatusCode)
	}
}
