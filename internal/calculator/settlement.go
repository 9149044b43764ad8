package calculator

// Transaction is a single suggested payment that reduces outstanding group
// debt. Transactions are derived fresh for every query and never persisted.
type Transaction struct {
	FromUserID string
	ToUserID   string
	Amount     int64
}

// Simplify reduces net positions to an ordered list of payments that
// settles the whole group. Each round pairs the creditor with the largest
// outstanding credit against the debtor with the largest outstanding debt
// (ties broken by user ID) and settles min(credit, debt).
//
// This is the standard greedy approximation used by expense splitters. It
// emits at most members-1 transactions and fully zeroes every net position,
// but the true minimum transaction count is combinatorially hard and is not
// guaranteed here.
func Simplify(net map[string]int64) []Transaction {
	credits := make(map[string]int64)
	debts := make(map[string]int64)
	for userID, n := range net {
		switch {
		case n > 0:
			credits[userID] = n
		case n < 0:
			debts[userID] = -n
		}
	}

	var txns []Transaction
	for len(credits) > 0 && len(debts) > 0 {
		creditor := largest(credits)
		debtor := largest(debts)

		settle := min(credits[creditor], debts[debtor])
		txns = append(txns, Transaction{
			FromUserID: debtor,
			ToUserID:   creditor,
			Amount:     settle,
		})

		credits[creditor] -= settle
		if credits[creditor] == 0 {
			delete(credits, creditor)
		}
		debts[debtor] -= settle
		if debts[debtor] == 0 {
			delete(debts, debtor)
		}
	}
	return txns
}

// largest returns the key holding the greatest amount, ties broken by the
// lexicographically smaller ID so output is deterministic.
func largest(m map[string]int64) string {
	var best string
	bestAmt := int64(-1)
	for id, amt := range m {
		if amt > bestAmt || (amt == bestAmt && id < best) {
			best, bestAmt = id, amt
		}
	}
	return best
}
