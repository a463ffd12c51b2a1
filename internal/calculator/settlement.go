package calculator

import (
	"math"
	"sort"
)

// SettleEpsilon is the smallest amount that still counts as an open balance.
const SettleEpsilon = 0.01

// Transfer is one directed payment that reduces a debt.
type Transfer struct {
	FromMemberID   string // Person who owes
	FromMemberName string
	ToMemberID     string // Person who is owed
	ToMemberName   string
	Amount         float64
}

// position is a member's outstanding balance while matching.
type position struct {
	id        string
	name      string
	remaining float64
}

// ComputeSettlement returns payments that drive every balance to zero.
//
// Debtors are matched most-negative first against creditors most-positive first,
// each step settling min(debt, credit). Ties keep input order, so the result is
// deterministic for a given balance list. This greedy order keeps the transfer
// count at most (non-zero members - 1) but is not a proven minimum.
func ComputeSettlement(balances []MemberBalance) []Transfer {
	var debtors, creditors []position
	for _, b := range balances {
		switch {
		case b.Balance < 0:
			debtors = append(debtors, position{id: b.MemberID, name: b.MemberName, remaining: b.Balance})
		case b.Balance > 0:
			creditors = append(creditors, position{id: b.MemberID, name: b.MemberName, remaining: b.Balance})
		}
	}

	sort.SliceStable(debtors, func(a, b int) bool {
		return debtors[a].remaining < debtors[b].remaining
	})
	sort.SliceStable(creditors, func(a, b int) bool {
		return creditors[a].remaining > creditors[b].remaining
	})

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := math.Min(-debtor.remaining, creditor.remaining)
		if amount >= SettleEpsilon {
			transfers = append(transfers, Transfer{
				FromMemberID:   debtor.id,
				FromMemberName: debtor.name,
				ToMemberID:     creditor.id,
				ToMemberName:   creditor.name,
				Amount:         amount,
			})
		}

		debtor.remaining += amount
		creditor.remaining -= amount

		if math.Abs(debtor.remaining) < SettleEpsilon {
			i++
		}
		if creditor.remaining < SettleEpsilon {
			j++
		}
	}

	return transfers
}
