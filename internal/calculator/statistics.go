package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DayLayout is the calendar-date format used for per-day totals.
const DayLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// CategoryTotal is the shared spend in one expense category.
type CategoryTotal struct {
	Category   string
	Amount     float64
	Percentage float64 // share of all shared spend, rounded to 2 places
}

// DayTotal is the shared spend on one calendar day.
type DayTotal struct {
	Date   string // YYYY-MM-DD
	Amount float64
}

// MemberTotal is the shared spend one member paid for.
type MemberTotal struct {
	MemberID   string
	MemberName string
	Amount     float64
}

// Statistics groups shared spend three independent ways.
type Statistics struct {
	TotalShared float64
	ByCategory  []CategoryTotal
	ByDay       []DayTotal
	ByMember    []MemberTotal
}

// ComputeStatistics aggregates shared expenses by category, by day and by payer.
// Non-shared expenses are ignored. Categories are ordered by amount (largest first),
// days ascending, members in the order given, followed by any payer not in members.
// Days are taken from each expense date in its own location.
func ComputeStatistics(members []MemberShare, expenses []ExpenseEntry) *Statistics {
	var total decimal.Decimal
	byCategory := make(map[string]decimal.Decimal)
	byDay := make(map[string]decimal.Decimal)
	byMember := make(map[string]decimal.Decimal)
	var payers []string

	for _, e := range expenses {
		if !e.IsShared {
			continue
		}
		amount := e.BaseAmount()
		total = total.Add(amount)
		byCategory[e.Category] = byCategory[e.Category].Add(amount)
		day := e.Date.Format(DayLayout)
		byDay[day] = byDay[day].Add(amount)
		if _, seen := byMember[e.PaidBy]; !seen {
			payers = append(payers, e.PaidBy)
		}
		byMember[e.PaidBy] = byMember[e.PaidBy].Add(amount)
	}

	stats := &Statistics{
		TotalShared: total.InexactFloat64(),
		ByCategory:  []CategoryTotal{},
		ByDay:       []DayTotal{},
		ByMember:    []MemberTotal{},
	}

	for category, amount := range byCategory {
		stats.ByCategory = append(stats.ByCategory, CategoryTotal{
			Category:   category,
			Amount:     amount.InexactFloat64(),
			Percentage: percentage(amount, total),
		})
	}
	sort.Slice(stats.ByCategory, func(a, b int) bool {
		ca, cb := stats.ByCategory[a], stats.ByCategory[b]
		if ca.Amount != cb.Amount {
			return ca.Amount > cb.Amount
		}
		return ca.Category < cb.Category
	})

	for day, amount := range byDay {
		stats.ByDay = append(stats.ByDay, DayTotal{Date: day, Amount: amount.InexactFloat64()})
	}
	sort.Slice(stats.ByDay, func(a, b int) bool {
		return stats.ByDay[a].Date < stats.ByDay[b].Date
	})

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
		if amount, ok := byMember[m.ID]; ok {
			stats.ByMember = append(stats.ByMember, MemberTotal{
				MemberID:   m.ID,
				MemberName: m.Name,
				Amount:     amount.InexactFloat64(),
			})
		}
	}
	for _, id := range payers {
		if _, known := names[id]; known {
			continue
		}
		stats.ByMember = append(stats.ByMember, MemberTotal{
			MemberID: id,
			Amount:   byMember[id].InexactFloat64(),
		})
	}

	return stats
}

// percentage returns part/total×100 rounded to 2 places, or 0 for an empty total.
func percentage(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(hundred).Round(2).InexactFloat64()
}
