package calculator

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// floorTolerance absorbs float noise so 179999.99999999997 floors like 180000.
const floorTolerance = 1e-9

// Rules carries the trip settings the balance formula depends on.
type Rules struct {
	Currency     string
	ChildFactor  float64
	RoundingRule int
}

// Validate reports the first setting that makes the trip impossible to balance.
func (r Rules) Validate() error {
	if r.RoundingRule < 1 {
		return &ConfigError{Field: "rounding_rule", Value: float64(r.RoundingRule), Reason: "must be at least 1"}
	}
	if math.IsNaN(r.ChildFactor) || r.ChildFactor < 0 || r.ChildFactor > 1 {
		return &ConfigError{Field: "child_factor", Value: r.ChildFactor, Reason: "must be between 0 and 1"}
	}
	return nil
}

// MemberShare is the part of a trip member the calculator needs.
type MemberShare struct {
	ID     string
	Name   string
	Factor float64 // weight of the member's share of shared costs
}

// ExpenseEntry is the part of an expense the calculator needs.
type ExpenseEntry struct {
	PaidBy       string
	Amount       float64 // in the expense's own currency
	ExchangeRate float64 // multiplier into the trip's base currency
	IsShared     bool
	Category     string
	Date         time.Time
}

// BaseAmount returns the expense value in the trip's base currency.
func (e ExpenseEntry) BaseAmount() decimal.Decimal {
	return decimal.NewFromFloat(e.Amount).Mul(decimal.NewFromFloat(e.ExchangeRate))
}

// MemberBalance represents the balance information for one trip member.
type MemberBalance struct {
	MemberID   string
	MemberName string
	TotalPaid  float64 // shared expenses this member paid, base currency
	TotalOwed  float64 // this member's weighted share of all shared expenses
	Balance    float64 // Positive = owed money, Negative = owes money
}

// BalanceSheet is the output of ComputeBalances.
type BalanceSheet struct {
	Currency      string
	TotalExpenses float64 // every expense, shared or not
	TotalShared   float64
	Balances      []MemberBalance
}

// ComputeBalances splits the trip's shared expenses across members by factor.
//
// Algorithm:
//   - cost_per_factor = total_shared / Σ factor (0 when Σ factor is 0)
//   - total_owed = cost_per_factor × factor
//   - balance = floor((total_paid - total_owed) / rounding_rule) × rounding_rule
//
// Flooring moves every balance toward negative infinity, so with a rounding rule
// above 1 the balances may not sum to exactly zero. The residual is left as is.
// Balances are returned in member order.
func ComputeBalances(rules Rules, members []MemberShare, expenses []ExpenseEntry) (*BalanceSheet, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	for _, m := range members {
		if math.IsNaN(m.Factor) || m.Factor < 0 {
			return nil, &ConfigError{
				Field:  fmt.Sprintf("members[%s].factor", m.ID),
				Value:  m.Factor,
				Reason: "must not be negative",
			}
		}
	}

	sheet := &BalanceSheet{
		Currency: rules.Currency,
		Balances: []MemberBalance{},
	}
	if len(members) == 0 {
		return sheet, nil
	}

	var totalAll, totalShared decimal.Decimal
	paid := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		amount := e.BaseAmount()
		totalAll = totalAll.Add(amount)
		if !e.IsShared {
			continue
		}
		totalShared = totalShared.Add(amount)
		paid[e.PaidBy] = paid[e.PaidBy].Add(amount)
	}
	sheet.TotalExpenses = totalAll.InexactFloat64()
	sheet.TotalShared = totalShared.InexactFloat64()

	var totalFactor float64
	for _, m := range members {
		totalFactor += m.Factor
	}

	var costPerFactor float64
	if totalFactor > 0 {
		costPerFactor = sheet.TotalShared / totalFactor
	}

	unit := float64(rules.RoundingRule)
	for _, m := range members {
		totalPaid := paid[m.ID].InexactFloat64()
		totalOwed := costPerFactor * m.Factor
		sheet.Balances = append(sheet.Balances, MemberBalance{
			MemberID:   m.ID,
			MemberName: m.Name,
			TotalPaid:  totalPaid,
			TotalOwed:  totalOwed,
			Balance:    floorTo(totalPaid-totalOwed, unit),
		})
	}

	return sheet, nil
}

// floorTo floors x to a multiple of unit, never returning negative zero.
func floorTo(x, unit float64) float64 {
	v := math.Floor(x/unit+floorTolerance) * unit
	if v == 0 {
		return 0
	}
	return v
}
