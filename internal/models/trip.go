package models

import "fmt"

// Currency is an ISO-4217 code the application supports.
type Currency string

const (
	CurrencyVND Currency = "VND"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyJPY Currency = "JPY"
)

// Currencies lists every supported currency.
var Currencies = []Currency{CurrencyVND, CurrencyUSD, CurrencyEUR, CurrencyJPY}

// ParseCurrency validates a currency code.
func ParseCurrency(s string) (Currency, error) {
	for _, c := range Currencies {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported currency: %q", s)
}

// Trip defaults.
const (
	DefaultCurrency     = CurrencyVND
	DefaultChildFactor  = 0.5
	DefaultRoundingRule = 1000
	DefaultAdultFactor  = 1.0
)

// Trip represents a group event whose expenses are shared.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Da Lat 2025").
	Name string

	Destination       string
	DepartureLocation string

	// StartDate and EndDate are Unix timestamps, 0 when not planned yet.
	StartDate int64
	EndDate   int64

	// Currency is the base currency every expense is converted into.
	Currency Currency

	// ChildFactor is the default cost weight for child members, in [0,1].
	ChildFactor float64

	// RoundingRule is the unit balances are floored to, at least 1.
	RoundingRule int

	// InviteCode is the unique 8-character code others use to join the trip.
	InviteCode string

	CreatedAt int64
	UpdatedAt int64
}

// DefaultFactor returns the factor a member gets when none is given explicitly.
func (t *Trip) DefaultFactor(isChild bool) float64 {
	if isChild {
		return t.ChildFactor
	}
	return DefaultAdultFactor
}
