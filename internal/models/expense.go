package models

import "fmt"

// Category classifies an expense for statistics.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryOther         Category = "other"
)

// Categories lists every expense category.
var Categories = []Category{
	CategoryFood, CategoryTransport, CategoryAccommodation,
	CategoryEntertainment, CategoryShopping, CategoryOther,
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported category: %q", s)
}

// Expense represents money one member paid during a trip.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	TripID string

	// ActivityID optionally tags the expense to an activity; empty when untagged.
	ActivityID string

	// PaidBy is the ID of the member who paid.
	PaidBy string

	Description string

	// Amount is in Currency; Amount × ExchangeRate is the value in the trip's
	// base currency.
	Amount       float64
	Currency     Currency
	ExchangeRate float64

	Category Category

	// IsShared expenses are split across all members; personal ones only count
	// toward total spend.
	IsShared bool

	// ExpenseDate is the Unix timestamp the money was spent.
	ExpenseDate int64

	CreatedAt int64
	UpdatedAt int64
}

// ExpenseFilter narrows ListExpenses. Zero values mean "no filter".
type ExpenseFilter struct {
	TripID   string
	Category Category
	PaidBy   string
	// Day restricts to one calendar day (UTC), formatted YYYY-MM-DD.
	Day      string
	IsShared *bool
	Offset   int
	Limit    int
}

// TripSnapshot is a consistent read of everything a settlement report needs.
type TripSnapshot struct {
	Trip     *Trip
	Members  []*Member
	Expenses []*Expense
}
