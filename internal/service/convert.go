package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

const (
	maxTextLength    = 255
	defaultPageLimit = 100
)

// toConnectError maps storage and calculator errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, calculator.ErrInvalidConfiguration):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// requireID rejects empty identifiers before they reach the store.
func requireID(field, value string) error {
	if value == "" {
		return invalidArgument("%s required", field)
	}
	return nil
}

// cleanText trims value and checks it holds 1 to 255 characters.
func cleanText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if n := utf8.RuneCountInString(value); n == 0 || n > maxTextLength {
		return "", invalidArgument("%s must be between 1 and %d characters", field, maxTextLength)
	}
	return value, nil
}

// checkTimeRange rejects an end before the start when both are set.
func checkTimeRange(field string, start, end int64) error {
	if start != 0 && end != 0 && end < start {
		return invalidArgument("%s ends before it starts", field)
	}
	return nil
}

// checkDay validates an optional YYYY-MM-DD filter.
func checkDay(day string) error {
	if day == "" {
		return nil
	}
	if _, err := time.Parse(calculator.DayLayout, day); err != nil {
		return invalidArgument("date must be formatted YYYY-MM-DD: %q", day)
	}
	return nil
}

func checkFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor < 0 {
		return &calculator.ConfigError{Field: "factor", Value: factor, Reason: "must not be negative"}
	}
	return nil
}

// page applies the default and maximum page size.
func page(offset, limit int) (int, int, error) {
	if offset < 0 || limit < 0 {
		return 0, 0, invalidArgument("offset and limit must not be negative")
	}
	if limit == 0 || limit > defaultPageLimit {
		limit = defaultPageLimit
	}
	return offset, limit, nil
}

func toAPITrip(t *models.Trip) *api.Trip {
	return &api.Trip{
		ID:                t.ID,
		Name:              t.Name,
		Destination:       t.Destination,
		DepartureLocation: t.DepartureLocation,
		StartDate:         t.StartDate,
		EndDate:           t.EndDate,
		Currency:          string(t.Currency),
		ChildFactor:       t.ChildFactor,
		RoundingRule:      t.RoundingRule,
		InviteCode:        t.InviteCode,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func toAPIMember(m *models.Member) *api.Member {
	return &api.Member{
		ID:        m.ID,
		TripID:    m.TripID,
		Name:      m.Name,
		Factor:    m.Factor,
		IsChild:   m.IsChild,
		CreatedAt: m.CreatedAt,
	}
}

func toAPIActivity(a *models.Activity) *api.Activity {
	return &api.Activity{
		ID:          a.ID,
		TripID:      a.TripID,
		Name:        a.Name,
		Description: a.Description,
		Location:    a.Location,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:           e.ID,
		TripID:       e.TripID,
		ActivityID:   e.ActivityID,
		PaidBy:       e.PaidBy,
		Description:  e.Description,
		Amount:       e.Amount,
		Currency:     string(e.Currency),
		ExchangeRate: e.ExchangeRate,
		Category:     string(e.Category),
		IsShared:     e.IsShared,
		ExpenseDate:  e.ExpenseDate,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// calculatorInput converts a trip snapshot into what the calculator works on.
func calculatorInput(snapshot *models.TripSnapshot) (calculator.Rules, []calculator.MemberShare, []calculator.ExpenseEntry) {
	rules := calculator.Rules{
		Currency:     string(snapshot.Trip.Currency),
		ChildFactor:  snapshot.Trip.ChildFactor,
		RoundingRule: snapshot.Trip.RoundingRule,
	}

	members := make([]calculator.MemberShare, len(snapshot.Members))
	for i, m := range snapshot.Members {
		members[i] = calculator.MemberShare{ID: m.ID, Name: m.Name, Factor: m.Factor}
	}

	expenses := make([]calculator.ExpenseEntry, len(snapshot.Expenses))
	for i, e := range snapshot.Expenses {
		expenses[i] = calculator.ExpenseEntry{
			PaidBy:       e.PaidBy,
			Amount:       e.Amount,
			ExchangeRate: e.ExchangeRate,
			IsShared:     e.IsShared,
			Category:     string(e.Category),
			Date:         time.Unix(e.ExpenseDate, 0).UTC(),
		}
	}

	return rules, members, expenses
}
