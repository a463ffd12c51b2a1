package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalidArgument("%s must be greater than 0", field)
	}
	return nil
}

func validateExpense(expense *models.Expense) error {
	var err error
	if expense.Description, err = cleanText("description", expense.Description); err != nil {
		return err
	}
	if err := positive("amount", expense.Amount); err != nil {
		return err
	}
	return positive("exchange_rate", expense.ExchangeRate)
}

// checkBelongsToTrip verifies the payer and, when set, the activity are part of tripID.
func (s *ExpenseService) checkBelongsToTrip(ctx context.Context, tripID, paidBy, activityID string) error {
	payer, err := s.store.GetMember(ctx, paidBy)
	if err != nil {
		return toConnectError(err)
	}
	if payer.TripID != tripID {
		return invalidArgument("paid_by %s is not a member of trip %s", paidBy, tripID)
	}

	if activityID == "" {
		return nil
	}
	activity, err := s.store.GetActivity(ctx, activityID)
	if err != nil {
		return toConnectError(err)
	}
	if activity.TripID != tripID {
		return invalidArgument("activity %s does not belong to trip %s", activityID, tripID)
	}
	return nil
}

// CreateExpense records money a member paid. Currency defaults to the trip's,
// exchange_rate to 1, category to other and is_shared to true.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg
	slog.Info("CreateExpense request received",
		"trip_id", msg.TripID,
		"paid_by", msg.PaidBy,
		"amount", msg.Amount,
		"currency", msg.Currency,
	)

	if err := requireID("trip_id", msg.TripID); err != nil {
		return nil, err
	}
	if err := requireID("paid_by", msg.PaidBy); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, msg.TripID)
	if err != nil {
		slog.Error("CreateExpense failed - trip not found", "trip_id", msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	expense := &models.Expense{
		TripID:       trip.ID,
		ActivityID:   msg.ActivityID,
		PaidBy:       msg.PaidBy,
		Description:  msg.Description,
		Amount:       msg.Amount,
		Currency:     trip.Currency,
		ExchangeRate: 1,
		Category:     models.CategoryOther,
		IsShared:     true,
		ExpenseDate:  msg.ExpenseDate,
	}
	if msg.Currency != "" {
		if expense.Currency, err = models.ParseCurrency(msg.Currency); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	if msg.ExchangeRate != nil {
		expense.ExchangeRate = *msg.ExchangeRate
	}
	if msg.Category != "" {
		if expense.Category, err = models.ParseCategory(msg.Category); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	if msg.IsShared != nil {
		expense.IsShared = *msg.IsShared
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	if err := s.checkBelongsToTrip(ctx, trip.ID, expense.PaidBy, expense.ActivityID); err != nil {
		slog.Warn("CreateExpense rejected", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "trip_id", trip.ID)

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	slog.Info("GetExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := requireID("expense_id", req.Msg.ExpenseID); err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses retrieves a trip's expenses, newest first, narrowed by the
// filters set in the request.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	msg := req.Msg
	slog.Info("ListExpenses request received", "trip_id", msg.TripID, "category", msg.Category, "date", msg.Date)

	if err := requireID("trip_id", msg.TripID); err != nil {
		return nil, err
	}
	if err := checkDay(msg.Date); err != nil {
		return nil, err
	}
	offset, limit, err := page(msg.Offset, msg.Limit)
	if err != nil {
		return nil, err
	}

	filter := models.ExpenseFilter{
		TripID:   msg.TripID,
		PaidBy:   msg.PaidBy,
		Day:      msg.Date,
		IsShared: msg.IsShared,
		Offset:   offset,
		Limit:    limit,
	}
	if msg.Category != "" {
		if filter.Category, err = models.ParseCategory(msg.Category); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	if _, err := s.store.GetTrip(ctx, msg.TripID); err != nil {
		slog.Error("ListExpenses failed - trip not found", "trip_id", msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpenses(ctx, filter)
	if err != nil {
		slog.Error("ListExpenses failed", "trip_id", msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	apiExpenses := make([]*api.Expense, len(expenses))
	for i, expense := range expenses {
		apiExpenses[i] = toAPIExpense(expense)
	}

	slog.Info("ListExpenses successful", "trip_id", msg.TripID, "count", len(expenses))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: apiExpenses}), nil
}

// UpdateExpense applies the fields set in the request. An empty activity_id
// untags the expense.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	msg := req.Msg
	slog.Info("UpdateExpense request received", "expense_id", msg.ExpenseID)

	if err := requireID("expense_id", msg.ExpenseID); err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, msg.ExpenseID)
	if err != nil {
		slog.Error("UpdateExpense failed", "expense_id", msg.ExpenseID, "error", err)
		return nil, toConnectError(err)
	}

	if msg.PaidBy != nil {
		expense.PaidBy = *msg.PaidBy
	}
	if msg.ActivityID != nil {
		expense.ActivityID = *msg.ActivityID
	}
	if msg.Description != nil {
		expense.Description = *msg.Description
	}
	if msg.Amount != nil {
		expense.Amount = *msg.Amount
	}
	if msg.Currency != nil {
		if expense.Currency, err = models.ParseCurrency(*msg.Currency); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	if msg.ExchangeRate != nil {
		expense.ExchangeRate = *msg.ExchangeRate
	}
	if msg.Category != nil {
		if expense.Category, err = models.ParseCategory(*msg.Category); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	if msg.IsShared != nil {
		expense.IsShared = *msg.IsShared
	}
	if msg.ExpenseDate != nil {
		expense.ExpenseDate = *msg.ExpenseDate
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	if err := s.checkBelongsToTrip(ctx, expense.TripID, expense.PaidBy, expense.ActivityID); err != nil {
		slog.Warn("UpdateExpense rejected", "expense_id", expense.ID, "error", err)
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense updated", "expense_id", expense.ID)

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense by ID.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := requireID("expense_id", req.Msg.ExpenseID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// GetTripStatistics aggregates a trip's shared spend by category, day and payer.
func (s *ExpenseService) GetTripStatistics(ctx context.Context, req *connect.Request[api.GetTripStatisticsRequest]) (*connect.Response[api.GetTripStatisticsResponse], error) {
	tripID := req.Msg.TripID
	slog.Info("GetTripStatistics request received", "trip_id", tripID)

	if err := requireID("trip_id", tripID); err != nil {
		return nil, err
	}

	snapshot, err := s.store.GetTripSnapshot(ctx, tripID)
	if err != nil {
		slog.Error("GetTripStatistics failed", "trip_id", tripID, "error", err)
		return nil, toConnectError(fmt.Errorf("failed to load trip: %w", err))
	}

	_, members, expenses := calculatorInput(snapshot)
	stats := calculator.ComputeStatistics(members, expenses)

	resp := &api.GetTripStatisticsResponse{
		TripID:             tripID,
		Currency:           string(snapshot.Trip.Currency),
		TotalShared:        stats.TotalShared,
		ExpensesByCategory: make([]*api.ExpenseByCategory, len(stats.ByCategory)),
		ExpensesByDay:      make([]*api.ExpenseByDay, len(stats.ByDay)),
		ExpensesByMember:   make([]*api.ExpenseByMember, len(stats.ByMember)),
	}
	for i, c := range stats.ByCategory {
		resp.ExpensesByCategory[i] = &api.ExpenseByCategory{Category: c.Category, Amount: c.Amount, Percentage: c.Percentage}
	}
	for i, d := range stats.ByDay {
		resp.ExpensesByDay[i] = &api.ExpenseByDay{Date: d.Date, Amount: d.Amount}
	}
	for i, m := range stats.ByMember {
		resp.ExpensesByMember[i] = &api.ExpenseByMember{MemberID: m.MemberID, MemberName: m.MemberName, Amount: m.Amount}
	}

	slog.Info("GetTripStatistics successful",
		"trip_id", tripID,
		"total_shared", stats.TotalShared,
		"categories", len(stats.ByCategory),
	)

	return connect.NewResponse(resp), nil
}
