package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

func TestCreateExpense_Defaults(t *testing.T) {
	c := setupTestServer(t)
	trip := c.createTrip(t, &api.CreateTripRequest{Name: "Hanoi", Destination: "Hanoi", Currency: "USD"})
	member := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "Lan"})

	before := time.Now().Unix()
	expense := c.createExpense(t, &api.CreateExpenseRequest{
		TripID:      trip.ID,
		PaidBy:      member.ID,
		Description: "Street food",
		Amount:      12.5,
	})

	if expense.Currency != "USD" {
		t.Errorf("currency = %s, want trip currency USD", expense.Currency)
	}
	if expense.ExchangeRate != 1 || expense.Category != "other" || !expense.IsShared {
		t.Errorf("unexpected defaults: %+v", expense)
	}
	if expense.ExpenseDate < before {
		t.Errorf("expense_date should default to now, got %d", expense.ExpenseDate)
	}
}

func TestCreateExpense_Validation(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	trip := c.createTrip(t, &api.CreateTripRequest{Name: "Hanoi", Destination: "Hanoi"})
	other := c.createTrip(t, &api.CreateTripRequest{Name: "Elsewhere", Destination: "Elsewhere"})
	member := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "Lan"})
	outsider := c.createMember(t, &api.CreateMemberRequest{TripID: other.ID, Name: "Minh"})
	otherActivity, err := c.activities.CreateActivity(ctx, connect.NewRequest(&api.CreateActivityRequest{TripID: other.ID, Name: "Museum"}))
	if err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	valid := func() *api.CreateExpenseRequest {
		return &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: member.ID, Description: "Taxi", Amount: 100000}
	}

	tests := []struct {
		name   string
		modify func(*api.CreateExpenseRequest)
		code   connect.Code
	}{
		{"zero amount", func(r *api.CreateExpenseRequest) { r.Amount = 0 }, connect.CodeInvalidArgument},
		{"negative amount", func(r *api.CreateExpenseRequest) { r.Amount = -5 }, connect.CodeInvalidArgument},
		{"zero exchange rate", func(r *api.CreateExpenseRequest) { r.ExchangeRate = ptr(0.0) }, connect.CodeInvalidArgument},
		{"missing description", func(r *api.CreateExpenseRequest) { r.Description = "" }, connect.CodeInvalidArgument},
		{"unknown category", func(r *api.CreateExpenseRequest) { r.Category = "gifts" }, connect.CodeInvalidArgument},
		{"unknown currency", func(r *api.CreateExpenseRequest) { r.Currency = "AUD" }, connect.CodeInvalidArgument},
		{"payer from another trip", func(r *api.CreateExpenseRequest) { r.PaidBy = outsider.ID }, connect.CodeInvalidArgument},
		{"activity from another trip", func(r *api.CreateExpenseRequest) { r.ActivityID = otherActivity.Msg.Activity.ID }, connect.CodeInvalidArgument},
		{"unknown payer", func(r *api.CreateExpenseRequest) { r.PaidBy = "missing" }, connect.CodeNotFound},
		{"unknown trip", func(r *api.CreateExpenseRequest) { r.TripID = "missing" }, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.modify(req)
			_, err := c.expenses.CreateExpense(ctx, connect.NewRequest(req))
			assertCode(t, err, tt.code)
		})
	}
}

func TestListExpenses_Filters(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	trip := c.createTrip(t, &api.CreateTripRequest{Name: "Saigon", Destination: "Saigon"})
	lan := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "Lan"})
	minh := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "Minh"})

	day1 := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC).Unix()
	day2 := time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC).Unix()

	pho := c.createExpense(t, &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: lan.ID, Description: "Pho", Amount: 90000, Category: "food", ExpenseDate: day1})
	grab := c.createExpense(t, &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: minh.ID, Description: "Grab", Amount: 60000, Category: "transport", ExpenseDate: day2})
	gift := c.createExpense(t, &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: lan.ID, Description: "Souvenir", Amount: 150000, Category: "shopping", IsShared: ptr(false), ExpenseDate: day2})

	tests := []struct {
		name string
		req  *api.ListExpensesRequest
		want []string
	}{
		{"all newest first", &api.ListExpensesRequest{}, []string{gift.ID, grab.ID, pho.ID}},
		{"by category", &api.ListExpensesRequest{Category: "food"}, []string{pho.ID}},
		{"by payer", &api.ListExpensesRequest{PaidBy: lan.ID}, []string{gift.ID, pho.ID}},
		{"by date", &api.ListExpensesRequest{Date: "2025-05-01"}, []string{pho.ID}},
		{"personal only", &api.ListExpensesRequest{IsShared: ptr(false)}, []string{gift.ID}},
		{"paged", &api.ListExpensesRequest{Offset: 2, Limit: 1}, []string{pho.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.TripID = trip.ID
			resp, err := c.expenses.ListExpenses(ctx, connect.NewRequest(tt.req))
			if err != nil {
				t.Fatalf("ListExpenses failed: %v", err)
			}
			if len(resp.Msg.Expenses) != len(tt.want) {
				t.Fatalf("expected %d expenses, got %d", len(tt.want), len(resp.Msg.Expenses))
			}
			for i, id := range tt.want {
				if resp.Msg.Expenses[i].ID != id {
					t.Errorf("expenses[%d] = %s (%s), want %s", i, resp.Msg.Expenses[i].ID, resp.Msg.Expenses[i].Description, id)
				}
			}
		})
	}

	_, err := c.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{TripID: trip.ID, Category: "gifts"}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	trip := c.createTrip(t, &api.CreateTripRequest{Name: "Hue", Destination: "Hue"})
	lan := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "Lan"})
	minh := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "Minh"})
	activity, err := c.activities.CreateActivity(ctx, connect.NewRequest(&api.CreateActivityRequest{TripID: trip.ID, Name: "Citadel"}))
	if err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	expense := c.createExpense(t, &api.CreateExpenseRequest{
		TripID:      trip.ID,
		PaidBy:      lan.ID,
		ActivityID:  activity.Msg.Activity.ID,
		Description: "Tickets",
		Amount:      200000,
	})

	resp, err := c.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ExpenseID:  expense.ID,
		PaidBy:     ptr(minh.ID),
		Amount:     ptr(250000.0),
		ActivityID: ptr(""),
		Category:   ptr("entertainment"),
	}))
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	got := resp.Msg.Expense
	if got.PaidBy != minh.ID || got.Amount != 250000 || got.ActivityID != "" || got.Category != "entertainment" {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Description != "Tickets" {
		t.Errorf("description changed: %q", got.Description)
	}

	_, err = c.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{ExpenseID: expense.ID, Amount: ptr(-1.0)}))
	assertCode(t, err, connect.CodeInvalidArgument)

	if _, err := c.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: expense.ID})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	_, err = c.expenses.GetExpense(ctx, connect.NewRequest(&api.GetExpenseRequest{ExpenseID: expense.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetTripStatistics(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	trip := c.createTrip(t, &api.CreateTripRequest{Name: "Con Dao", Destination: "Con Dao"})
	lan := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "Lan"})
	minh := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "Minh"})

	day1 := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC).Unix()
	day2 := time.Date(2025, 7, 2, 10, 0, 0, 0, time.UTC).Unix()

	c.createExpense(t, &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: minh.ID, Description: "Seafood", Amount: 300000, Category: "food", ExpenseDate: day2})
	c.createExpense(t, &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: lan.ID, Description: "Ferry", Amount: 50, Currency: "USD", ExchangeRate: ptr(2000.0), Category: "transport", ExpenseDate: day1})
	c.createExpense(t, &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: lan.ID, Description: "Hat", Amount: 80000, Category: "shopping", IsShared: ptr(false), ExpenseDate: day1})

	resp, err := c.expenses.GetTripStatistics(ctx, connect.NewRequest(&api.GetTripStatisticsRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("GetTripStatistics failed: %v", err)
	}
	stats := resp.Msg

	if stats.TotalShared != 400000 {
		t.Errorf("total_shared = %v, want 400000", stats.TotalShared)
	}

	wantCategories := []api.ExpenseByCategory{
		{Category: "food", Amount: 300000, Percentage: 75},
		{Category: "transport", Amount: 100000, Percentage: 25},
	}
	if len(stats.ExpensesByCategory) != len(wantCategories) {
		t.Fatalf("expected %d categories, got %d", len(wantCategories), len(stats.ExpensesByCategory))
	}
	for i, want := range wantCategories {
		if *stats.ExpensesByCategory[i] != want {
			t.Errorf("category[%d] = %+v, want %+v", i, *stats.ExpensesByCategory[i], want)
		}
	}

	wantDays := []api.ExpenseByDay{{Date: "2025-07-01", Amount: 100000}, {Date: "2025-07-02", Amount: 300000}}
	if len(stats.ExpensesByDay) != len(wantDays) {
		t.Fatalf("expected %d days, got %d", len(wantDays), len(stats.ExpensesByDay))
	}
	for i, want := range wantDays {
		if *stats.ExpensesByDay[i] != want {
			t.Errorf("day[%d] = %+v, want %+v", i, *stats.ExpensesByDay[i], want)
		}
	}

	wantMembers := []api.ExpenseByMember{
		{MemberID: lan.ID, MemberName: "Lan", Amount: 100000},
		{MemberID: minh.ID, MemberName: "Minh", Amount: 300000},
	}
	if len(stats.ExpensesByMember) != len(wantMembers) {
		t.Fatalf("expected %d members, got %d", len(wantMembers), len(stats.ExpensesByMember))
	}
	for i, want := range wantMembers {
		if *stats.ExpensesByMember[i] != want {
			t.Errorf("member[%d] = %+v, want %+v", i, *stats.ExpensesByMember[i], want)
		}
	}

	empty := c.createTrip(t, &api.CreateTripRequest{Name: "Empty", Destination: "Nowhere"})
	resp, err = c.expenses.GetTripStatistics(ctx, connect.NewRequest(&api.GetTripStatisticsRequest{TripID: empty.ID}))
	if err != nil {
		t.Fatalf("GetTripStatistics failed: %v", err)
	}
	if len(resp.Msg.ExpensesByCategory) != 0 || len(resp.Msg.ExpensesByDay) != 0 || len(resp.Msg.ExpensesByMember) != 0 {
		t.Errorf("expected empty statistics, got %+v", resp.Msg)
	}

	_, err = c.expenses.GetTripStatistics(ctx, connect.NewRequest(&api.GetTripStatisticsRequest{TripID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}
