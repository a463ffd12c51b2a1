package service

import (
	"context"
	"math"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/tripsplit/pkg/api"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
)

func TestGetSettlementReport_WorkedExample(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	trip := c.createTrip(t, &api.CreateTripRequest{Name: "Da Lat 2025", Destination: "Da Lat"})
	a := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "A"})
	b := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "B"})
	child := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "C", IsChild: true})

	c.createExpense(t, &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: a.ID, Description: "Villa", Amount: 300000, Category: "accommodation"})
	c.createExpense(t, &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: b.ID, Description: "Coffee beans", Amount: 120000, IsShared: ptr(false)})

	resp, err := c.settlement.GetSettlementReport(ctx, connect.NewRequest(&api.GetSettlementReportRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("GetSettlementReport failed: %v", err)
	}
	report := resp.Msg.Report

	if report.TripName != "Da Lat 2025" || report.Currency != "VND" {
		t.Errorf("unexpected header: %+v", report)
	}
	if report.TotalExpenses != 420000 {
		t.Errorf("total_expenses = %v, want 420000", report.TotalExpenses)
	}
	if report.TotalSharedExpenses != 300000 {
		t.Errorf("total_shared_expenses = %v, want 300000", report.TotalSharedExpenses)
	}

	wantBalances := []api.MemberBalance{
		{MemberID: a.ID, MemberName: "A", TotalPaid: 300000, TotalOwed: 120000, Balance: 180000},
		{MemberID: b.ID, MemberName: "B", TotalPaid: 0, TotalOwed: 120000, Balance: -120000},
		{MemberID: child.ID, MemberName: "C", TotalPaid: 0, TotalOwed: 60000, Balance: -60000},
	}
	if len(report.MemberBalances) != len(wantBalances) {
		t.Fatalf("expected %d balances, got %d", len(wantBalances), len(report.MemberBalances))
	}
	for i, want := range wantBalances {
		got := report.MemberBalances[i]
		if got.MemberID != want.MemberID || got.MemberName != want.MemberName ||
			math.Abs(got.TotalPaid-want.TotalPaid) > 1e-6 ||
			math.Abs(got.TotalOwed-want.TotalOwed) > 1e-6 ||
			got.Balance != want.Balance {
			t.Errorf("balance[%d] = %+v, want %+v", i, *got, want)
		}
	}

	wantTransfers := []api.SettlementTransaction{
		{FromMemberID: b.ID, FromMemberName: "B", ToMemberID: a.ID, ToMemberName: "A", Amount: 120000},
		{FromMemberID: child.ID, FromMemberName: "C", ToMemberID: a.ID, ToMemberName: "A", Amount: 60000},
	}
	if len(report.SettlementTransactions) != len(wantTransfers) {
		t.Fatalf("expected %d transactions, got %d", len(wantTransfers), len(report.SettlementTransactions))
	}
	for i, want := range wantTransfers {
		if *report.SettlementTransactions[i] != want {
			t.Errorf("transaction[%d] = %+v, want %+v", i, *report.SettlementTransactions[i], want)
		}
	}
}

func TestGetSettlementReport_Recomputes(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	trip := c.createTrip(t, &api.CreateTripRequest{Name: "Trip", Destination: "Somewhere", RoundingRule: ptr(1)})
	x := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "X"})
	y := c.createMember(t, &api.CreateMemberRequest{TripID: trip.ID, Name: "Y"})

	report := func() *api.SettlementReport {
		t.Helper()
		resp, err := c.settlement.GetSettlementReport(ctx, connect.NewRequest(&api.GetSettlementReportRequest{TripID: trip.ID}))
		if err != nil {
			t.Fatalf("GetSettlementReport failed: %v", err)
		}
		return resp.Msg.Report
	}

	if r := report(); len(r.MemberBalances) != 2 || len(r.SettlementTransactions) != 0 {
		t.Fatalf("expected settled trip, got %+v", r)
	}

	expense := c.createExpense(t, &api.CreateExpenseRequest{TripID: trip.ID, PaidBy: x.ID, Description: "Dinner", Amount: 100})
	r := report()
	if len(r.SettlementTransactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(r.SettlementTransactions))
	}
	if tx := r.SettlementTransactions[0]; tx.FromMemberID != y.ID || tx.ToMemberID != x.ID || tx.Amount != 50 {
		t.Errorf("unexpected transaction: %+v", tx)
	}

	if _, err := c.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: expense.ID})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	if r := report(); len(r.SettlementTransactions) != 0 || r.TotalSharedExpenses != 0 {
		t.Errorf("expected report to reflect the deletion, got %+v", r)
	}

	n, err := testutil.GatherAndCount(c.registry, "tripsplit_settlement_transfers", "tripsplit_rpc_requests_total")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	// One histogram plus one request counter per (procedure, code) pair seen.
	if n < 2 {
		t.Errorf("expected settlement and request metrics, got %d series", n)
	}

	ok := testutil.ToFloat64(c.metrics.RequestCounter(apiconnect.SettlementServiceGetSettlementReportProcedure, "ok"))
	if ok != 3 {
		t.Errorf("expected 3 successful settlement RPCs, got %v", ok)
	}
}

func TestGetSettlementReport_Errors(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	_, err := c.settlement.GetSettlementReport(ctx, connect.NewRequest(&api.GetSettlementReportRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.settlement.GetSettlementReport(ctx, connect.NewRequest(&api.GetSettlementReportRequest{TripID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}
