package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewSettlementService creates a new SettlementService with the given storage
// backend. m may be nil.
func NewSettlementService(store storage.Store, m *metrics.Metrics) *SettlementService {
	return &SettlementService{store: store, metrics: m}
}

// GetSettlementReport computes every member's balance and the transfers that
// settle them. Nothing is stored; each call recomputes from the current data.
func (s *SettlementService) GetSettlementReport(ctx context.Context, req *connect.Request[api.GetSettlementReportRequest]) (*connect.Response[api.GetSettlementReportResponse], error) {
	tripID := req.Msg.TripID
	slog.Info("GetSettlementReport request received", "trip_id", tripID)

	if err := requireID("trip_id", tripID); err != nil {
		return nil, err
	}

	snapshot, err := s.store.GetTripSnapshot(ctx, tripID)
	if err != nil {
		slog.Error("GetSettlementReport failed", "trip_id", tripID, "error", err)
		return nil, toConnectError(fmt.Errorf("failed to load trip: %w", err))
	}

	rules, members, expenses := calculatorInput(snapshot)
	sheet, err := calculator.ComputeBalances(rules, members, expenses)
	if err != nil {
		slog.Error("GetSettlementReport failed", "trip_id", tripID, "error", err)
		return nil, toConnectError(err)
	}

	transfers := calculator.ComputeSettlement(sheet.Balances)
	s.metrics.ObserveSettlement(len(transfers))

	report := &api.SettlementReport{
		TripID:                 snapshot.Trip.ID,
		TripName:               snapshot.Trip.Name,
		Currency:               sheet.Currency,
		TotalExpenses:          sheet.TotalExpenses,
		TotalSharedExpenses:    sheet.TotalShared,
		MemberBalances:         make([]*api.MemberBalance, len(sheet.Balances)),
		SettlementTransactions: make([]*api.SettlementTransaction, len(transfers)),
	}
	for i, b := range sheet.Balances {
		report.MemberBalances[i] = &api.MemberBalance{
			MemberID:   b.MemberID,
			MemberName: b.MemberName,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
			Balance:    b.Balance,
		}
	}
	for i, t := range transfers {
		report.SettlementTransactions[i] = &api.SettlementTransaction{
			FromMemberID:   t.FromMemberID,
			FromMemberName: t.FromMemberName,
			ToMemberID:     t.ToMemberID,
			ToMemberName:   t.ToMemberName,
			Amount:         t.Amount,
		}
	}

	slog.Info("GetSettlementReport successful",
		"trip_id", tripID,
		"members", len(sheet.Balances),
		"transactions", len(transfers),
		"total_shared", sheet.TotalShared,
	)

	return connect.NewResponse(&api.GetSettlementReportResponse{Report: report}), nil
}
