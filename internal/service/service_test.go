package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/api"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
)

type testClients struct {
	trips      apiconnect.TripServiceClient
	members    apiconnect.MemberServiceClient
	activities apiconnect.ActivityServiceClient
	expenses   apiconnect.ExpenseServiceClient
	settlement apiconnect.SettlementServiceClient
	metrics    *metrics.Metrics
	registry   *prometheus.Registry
}

// setupTestServer serves every service over httptest backed by a temp database.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	opts := connect.WithInterceptors(m.Interceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewTripServiceHandler(NewTripService(store), opts))
	mux.Handle(apiconnect.NewMemberServiceHandler(NewMemberService(store), opts))
	mux.Handle(apiconnect.NewActivityServiceHandler(NewActivityService(store), opts))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store), opts))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store, m), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		trips:      apiconnect.NewTripServiceClient(http.DefaultClient, server.URL),
		members:    apiconnect.NewMemberServiceClient(http.DefaultClient, server.URL),
		activities: apiconnect.NewActivityServiceClient(http.DefaultClient, server.URL),
		expenses:   apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		settlement: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
		metrics:    m,
		registry:   registry,
	}
}

func ptr[T any](v T) *T {
	return &v
}

// assertCode fails the test unless err is a Connect error with the given code.
func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Fatalf("expected code %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}

func (c *testClients) createTrip(t *testing.T, req *api.CreateTripRequest) *api.Trip {
	t.Helper()
	resp, err := c.trips.CreateTrip(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	return resp.Msg.Trip
}

func (c *testClients) createMember(t *testing.T, req *api.CreateMemberRequest) *api.Member {
	t.Helper()
	resp, err := c.members.CreateMember(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	return resp.Msg.Member
}

func (c *testClients) createExpense(t *testing.T, req *api.CreateExpenseRequest) *api.Expense {
	t.Helper()
	resp, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg.Expense
}
