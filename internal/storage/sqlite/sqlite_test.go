package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTrip(t *testing.T, store *SQLiteStore, code string) *models.Trip {
	t.Helper()

	trip := &models.Trip{
		Name:         "Da Lat",
		Destination:  "Da Lat",
		Currency:     models.CurrencyVND,
		ChildFactor:  0.5,
		RoundingRule: 1000,
		InviteCode:   code,
	}
	if err := store.CreateTrip(context.Background(), trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	return trip
}

func createMember(t *testing.T, store *SQLiteStore, tripID, name string, factor float64) *models.Member {
	t.Helper()

	member := &models.Member{TripID: tripID, Name: name, Factor: factor}
	if err := store.CreateMember(context.Background(), member); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	return member
}

func createExpense(t *testing.T, store *SQLiteStore, e *models.Expense) *models.Expense {
	t.Helper()

	if e.Currency == "" {
		e.Currency = models.CurrencyVND
	}
	if e.Category == "" {
		e.Category = models.CategoryOther
	}
	if e.ExchangeRate == 0 {
		e.ExchangeRate = 1
	}
	if e.Description == "" {
		e.Description = "expense"
	}
	if err := store.CreateExpense(context.Background(), e); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return e
}

func TestTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates ID and timestamps", func(t *testing.T) {
		trip := createTrip(t, store, "AAAA1111")
		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if trip.CreatedAt == 0 || trip.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}
	})

	t.Run("GetTrip and GetTripByInviteCode round-trip", func(t *testing.T) {
		original := createTrip(t, store, "BBBB2222")
		original.DepartureLocation = "Sai Gon"
		if err := store.UpdateTrip(ctx, original); err != nil {
			t.Fatalf("UpdateTrip failed: %v", err)
		}

		retrieved, err := store.GetTrip(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if retrieved.DepartureLocation != "Sai Gon" {
			t.Errorf("DepartureLocation mismatch: got %q", retrieved.DepartureLocation)
		}
		if retrieved.RoundingRule != 1000 || retrieved.ChildFactor != 0.5 || retrieved.Currency != models.CurrencyVND {
			t.Errorf("settings mismatch: got %+v", retrieved)
		}

		byCode, err := store.GetTripByInviteCode(ctx, "BBBB2222")
		if err != nil {
			t.Fatalf("GetTripByInviteCode failed: %v", err)
		}
		if byCode.ID != original.ID {
			t.Errorf("ID mismatch: got %s, want %s", byCode.ID, original.ID)
		}
	})

	t.Run("InviteCodeExists", func(t *testing.T) {
		createTrip(t, store, "CCCC3333")
		taken, err := store.InviteCodeExists(ctx, "CCCC3333")
		if err != nil || !taken {
			t.Errorf("expected code to be taken, got %v, %v", taken, err)
		}
		taken, err = store.InviteCodeExists(ctx, "ZZZZ9999")
		if err != nil || taken {
			t.Errorf("expected code to be free, got %v, %v", taken, err)
		}
	})

	t.Run("duplicate invite code is rejected", func(t *testing.T) {
		createTrip(t, store, "DDDD4444")
		dup := &models.Trip{Name: "x", Destination: "y", Currency: models.CurrencyUSD, RoundingRule: 1, InviteCode: "DDDD4444"}
		if err := store.CreateTrip(ctx, dup); err == nil {
			t.Error("Expected error for duplicate invite code")
		}
	})

	t.Run("ListTrips pages", func(t *testing.T) {
		all, err := store.ListTrips(ctx, 0, 100)
		if err != nil {
			t.Fatalf("ListTrips failed: %v", err)
		}
		page, err := store.ListTrips(ctx, 1, 2)
		if err != nil {
			t.Fatalf("ListTrips failed: %v", err)
		}
		if len(page) != 2 {
			t.Fatalf("Expected 2 trips, got %d", len(page))
		}
		if page[0].ID != all[1].ID {
			t.Errorf("Expected offset to skip one trip")
		}
	})

	t.Run("missing trips return ErrNotFound", func(t *testing.T) {
		if _, err := store.GetTrip(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetTrip: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetTripByInviteCode(ctx, "NOPE0000"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetTripByInviteCode: expected ErrNotFound, got %v", err)
		}
		if err := store.UpdateTrip(ctx, &models.Trip{ID: "nonexistent-id", RoundingRule: 1}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateTrip: expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteTrip(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteTrip: expected ErrNotFound, got %v", err)
		}
	})
}

func TestMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store, "MEMB0001")

	alice := createMember(t, store, trip.ID, "Alice", 1)
	bob := createMember(t, store, trip.ID, "Bob", 0.5)

	t.Run("ListMembersByTrip keeps join order", func(t *testing.T) {
		members, err := store.ListMembersByTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("ListMembersByTrip failed: %v", err)
		}
		if len(members) != 2 || members[0].ID != alice.ID || members[1].ID != bob.ID {
			t.Errorf("unexpected members: %+v", members)
		}
	})

	t.Run("UpdateMember", func(t *testing.T) {
		bob.IsChild = true
		bob.Factor = 0.3
		if err := store.UpdateMember(ctx, bob); err != nil {
			t.Fatalf("UpdateMember failed: %v", err)
		}
		got, err := store.GetMember(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if !got.IsChild || got.Factor != 0.3 {
			t.Errorf("update not persisted: %+v", got)
		}
	})

	t.Run("DeleteMember refuses payers", func(t *testing.T) {
		createExpense(t, store, &models.Expense{TripID: trip.ID, PaidBy: alice.ID, Amount: 100, IsShared: true})

		err := store.DeleteMember(ctx, alice.ID)
		if !errors.Is(err, storage.ErrInUse) {
			t.Errorf("expected ErrInUse, got %v", err)
		}
		if err := store.DeleteMember(ctx, bob.ID); err != nil {
			t.Errorf("DeleteMember failed: %v", err)
		}
		if _, err := store.GetMember(ctx, bob.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected deleted member to be gone, got %v", err)
		}
	})
}

func TestActivities(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store, "ACTV0001")
	payer := createMember(t, store, trip.ID, "Alice", 1)

	lat, lng := 11.94, 108.45
	day1 := time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC).Unix()
	day1Morning := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC).Unix()
	day2 := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC).Unix()

	lake := &models.Activity{TripID: trip.ID, Name: "Xuan Huong lake", Latitude: &lat, Longitude: &lng, StartTime: day1}
	market := &models.Activity{TripID: trip.ID, Name: "Night market", StartTime: day2}
	coffee := &models.Activity{TripID: trip.ID, Name: "Coffee", StartTime: day1Morning}
	for _, a := range []*models.Activity{lake, market, coffee} {
		if err := store.CreateActivity(ctx, a); err != nil {
			t.Fatalf("CreateActivity failed: %v", err)
		}
	}

	t.Run("ordered by start time", func(t *testing.T) {
		activities, err := store.ListActivitiesByTrip(ctx, trip.ID, "")
		if err != nil {
			t.Fatalf("ListActivitiesByTrip failed: %v", err)
		}
		if len(activities) != 3 || activities[0].ID != coffee.ID || activities[2].ID != market.ID {
			t.Errorf("unexpected order: %+v", activities)
		}
	})

	t.Run("filtered by day", func(t *testing.T) {
		activities, err := store.ListActivitiesByTrip(ctx, trip.ID, "2025-07-01")
		if err != nil {
			t.Fatalf("ListActivitiesByTrip failed: %v", err)
		}
		if len(activities) != 2 {
			t.Errorf("expected 2 activities on 2025-07-01, got %d", len(activities))
		}
	})

	t.Run("coordinates round-trip", func(t *testing.T) {
		got, err := store.GetActivity(ctx, lake.ID)
		if err != nil {
			t.Fatalf("GetActivity failed: %v", err)
		}
		if got.Latitude == nil || *got.Latitude != lat {
			t.Errorf("latitude mismatch: %v", got.Latitude)
		}
		gotMarket, err := store.GetActivity(ctx, market.ID)
		if err != nil {
			t.Fatalf("GetActivity failed: %v", err)
		}
		if gotMarket.Latitude != nil {
			t.Errorf("expected nil latitude, got %v", *gotMarket.Latitude)
		}
	})

	t.Run("deleting an activity untags its expenses", func(t *testing.T) {
		expense := createExpense(t, store, &models.Expense{TripID: trip.ID, PaidBy: payer.ID, ActivityID: lake.ID, Amount: 50000})
		if err := store.DeleteActivity(ctx, lake.ID); err != nil {
			t.Fatalf("DeleteActivity failed: %v", err)
		}
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.ActivityID != "" {
			t.Errorf("expected expense to be untagged, got %q", got.ActivityID)
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store, "EXPN0001")
	alice := createMember(t, store, trip.ID, "Alice", 1)
	bob := createMember(t, store, trip.ID, "Bob", 1)

	jul1 := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC).Unix()
	jul2 := time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC).Unix()

	dinner := createExpense(t, store, &models.Expense{
		TripID: trip.ID, PaidBy: alice.ID, Amount: 20, Currency: models.CurrencyUSD,
		ExchangeRate: 25000, Category: models.CategoryFood, IsShared: true, ExpenseDate: jul1,
	})
	createExpense(t, store, &models.Expense{
		TripID: trip.ID, PaidBy: bob.ID, Amount: 300000, Category: models.CategoryTransport,
		IsShared: true, ExpenseDate: jul2,
	})
	createExpense(t, store, &models.Expense{
		TripID: trip.ID, PaidBy: bob.ID, Amount: 150000, Category: models.CategoryShopping,
		IsShared: false, ExpenseDate: jul2,
	})

	t.Run("GetExpense round-trip", func(t *testing.T) {
		got, err := store.GetExpense(ctx, dinner.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Currency != models.CurrencyUSD || got.ExchangeRate != 25000 || !got.IsShared || got.ExpenseDate != jul1 {
			t.Errorf("round-trip mismatch: %+v", got)
		}
	})

	shared := true
	tests := []struct {
		name   string
		filter models.ExpenseFilter
		want   int
	}{
		{"all, newest first", models.ExpenseFilter{TripID: trip.ID}, 3},
		{"by category", models.ExpenseFilter{TripID: trip.ID, Category: models.CategoryFood}, 1},
		{"by payer", models.ExpenseFilter{TripID: trip.ID, PaidBy: bob.ID}, 2},
		{"by day", models.ExpenseFilter{TripID: trip.ID, Day: "2025-07-02"}, 2},
		{"shared only", models.ExpenseFilter{TripID: trip.ID, IsShared: &shared}, 2},
		{"limit", models.ExpenseFilter{TripID: trip.ID, Limit: 1}, 1},
		{"offset past end", models.ExpenseFilter{TripID: trip.ID, Limit: 10, Offset: 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListExpenses(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListExpenses failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d expenses, got %d", tt.want, len(got))
			}
			for i := 1; i < len(got); i++ {
				if got[i-1].ExpenseDate < got[i].ExpenseDate {
					t.Errorf("expenses not ordered newest first")
				}
			}
		})
	}

	t.Run("invalid day filter", func(t *testing.T) {
		if _, err := store.ListExpenses(ctx, models.ExpenseFilter{TripID: trip.ID, Day: "July 1"}); err == nil {
			t.Error("expected error for malformed day")
		}
	})

	t.Run("UpdateExpense and DeleteExpense", func(t *testing.T) {
		dinner.Amount = 25
		dinner.IsShared = false
		if err := store.UpdateExpense(ctx, dinner); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		got, _ := store.GetExpense(ctx, dinner.ID)
		if got.Amount != 25 || got.IsShared {
			t.Errorf("update not persisted: %+v", got)
		}
		if err := store.DeleteExpense(ctx, dinner.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, dinner.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestGetTripSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store, "SNAP0001")
	other := createTrip(t, store, "SNAP0002")

	alice := createMember(t, store, trip.ID, "Alice", 1)
	createMember(t, store, trip.ID, "Bob", 1)
	stranger := createMember(t, store, other.ID, "Stranger", 1)
	createExpense(t, store, &models.Expense{TripID: trip.ID, PaidBy: alice.ID, Amount: 100, IsShared: true})
	createExpense(t, store, &models.Expense{TripID: other.ID, PaidBy: stranger.ID, Amount: 999, IsShared: true})

	snap, err := store.GetTripSnapshot(ctx, trip.ID)
	if err != nil {
		t.Fatalf("GetTripSnapshot failed: %v", err)
	}
	if snap.Trip.ID != trip.ID {
		t.Errorf("trip mismatch: %s", snap.Trip.ID)
	}
	if len(snap.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(snap.Members))
	}
	if len(snap.Expenses) != 1 || snap.Expenses[0].Amount != 100 {
		t.Errorf("expected only this trip's expense, got %+v", snap.Expenses)
	}

	if _, err := store.GetTripSnapshot(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	t.Run("DeleteTrip cascades", func(t *testing.T) {
		if err := store.DeleteTrip(ctx, trip.ID); err != nil {
			t.Fatalf("DeleteTrip failed: %v", err)
		}
		if _, err := store.GetMember(ctx, alice.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected member to cascade, got %v", err)
		}
		expenses, err := store.ListExpenses(ctx, models.ExpenseFilter{TripID: trip.ID})
		if err != nil || len(expenses) != 0 {
			t.Errorf("expected expenses to cascade, got %d, %v", len(expenses), err)
		}
	})
}
