package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// TripService implements the Connect TripService.
type TripService struct {
	store        storage.Store
	generateCode func() (string, error)
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store, generateCode: randomInviteCode}
}

// validateTrip checks the fields every trip must satisfy, normalizing text in place.
func validateTrip(trip *models.Trip) error {
	var err error
	if trip.Name, err = cleanText("name", trip.Name); err != nil {
		return err
	}
	if trip.Destination, err = cleanText("destination", trip.Destination); err != nil {
		return err
	}
	trip.DepartureLocation = strings.TrimSpace(trip.DepartureLocation)
	if err := checkTimeRange("trip", trip.StartDate, trip.EndDate); err != nil {
		return err
	}

	rules := calculator.Rules{
		Currency:     string(trip.Currency),
		ChildFactor:  trip.ChildFactor,
		RoundingRule: trip.RoundingRule,
	}
	if err := rules.Validate(); err != nil {
		return toConnectError(err)
	}
	return nil
}

// CreateTrip creates a trip with a fresh invite code.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	slog.Info("CreateTrip request received", "name", req.Msg.Name, "destination", req.Msg.Destination)

	trip := &models.Trip{
		Name:              req.Msg.Name,
		Destination:       req.Msg.Destination,
		DepartureLocation: req.Msg.DepartureLocation,
		StartDate:         req.Msg.StartDate,
		EndDate:           req.Msg.EndDate,
		Currency:          models.DefaultCurrency,
		ChildFactor:       models.DefaultChildFactor,
		RoundingRule:      models.DefaultRoundingRule,
	}
	if req.Msg.Currency != "" {
		currency, err := models.ParseCurrency(req.Msg.Currency)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		trip.Currency = currency
	}
	if req.Msg.ChildFactor != nil {
		trip.ChildFactor = *req.Msg.ChildFactor
	}
	if req.Msg.RoundingRule != nil {
		trip.RoundingRule = *req.Msg.RoundingRule
	}
	if err := validateTrip(trip); err != nil {
		slog.Warn("CreateTrip rejected", "error", err)
		return nil, err
	}

	code, err := newInviteCode(ctx, s.store, s.generateCode)
	if err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, toConnectError(err)
	}
	trip.InviteCode = code

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "invite_code", trip.InviteCode)

	return connect.NewResponse(&api.CreateTripResponse{Trip: toAPITrip(trip)}), nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripID)

	if err := requireID("trip_id", req.Msg.TripID); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetTrip successful", "trip_id", trip.ID, "name", trip.Name)

	return connect.NewResponse(&api.GetTripResponse{Trip: toAPITrip(trip)}), nil
}

// GetTripByInviteCode looks up the trip an invite code belongs to.
// Codes are matched case-insensitively.
func (s *TripService) GetTripByInviteCode(ctx context.Context, req *connect.Request[api.GetTripByInviteCodeRequest]) (*connect.Response[api.GetTripByInviteCodeResponse], error) {
	code := strings.ToUpper(strings.TrimSpace(req.Msg.InviteCode))
	slog.Info("GetTripByInviteCode request received", "invite_code", code)

	if err := requireID("invite_code", code); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTripByInviteCode(ctx, code)
	if err != nil {
		slog.Error("GetTripByInviteCode failed", "invite_code", code, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetTripByInviteCode successful", "trip_id", trip.ID)

	return connect.NewResponse(&api.GetTripByInviteCodeResponse{Trip: toAPITrip(trip)}), nil
}

// ListTrips retrieves a page of trips, newest first.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	slog.Info("ListTrips request received", "offset", req.Msg.Offset, "limit", req.Msg.Limit)

	offset, limit, err := page(req.Msg.Offset, req.Msg.Limit)
	if err != nil {
		return nil, err
	}

	trips, err := s.store.ListTrips(ctx, offset, limit)
	if err != nil {
		slog.Error("ListTrips failed", "error", err)
		return nil, toConnectError(err)
	}

	apiTrips := make([]*api.Trip, len(trips))
	for i, trip := range trips {
		apiTrips[i] = toAPITrip(trip)
	}

	slog.Info("ListTrips successful", "count", len(trips))

	return connect.NewResponse(&api.ListTripsResponse{Trips: apiTrips}), nil
}

// UpdateTrip applies the fields set in the request to an existing trip.
// Changing child_factor does not touch the factors of existing members.
func (s *TripService) UpdateTrip(ctx context.Context, req *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	slog.Info("UpdateTrip request received", "trip_id", req.Msg.TripID)

	if err := requireID("trip_id", req.Msg.TripID); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("UpdateTrip failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	msg := req.Msg
	if msg.Name != nil {
		trip.Name = *msg.Name
	}
	if msg.Destination != nil {
		trip.Destination = *msg.Destination
	}
	if msg.DepartureLocation != nil {
		trip.DepartureLocation = *msg.DepartureLocation
	}
	if msg.StartDate != nil {
		trip.StartDate = *msg.StartDate
	}
	if msg.EndDate != nil {
		trip.EndDate = *msg.EndDate
	}
	if msg.Currency != nil {
		currency, err := models.ParseCurrency(*msg.Currency)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		trip.Currency = currency
	}
	if msg.ChildFactor != nil {
		trip.ChildFactor = *msg.ChildFactor
	}
	if msg.RoundingRule != nil {
		trip.RoundingRule = *msg.RoundingRule
	}
	if err := validateTrip(trip); err != nil {
		slog.Warn("UpdateTrip rejected", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateTrip failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip updated", "trip_id", trip.ID)

	return connect.NewResponse(&api.UpdateTripResponse{Trip: toAPITrip(trip)}), nil
}

// DeleteTrip removes a trip together with its members, activities and expenses.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	slog.Info("DeleteTrip request received", "trip_id", req.Msg.TripID)

	if err := requireID("trip_id", req.Msg.TripID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteTrip(ctx, req.Msg.TripID); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip deleted", "trip_id", req.Msg.TripID)

	return connect.NewResponse(&api.DeleteTripResponse{}), nil
}
