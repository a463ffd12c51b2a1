package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// ActivityService implements the Connect ActivityService.
type ActivityService struct {
	store storage.Store
}

// NewActivityService creates a new ActivityService with the given storage backend.
func NewActivityService(store storage.Store) *ActivityService {
	return &ActivityService{store: store}
}

func validateActivity(activity *models.Activity) error {
	var err error
	if activity.Name, err = cleanText("name", activity.Name); err != nil {
		return err
	}
	activity.Description = strings.TrimSpace(activity.Description)
	activity.Location = strings.TrimSpace(activity.Location)
	if lat := activity.Latitude; lat != nil && (*lat < -90 || *lat > 90) {
		return invalidArgument("latitude must be between -90 and 90")
	}
	if lng := activity.Longitude; lng != nil && (*lng < -180 || *lng > 180) {
		return invalidArgument("longitude must be between -180 and 180")
	}
	return checkTimeRange("activity", activity.StartTime, activity.EndTime)
}

// CreateActivity adds an itinerary entry to a trip.
func (s *ActivityService) CreateActivity(ctx context.Context, req *connect.Request[api.CreateActivityRequest]) (*connect.Response[api.CreateActivityResponse], error) {
	slog.Info("CreateActivity request received", "trip_id", req.Msg.TripID, "name", req.Msg.Name)

	if err := requireID("trip_id", req.Msg.TripID); err != nil {
		return nil, err
	}

	activity := &models.Activity{
		TripID:      req.Msg.TripID,
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Location:    req.Msg.Location,
		Latitude:    req.Msg.Latitude,
		Longitude:   req.Msg.Longitude,
		StartTime:   req.Msg.StartTime,
		EndTime:     req.Msg.EndTime,
	}
	if err := validateActivity(activity); err != nil {
		return nil, err
	}

	if _, err := s.store.GetTrip(ctx, activity.TripID); err != nil {
		slog.Error("CreateActivity failed - trip not found", "trip_id", activity.TripID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.CreateActivity(ctx, activity); err != nil {
		slog.Error("CreateActivity failed", "trip_id", activity.TripID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Activity created", "activity_id", activity.ID, "trip_id", activity.TripID)

	return connect.NewResponse(&api.CreateActivityResponse{Activity: toAPIActivity(activity)}), nil
}

// GetActivity retrieves an activity by ID.
func (s *ActivityService) GetActivity(ctx context.Context, req *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error) {
	slog.Info("GetActivity request received", "activity_id", req.Msg.ActivityID)

	if err := requireID("activity_id", req.Msg.ActivityID); err != nil {
		return nil, err
	}

	activity, err := s.store.GetActivity(ctx, req.Msg.ActivityID)
	if err != nil {
		slog.Error("GetActivity failed", "activity_id", req.Msg.ActivityID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetActivityResponse{Activity: toAPIActivity(activity)}), nil
}

// ListActivities retrieves a trip's itinerary, optionally for one day.
func (s *ActivityService) ListActivities(ctx context.Context, req *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	slog.Info("ListActivities request received", "trip_id", req.Msg.TripID, "date", req.Msg.Date)

	if err := requireID("trip_id", req.Msg.TripID); err != nil {
		return nil, err
	}
	if err := checkDay(req.Msg.Date); err != nil {
		return nil, err
	}

	if _, err := s.store.GetTrip(ctx, req.Msg.TripID); err != nil {
		slog.Error("ListActivities failed - trip not found", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	activities, err := s.store.ListActivitiesByTrip(ctx, req.Msg.TripID, req.Msg.Date)
	if err != nil {
		slog.Error("ListActivities failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	apiActivities := make([]*api.Activity, len(activities))
	for i, activity := range activities {
		apiActivities[i] = toAPIActivity(activity)
	}

	slog.Info("ListActivities successful", "trip_id", req.Msg.TripID, "count", len(activities))

	return connect.NewResponse(&api.ListActivitiesResponse{Activities: apiActivities}), nil
}

// UpdateActivity applies the fields set in the request.
func (s *ActivityService) UpdateActivity(ctx context.Context, req *connect.Request[api.UpdateActivityRequest]) (*connect.Response[api.UpdateActivityResponse], error) {
	slog.Info("UpdateActivity request received", "activity_id", req.Msg.ActivityID)

	if err := requireID("activity_id", req.Msg.ActivityID); err != nil {
		return nil, err
	}

	activity, err := s.store.GetActivity(ctx, req.Msg.ActivityID)
	if err != nil {
		slog.Error("UpdateActivity failed", "activity_id", req.Msg.ActivityID, "error", err)
		return nil, toConnectError(err)
	}

	msg := req.Msg
	if msg.Name != nil {
		activity.Name = *msg.Name
	}
	if msg.Description != nil {
		activity.Description = *msg.Description
	}
	if msg.Location != nil {
		activity.Location = *msg.Location
	}
	if msg.Latitude != nil {
		activity.Latitude = msg.Latitude
	}
	if msg.Longitude != nil {
		activity.Longitude = msg.Longitude
	}
	if msg.StartTime != nil {
		activity.StartTime = *msg.StartTime
	}
	if msg.EndTime != nil {
		activity.EndTime = *msg.EndTime
	}
	if err := validateActivity(activity); err != nil {
		return nil, err
	}

	if err := s.store.UpdateActivity(ctx, activity); err != nil {
		slog.Error("UpdateActivity failed", "activity_id", activity.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Activity updated", "activity_id", activity.ID)

	return connect.NewResponse(&api.UpdateActivityResponse{Activity: toAPIActivity(activity)}), nil
}

// DeleteActivity removes an activity. Expenses tagged with it are kept, untagged.
func (s *ActivityService) DeleteActivity(ctx context.Context, req *connect.Request[api.DeleteActivityRequest]) (*connect.Response[api.DeleteActivityResponse], error) {
	slog.Info("DeleteActivity request received", "activity_id", req.Msg.ActivityID)

	if err := requireID("activity_id", req.Msg.ActivityID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteActivity(ctx, req.Msg.ActivityID); err != nil {
		slog.Error("DeleteActivity failed", "activity_id", req.Msg.ActivityID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Activity deleted", "activity_id", req.Msg.ActivityID)

	return connect.NewResponse(&api.DeleteActivityResponse{}), nil
}
