package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// MemberService implements the Connect MemberService.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a new MemberService with the given storage backend.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// CreateMember adds a member to a trip. Without an explicit factor, adults get
// 1.0 and children get the trip's child factor.
func (s *MemberService) CreateMember(ctx context.Context, req *connect.Request[api.CreateMemberRequest]) (*connect.Response[api.CreateMemberResponse], error) {
	slog.Info("CreateMember request received", "trip_id", req.Msg.TripID, "name", req.Msg.Name, "is_child", req.Msg.IsChild)

	if err := requireID("trip_id", req.Msg.TripID); err != nil {
		return nil, err
	}
	name, err := cleanText("name", req.Msg.Name)
	if err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("CreateMember failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	member := &models.Member{
		TripID:  trip.ID,
		Name:    name,
		IsChild: req.Msg.IsChild,
		Factor:  trip.DefaultFactor(req.Msg.IsChild),
	}
	if req.Msg.Factor != nil {
		member.Factor = *req.Msg.Factor
	}
	if err := checkFactor(member.Factor); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateMember(ctx, member); err != nil {
		slog.Error("CreateMember failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member created", "member_id", member.ID, "trip_id", trip.ID, "factor", member.Factor)

	return connect.NewResponse(&api.CreateMemberResponse{Member: toAPIMember(member)}), nil
}

// GetMember retrieves a member by ID.
func (s *MemberService) GetMember(ctx context.Context, req *connect.Request[api.GetMemberRequest]) (*connect.Response[api.GetMemberResponse], error) {
	slog.Info("GetMember request received", "member_id", req.Msg.MemberID)

	if err := requireID("member_id", req.Msg.MemberID); err != nil {
		return nil, err
	}

	member, err := s.store.GetMember(ctx, req.Msg.MemberID)
	if err != nil {
		slog.Error("GetMember failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetMemberResponse{Member: toAPIMember(member)}), nil
}

// ListMembers retrieves a trip's members in the order they joined.
func (s *MemberService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	slog.Info("ListMembers request received", "trip_id", req.Msg.TripID)

	if err := requireID("trip_id", req.Msg.TripID); err != nil {
		return nil, err
	}

	// Verify trip exists
	if _, err := s.store.GetTrip(ctx, req.Msg.TripID); err != nil {
		slog.Error("ListMembers failed - trip not found", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	members, err := s.store.ListMembersByTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("ListMembers failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	apiMembers := make([]*api.Member, len(members))
	for i, member := range members {
		apiMembers[i] = toAPIMember(member)
	}

	slog.Info("ListMembers successful", "trip_id", req.Msg.TripID, "count", len(members))

	return connect.NewResponse(&api.ListMembersResponse{Members: apiMembers}), nil
}

// UpdateMember applies the fields set in the request. Switching is_child
// without an explicit factor resets the factor to the default for the new state.
func (s *MemberService) UpdateMember(ctx context.Context, req *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error) {
	slog.Info("UpdateMember request received", "member_id", req.Msg.MemberID)

	if err := requireID("member_id", req.Msg.MemberID); err != nil {
		return nil, err
	}

	member, err := s.store.GetMember(ctx, req.Msg.MemberID)
	if err != nil {
		slog.Error("UpdateMember failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err)
	}

	if req.Msg.Name != nil {
		if member.Name, err = cleanText("name", *req.Msg.Name); err != nil {
			return nil, err
		}
	}

	switch {
	case req.Msg.Factor != nil:
		member.Factor = *req.Msg.Factor
		if req.Msg.IsChild != nil {
			member.IsChild = *req.Msg.IsChild
		}
	case req.Msg.IsChild != nil && *req.Msg.IsChild != member.IsChild:
		trip, err := s.store.GetTrip(ctx, member.TripID)
		if err != nil {
			slog.Error("UpdateMember failed", "trip_id", member.TripID, "error", err)
			return nil, toConnectError(err)
		}
		member.IsChild = *req.Msg.IsChild
		member.Factor = trip.DefaultFactor(member.IsChild)
	}
	if err := checkFactor(member.Factor); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateMember(ctx, member); err != nil {
		slog.Error("UpdateMember failed", "member_id", member.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member updated", "member_id", member.ID, "factor", member.Factor)

	return connect.NewResponse(&api.UpdateMemberResponse{Member: toAPIMember(member)}), nil
}

// DeleteMember removes a member who has not paid for anything.
func (s *MemberService) DeleteMember(ctx context.Context, req *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error) {
	slog.Info("DeleteMember request received", "member_id", req.Msg.MemberID)

	if err := requireID("member_id", req.Msg.MemberID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteMember(ctx, req.Msg.MemberID); err != nil {
		slog.Error("DeleteMember failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member deleted", "member_id", req.Msg.MemberID)

	return connect.NewResponse(&api.DeleteMemberResponse{}), nil
}
