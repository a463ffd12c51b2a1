package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// MemberServiceName is the fully-qualified name of the MemberService.
const MemberServiceName = "tripsplit.v1.MemberService"

const (
	MemberServiceCreateMemberProcedure = "/tripsplit.v1.MemberService/CreateMember"
	MemberServiceGetMemberProcedure    = "/tripsplit.v1.MemberService/GetMember"
	MemberServiceListMembersProcedure  = "/tripsplit.v1.MemberService/ListMembers"
	MemberServiceUpdateMemberProcedure = "/tripsplit.v1.MemberService/UpdateMember"
	MemberServiceDeleteMemberProcedure = "/tripsplit.v1.MemberService/DeleteMember"
)

// MemberServiceHandler is implemented by the server side of the MemberService.
type MemberServiceHandler interface {
	CreateMember(context.Context, *connect.Request[api.CreateMemberRequest]) (*connect.Response[api.CreateMemberResponse], error)
	GetMember(context.Context, *connect.Request[api.GetMemberRequest]) (*connect.Response[api.GetMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	UpdateMember(context.Context, *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error)
	DeleteMember(context.Context, *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error)
}

// NewMemberServiceHandler builds an HTTP handler from the service implementation.
func NewMemberServiceHandler(svc MemberServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serviceHandler(MemberServiceName,
		unary(MemberServiceCreateMemberProcedure, svc.CreateMember, opts),
		unary(MemberServiceGetMemberProcedure, svc.GetMember, opts),
		unary(MemberServiceListMembersProcedure, svc.ListMembers, opts),
		unary(MemberServiceUpdateMemberProcedure, svc.UpdateMember, opts),
		unary(MemberServiceDeleteMemberProcedure, svc.DeleteMember, opts),
	)
}

// MemberServiceClient is a client for the MemberService.
type MemberServiceClient interface {
	CreateMember(context.Context, *connect.Request[api.CreateMemberRequest]) (*connect.Response[api.CreateMemberResponse], error)
	GetMember(context.Context, *connect.Request[api.GetMemberRequest]) (*connect.Response[api.GetMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	UpdateMember(context.Context, *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error)
	DeleteMember(context.Context, *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error)
}

// NewMemberServiceClient constructs a client for the MemberService.
func NewMemberServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MemberServiceClient {
	opts = clientOptions(opts)
	return &memberServiceClient{
		createMember: newClient[api.CreateMemberRequest, api.CreateMemberResponse](httpClient, baseURL, MemberServiceCreateMemberProcedure, opts),
		getMember:    newClient[api.GetMemberRequest, api.GetMemberResponse](httpClient, baseURL, MemberServiceGetMemberProcedure, opts),
		listMembers:  newClient[api.ListMembersRequest, api.ListMembersResponse](httpClient, baseURL, MemberServiceListMembersProcedure, opts),
		updateMember: newClient[api.UpdateMemberRequest, api.UpdateMemberResponse](httpClient, baseURL, MemberServiceUpdateMemberProcedure, opts),
		deleteMember: newClient[api.DeleteMemberRequest, api.DeleteMemberResponse](httpClient, baseURL, MemberServiceDeleteMemberProcedure, opts),
	}
}

type memberServiceClient struct {
	createMember *connect.Client[api.CreateMemberRequest, api.CreateMemberResponse]
	getMember    *connect.Client[api.GetMemberRequest, api.GetMemberResponse]
	listMembers  *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	updateMember *connect.Client[api.UpdateMemberRequest, api.UpdateMemberResponse]
	deleteMember *connect.Client[api.DeleteMemberRequest, api.DeleteMemberResponse]
}

func (c *memberServiceClient) CreateMember(ctx context.Context, req *connect.Request[api.CreateMemberRequest]) (*connect.Response[api.CreateMemberResponse], error) {
	return c.createMember.CallUnary(ctx, req)
}

func (c *memberServiceClient) GetMember(ctx context.Context, req *connect.Request[api.GetMemberRequest]) (*connect.Response[api.GetMemberResponse], error) {
	return c.getMember.CallUnary(ctx, req)
}

func (c *memberServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *memberServiceClient) UpdateMember(ctx context.Context, req *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error) {
	return c.updateMember.CallUnary(ctx, req)
}

func (c *memberServiceClient) DeleteMember(ctx context.Context, req *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error) {
	return c.deleteMember.CallUnary(ctx, req)
}
