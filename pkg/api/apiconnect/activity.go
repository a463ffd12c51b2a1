package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// ActivityServiceName is the fully-qualified name of the ActivityService.
const ActivityServiceName = "tripsplit.v1.ActivityService"

const (
	ActivityServiceCreateActivityProcedure = "/tripsplit.v1.ActivityService/CreateActivity"
	ActivityServiceGetActivityProcedure    = "/tripsplit.v1.ActivityService/GetActivity"
	ActivityServiceListActivitiesProcedure = "/tripsplit.v1.ActivityService/ListActivities"
	ActivityServiceUpdateActivityProcedure = "/tripsplit.v1.ActivityService/UpdateActivity"
	ActivityServiceDeleteActivityProcedure = "/tripsplit.v1.ActivityService/DeleteActivity"
)

// ActivityServiceHandler is implemented by the server side of the ActivityService.
type ActivityServiceHandler interface {
	CreateActivity(context.Context, *connect.Request[api.CreateActivityRequest]) (*connect.Response[api.CreateActivityResponse], error)
	GetActivity(context.Context, *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error)
	ListActivities(context.Context, *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error)
	UpdateActivity(context.Context, *connect.Request[api.UpdateActivityRequest]) (*connect.Response[api.UpdateActivityResponse], error)
	DeleteActivity(context.Context, *connect.Request[api.DeleteActivityRequest]) (*connect.Response[api.DeleteActivityResponse], error)
}

// NewActivityServiceHandler builds an HTTP handler from the service implementation.
func NewActivityServiceHandler(svc ActivityServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serviceHandler(ActivityServiceName,
		unary(ActivityServiceCreateActivityProcedure, svc.CreateActivity, opts),
		unary(ActivityServiceGetActivityProcedure, svc.GetActivity, opts),
		unary(ActivityServiceListActivitiesProcedure, svc.ListActivities, opts),
		unary(ActivityServiceUpdateActivityProcedure, svc.UpdateActivity, opts),
		unary(ActivityServiceDeleteActivityProcedure, svc.DeleteActivity, opts),
	)
}

// ActivityServiceClient is a client for the ActivityService.
type ActivityServiceClient interface {
	CreateActivity(context.Context, *connect.Request[api.CreateActivityRequest]) (*connect.Response[api.CreateActivityResponse], error)
	GetActivity(context.Context, *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error)
	ListActivities(context.Context, *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error)
	UpdateActivity(context.Context, *connect.Request[api.UpdateActivityRequest]) (*connect.Response[api.UpdateActivityResponse], error)
	DeleteActivity(context.Context, *connect.Request[api.DeleteActivityRequest]) (*connect.Response[api.DeleteActivityResponse], error)
}

// NewActivityServiceClient constructs a client for the ActivityService.
func NewActivityServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ActivityServiceClient {
	opts = clientOptions(opts)
	return &activityServiceClient{
		createActivity: newClient[api.CreateActivityRequest, api.CreateActivityResponse](httpClient, baseURL, ActivityServiceCreateActivityProcedure, opts),
		getActivity:    newClient[api.GetActivityRequest, api.GetActivityResponse](httpClient, baseURL, ActivityServiceGetActivityProcedure, opts),
		listActivities: newClient[api.ListActivitiesRequest, api.ListActivitiesResponse](httpClient, baseURL, ActivityServiceListActivitiesProcedure, opts),
		updateActivity: newClient[api.UpdateActivityRequest, api.UpdateActivityResponse](httpClient, baseURL, ActivityServiceUpdateActivityProcedure, opts),
		deleteActivity: newClient[api.DeleteActivityRequest, api.DeleteActivityResponse](httpClient, baseURL, ActivityServiceDeleteActivityProcedure, opts),
	}
}

type activityServiceClient struct {
	createActivity *connect.Client[api.CreateActivityRequest, api.CreateActivityResponse]
	getActivity    *connect.Client[api.GetActivityRequest, api.GetActivityResponse]
	listActivities *connect.Client[api.ListActivitiesRequest, api.ListActivitiesResponse]
	updateActivity *connect.Client[api.UpdateActivityRequest, api.UpdateActivityResponse]
	deleteActivity *connect.Client[api.DeleteActivityRequest, api.DeleteActivityResponse]
}

func (c *activityServiceClient) CreateActivity(ctx context.Context, req *connect.Request[api.CreateActivityRequest]) (*connect.Response[api.CreateActivityResponse], error) {
	return c.createActivity.CallUnary(ctx, req)
}

func (c *activityServiceClient) GetActivity(ctx context.Context, req *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error) {
	return c.getActivity.CallUnary(ctx, req)
}

func (c *activityServiceClient) ListActivities(ctx context.Context, req *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	return c.listActivities.CallUnary(ctx, req)
}

func (c *activityServiceClient) UpdateActivity(ctx context.Context, req *connect.Request[api.UpdateActivityRequest]) (*connect.Response[api.UpdateActivityResponse], error) {
	return c.updateActivity.CallUnary(ctx, req)
}

func (c *activityServiceClient) DeleteActivity(ctx context.Context, req *connect.Request[api.DeleteActivityRequest]) (*connect.Response[api.DeleteActivityResponse], error) {
	return c.deleteActivity.CallUnary(ctx, req)
}
