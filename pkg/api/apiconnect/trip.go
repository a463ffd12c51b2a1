package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// TripServiceName is the fully-qualified name of the TripService.
const TripServiceName = "tripsplit.v1.TripService"

const (
	TripServiceCreateTripProcedure          = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure             = "/tripsplit.v1.TripService/GetTrip"
	TripServiceGetTripByInviteCodeProcedure = "/tripsplit.v1.TripService/GetTripByInviteCode"
	TripServiceListTripsProcedure           = "/tripsplit.v1.TripService/ListTrips"
	TripServiceUpdateTripProcedure          = "/tripsplit.v1.TripService/UpdateTrip"
	TripServiceDeleteTripProcedure          = "/tripsplit.v1.TripService/DeleteTrip"
)

// TripServiceHandler is implemented by the server side of the TripService.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	GetTripByInviteCode(context.Context, *connect.Request[api.GetTripByInviteCodeRequest]) (*connect.Response[api.GetTripByInviteCodeResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serviceHandler(TripServiceName,
		unary(TripServiceCreateTripProcedure, svc.CreateTrip, opts),
		unary(TripServiceGetTripProcedure, svc.GetTrip, opts),
		unary(TripServiceGetTripByInviteCodeProcedure, svc.GetTripByInviteCode, opts),
		unary(TripServiceListTripsProcedure, svc.ListTrips, opts),
		unary(TripServiceUpdateTripProcedure, svc.UpdateTrip, opts),
		unary(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts),
	)
}

// TripServiceClient is a client for the TripService.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	GetTripByInviteCode(context.Context, *connect.Request[api.GetTripByInviteCodeRequest]) (*connect.Response[api.GetTripByInviteCodeResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error)
}

// NewTripServiceClient constructs a client for the TripService. The baseURL is
// the server root, e.g. http://localhost:8080.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	opts = clientOptions(opts)
	return &tripServiceClient{
		createTrip:          newClient[api.CreateTripRequest, api.CreateTripResponse](httpClient, baseURL, TripServiceCreateTripProcedure, opts),
		getTrip:             newClient[api.GetTripRequest, api.GetTripResponse](httpClient, baseURL, TripServiceGetTripProcedure, opts),
		getTripByInviteCode: newClient[api.GetTripByInviteCodeRequest, api.GetTripByInviteCodeResponse](httpClient, baseURL, TripServiceGetTripByInviteCodeProcedure, opts),
		listTrips:           newClient[api.ListTripsRequest, api.ListTripsResponse](httpClient, baseURL, TripServiceListTripsProcedure, opts),
		updateTrip:          newClient[api.UpdateTripRequest, api.UpdateTripResponse](httpClient, baseURL, TripServiceUpdateTripProcedure, opts),
		deleteTrip:          newClient[api.DeleteTripRequest, api.DeleteTripResponse](httpClient, baseURL, TripServiceDeleteTripProcedure, opts),
	}
}

type tripServiceClient struct {
	createTrip          *connect.Client[api.CreateTripRequest, api.CreateTripResponse]
	getTrip             *connect.Client[api.GetTripRequest, api.GetTripResponse]
	getTripByInviteCode *connect.Client[api.GetTripByInviteCodeRequest, api.GetTripByInviteCodeResponse]
	listTrips           *connect.Client[api.ListTripsRequest, api.ListTripsResponse]
	updateTrip          *connect.Client[api.UpdateTripRequest, api.UpdateTripResponse]
	deleteTrip          *connect.Client[api.DeleteTripRequest, api.DeleteTripResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTripByInviteCode(ctx context.Context, req *connect.Request[api.GetTripByInviteCodeRequest]) (*connect.Response[api.GetTripByInviteCodeResponse], error) {
	return c.getTripByInviteCode.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateTrip(ctx context.Context, req *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	return c.updateTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}
