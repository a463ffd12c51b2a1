package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService.
const SettlementServiceName = "tripsplit.v1.SettlementService"

const SettlementServiceGetSettlementReportProcedure = "/tripsplit.v1.SettlementService/GetSettlementReport"

// SettlementServiceHandler is implemented by the server side of the SettlementService.
type SettlementServiceHandler interface {
	GetSettlementReport(context.Context, *connect.Request[api.GetSettlementReportRequest]) (*connect.Response[api.GetSettlementReportResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serviceHandler(SettlementServiceName,
		unary(SettlementServiceGetSettlementReportProcedure, svc.GetSettlementReport, opts),
	)
}

// SettlementServiceClient is a client for the SettlementService.
type SettlementServiceClient interface {
	GetSettlementReport(context.Context, *connect.Request[api.GetSettlementReportRequest]) (*connect.Response[api.GetSettlementReportResponse], error)
}

// NewSettlementServiceClient constructs a client for the SettlementService.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	return &settlementServiceClient{
		getSettlementReport: newClient[api.GetSettlementReportRequest, api.GetSettlementReportResponse](
			httpClient, baseURL, SettlementServiceGetSettlementReportProcedure, clientOptions(opts)),
	}
}

type settlementServiceClient struct {
	getSettlementReport *connect.Client[api.GetSettlementReportRequest, api.GetSettlementReportResponse]
}

func (c *settlementServiceClient) GetSettlementReport(ctx context.Context, req *connect.Request[api.GetSettlementReportRequest]) (*connect.Response[api.GetSettlementReportResponse], error) {
	return c.getSettlementReport.CallUnary(ctx, req)
}
