package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService.
const ExpenseServiceName = "tripsplit.v1.ExpenseService"

const (
	ExpenseServiceCreateExpenseProcedure     = "/tripsplit.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure        = "/tripsplit.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure      = "/tripsplit.v1.ExpenseService/ListExpenses"
	ExpenseServiceUpdateExpenseProcedure     = "/tripsplit.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure     = "/tripsplit.v1.ExpenseService/DeleteExpense"
	ExpenseServiceGetTripStatisticsProcedure = "/tripsplit.v1.ExpenseService/GetTripStatistics"
)

// ExpenseServiceHandler is implemented by the server side of the ExpenseService.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetTripStatistics(context.Context, *connect.Request[api.GetTripStatisticsRequest]) (*connect.Response[api.GetTripStatisticsResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serviceHandler(ExpenseServiceName,
		unary(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts),
		unary(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts),
		unary(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts),
		unary(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts),
		unary(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts),
		unary(ExpenseServiceGetTripStatisticsProcedure, svc.GetTripStatistics, opts),
	)
}

// ExpenseServiceClient is a client for the ExpenseService.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetTripStatistics(context.Context, *connect.Request[api.GetTripStatisticsRequest]) (*connect.Response[api.GetTripStatisticsResponse], error)
}

// NewExpenseServiceClient constructs a client for the ExpenseService.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	opts = clientOptions(opts)
	return &expenseServiceClient{
		createExpense:     newClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL, ExpenseServiceCreateExpenseProcedure, opts),
		getExpense:        newClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL, ExpenseServiceGetExpenseProcedure, opts),
		listExpenses:      newClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL, ExpenseServiceListExpensesProcedure, opts),
		updateExpense:     newClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL, ExpenseServiceUpdateExpenseProcedure, opts),
		deleteExpense:     newClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL, ExpenseServiceDeleteExpenseProcedure, opts),
		getTripStatistics: newClient[api.GetTripStatisticsRequest, api.GetTripStatisticsResponse](httpClient, baseURL, ExpenseServiceGetTripStatisticsProcedure, opts),
	}
}

type expenseServiceClient struct {
	createExpense     *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	getExpense        *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listExpenses      *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	updateExpense     *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense     *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	getTripStatistics *connect.Client[api.GetTripStatisticsRequest, api.GetTripStatisticsResponse]
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetTripStatistics(ctx context.Context, req *connect.Request[api.GetTripStatisticsRequest]) (*connect.Response[api.GetTripStatisticsResponse], error) {
	return c.getTripStatistics.CallUnary(ctx, req)
}
