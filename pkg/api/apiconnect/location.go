package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/pkg/api"
)

// LocationServiceName is the fully-qualified name of the LocationService service.
const LocationServiceName = "creaturemap.v1.LocationService"

const (
	LocationServiceReportProcedure = "/creaturemap.v1.LocationService/Report"
	LocationServiceWatchProcedure  = "/creaturemap.v1.LocationService/Watch"
)

// LocationServiceHandler is implemented by the server.
type LocationServiceHandler interface {
	Report(context.Context, *connect.Request[api.ReportLocationRequest]) (*connect.Response[api.ReportLocationResponse], error)
	Watch(context.Context, *connect.Request[api.WatchLocationRequest], *connect.ServerStream[api.LocationUpdate]) error
}

// NewLocationServiceHandler builds an HTTP handler from the service implementation.
func NewLocationServiceHandler(svc LocationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + LocationServiceName + "/", serviceMux{
		LocationServiceReportProcedure: connect.NewUnaryHandler(LocationServiceReportProcedure, svc.Report, opts...),
		LocationServiceWatchProcedure:  connect.NewServerStreamHandler(LocationServiceWatchProcedure, svc.Watch, opts...),
	}
}

// LocationServiceClient is a client for the LocationService service.
type LocationServiceClient interface {
	Report(context.Context, *connect.Request[api.ReportLocationRequest]) (*connect.Response[api.ReportLocationResponse], error)
	Watch(context.Context, *connect.Request[api.WatchLocationRequest]) (*connect.ServerStreamForClient[api.LocationUpdate], error)
}

// NewLocationServiceClient constructs a client for the LocationService service.
func NewLocationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LocationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &locationServiceClient{
		report: connect.NewClient[api.ReportLocationRequest, api.ReportLocationResponse](httpClient, baseURL+LocationServiceReportProcedure, opts...),
		watch:  connect.NewClient[api.WatchLocationRequest, api.LocationUpdate](httpClient, baseURL+LocationServiceWatchProcedure, opts...),
	}
}

type locationServiceClient struct {
	report *connect.Client[api.ReportLocationRequest, api.ReportLocationResponse]
	watch  *connect.Client[api.WatchLocationRequest, api.LocationUpdate]
}

func (c *locationServiceClient) Report(ctx context.Context, req *connect.Request[api.ReportLocationRequest]) (*connect.Response[api.ReportLocationResponse], error) {
	return c.report.CallUnary(ctx, req)
}

func (c *locationServiceClient) Watch(ctx context.Context, req *connect.Request[api.WatchLocationRequest]) (*connect.ServerStreamForClient[api.LocationUpdate], error) {
	return c.watch.CallServerStream(ctx, req)
}
