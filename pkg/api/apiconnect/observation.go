package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/pkg/api"
)

// ObservationServiceName is the fully-qualified name of the ObservationService service.
const ObservationServiceName = "creaturemap.v1.ObservationService"

const (
	ObservationServiceListObservationsProcedure  = "/creaturemap.v1.ObservationService/ListObservations"
	ObservationServiceWatchObservationsProcedure = "/creaturemap.v1.ObservationService/WatchObservations"
	ObservationServiceDeleteObservationProcedure = "/creaturemap.v1.ObservationService/DeleteObservation"
)

// ObservationServiceHandler is implemented by the server.
type ObservationServiceHandler interface {
	ListObservations(context.Context, *connect.Request[api.ListObservationsRequest]) (*connect.Response[api.ListObservationsResponse], error)
	WatchObservations(context.Context, *connect.Request[api.WatchObservationsRequest], *connect.ServerStream[api.WatchObservationsResponse]) error
	DeleteObservation(context.Context, *connect.Request[api.DeleteObservationRequest]) (*connect.Response[api.DeleteObservationResponse], error)
}

// NewObservationServiceHandler builds an HTTP handler from the service implementation.
func NewObservationServiceHandler(svc ObservationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ObservationServiceName + "/", serviceMux{
		ObservationServiceListObservationsProcedure:  connect.NewUnaryHandler(ObservationServiceListObservationsProcedure, svc.ListObservations, opts...),
		ObservationServiceWatchObservationsProcedure: connect.NewServerStreamHandler(ObservationServiceWatchObservationsProcedure, svc.WatchObservations, opts...),
		ObservationServiceDeleteObservationProcedure: connect.NewUnaryHandler(ObservationServiceDeleteObservationProcedure, svc.DeleteObservation, opts...),
	}
}

// ObservationServiceClient is a client for the ObservationService service.
type ObservationServiceClient interface {
	ListObservations(context.Context, *connect.Request[api.ListObservationsRequest]) (*connect.Response[api.ListObservationsResponse], error)
	WatchObservations(context.Context, *connect.Request[api.WatchObservationsRequest]) (*connect.ServerStreamForClient[api.WatchObservationsResponse], error)
	DeleteObservation(context.Context, *connect.Request[api.DeleteObservationRequest]) (*connect.Response[api.DeleteObservationResponse], error)
}

// NewObservationServiceClient constructs a client for the ObservationService service.
func NewObservationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ObservationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &observationServiceClient{
		list:   connect.NewClient[api.ListObservationsRequest, api.ListObservationsResponse](httpClient, baseURL+ObservationServiceListObservationsProcedure, opts...),
		watch:  connect.NewClient[api.WatchObservationsRequest, api.WatchObservationsResponse](httpClient, baseURL+ObservationServiceWatchObservationsProcedure, opts...),
		delete: connect.NewClient[api.DeleteObservationRequest, api.DeleteObservationResponse](httpClient, baseURL+ObservationServiceDeleteObservationProcedure, opts...),
	}
}

type observationServiceClient struct {
	list   *connect.Client[api.ListObservationsRequest, api.ListObservationsResponse]
	watch  *connect.Client[api.WatchObservationsRequest, api.WatchObservationsResponse]
	delete *connect.Client[api.DeleteObservationRequest, api.DeleteObservationResponse]
}

func (c *observationServiceClient) ListObservations(ctx context.Context, req *connect.Request[api.ListObservationsRequest]) (*connect.Response[api.ListObservationsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *observationServiceClient) WatchObservations(ctx context.Context, req *connect.Request[api.WatchObservationsRequest]) (*connect.ServerStreamForClient[api.WatchObservationsResponse], error) {
	return c.watch.CallServerStream(ctx, req)
}

func (c *observationServiceClient) DeleteObservation(ctx context.Context, req *connect.Request[api.DeleteObservationRequest]) (*connect.Response[api.DeleteObservationResponse], error) {
	return c.delete.CallUnary(ctx, req)
}
