package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/pkg/api"
)

// CatalogServiceName is the fully-qualified name of the CatalogService service.
const CatalogServiceName = "creaturemap.v1.CatalogService"

const (
	CatalogServiceListCategoriesProcedure = "/creaturemap.v1.CatalogService/ListCategories"
	CatalogServiceListCreaturesProcedure  = "/creaturemap.v1.CatalogService/ListCreatures"
	CatalogServiceWatchCreaturesProcedure = "/creaturemap.v1.CatalogService/WatchCreatures"
	CatalogServiceBrowseProcedure         = "/creaturemap.v1.CatalogService/Browse"
	CatalogServiceCreateCreatureProcedure = "/creaturemap.v1.CatalogService/CreateCreature"
	CatalogServiceUpdateCreatureProcedure = "/creaturemap.v1.CatalogService/UpdateCreature"
	CatalogServiceDeleteCreatureProcedure = "/creaturemap.v1.CatalogService/DeleteCreature"
)

// CatalogServiceHandler is implemented by the server.
type CatalogServiceHandler interface {
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	ListCreatures(context.Context, *connect.Request[api.ListCreaturesRequest]) (*connect.Response[api.ListCreaturesResponse], error)
	WatchCreatures(context.Context, *connect.Request[api.WatchCreaturesRequest], *connect.ServerStream[api.WatchCreaturesResponse]) error
	Browse(context.Context, *connect.Request[api.BrowseRequest], *connect.ServerStream[api.BrowseResponse]) error
	CreateCreature(context.Context, *connect.Request[api.CreateCreatureRequest]) (*connect.Response[api.CreateCreatureResponse], error)
	UpdateCreature(context.Context, *connect.Request[api.UpdateCreatureRequest]) (*connect.Response[api.UpdateCreatureResponse], error)
	DeleteCreature(context.Context, *connect.Request[api.DeleteCreatureRequest]) (*connect.Response[api.DeleteCreatureResponse], error)
}

// NewCatalogServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + CatalogServiceName + "/", serviceMux{
		CatalogServiceListCategoriesProcedure: connect.NewUnaryHandler(CatalogServiceListCategoriesProcedure, svc.ListCategories, opts...),
		CatalogServiceListCreaturesProcedure:  connect.NewUnaryHandler(CatalogServiceListCreaturesProcedure, svc.ListCreatures, opts...),
		CatalogServiceWatchCreaturesProcedure: connect.NewServerStreamHandler(CatalogServiceWatchCreaturesProcedure, svc.WatchCreatures, opts...),
		CatalogServiceBrowseProcedure:         connect.NewServerStreamHandler(CatalogServiceBrowseProcedure, svc.Browse, opts...),
		CatalogServiceCreateCreatureProcedure: connect.NewUnaryHandler(CatalogServiceCreateCreatureProcedure, svc.CreateCreature, opts...),
		CatalogServiceUpdateCreatureProcedure: connect.NewUnaryHandler(CatalogServiceUpdateCreatureProcedure, svc.UpdateCreature, opts...),
		CatalogServiceDeleteCreatureProcedure: connect.NewUnaryHandler(CatalogServiceDeleteCreatureProcedure, svc.DeleteCreature, opts...),
	}
}

// CatalogServiceClient is a client for the CatalogService service.
type CatalogServiceClient interface {
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	ListCreatures(context.Context, *connect.Request[api.ListCreaturesRequest]) (*connect.Response[api.ListCreaturesResponse], error)
	WatchCreatures(context.Context, *connect.Request[api.WatchCreaturesRequest]) (*connect.ServerStreamForClient[api.WatchCreaturesResponse], error)
	Browse(context.Context, *connect.Request[api.BrowseRequest]) (*connect.ServerStreamForClient[api.BrowseResponse], error)
	CreateCreature(context.Context, *connect.Request[api.CreateCreatureRequest]) (*connect.Response[api.CreateCreatureResponse], error)
	UpdateCreature(context.Context, *connect.Request[api.UpdateCreatureRequest]) (*connect.Response[api.UpdateCreatureResponse], error)
	DeleteCreature(context.Context, *connect.Request[api.DeleteCreatureRequest]) (*connect.Response[api.DeleteCreatureResponse], error)
}

// NewCatalogServiceClient constructs a client for the CatalogService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CatalogServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &catalogServiceClient{
		listCategories: connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+CatalogServiceListCategoriesProcedure, opts...),
		listCreatures:  connect.NewClient[api.ListCreaturesRequest, api.ListCreaturesResponse](httpClient, baseURL+CatalogServiceListCreaturesProcedure, opts...),
		watchCreatures: connect.NewClient[api.WatchCreaturesRequest, api.WatchCreaturesResponse](httpClient, baseURL+CatalogServiceWatchCreaturesProcedure, opts...),
		browse:         connect.NewClient[api.BrowseRequest, api.BrowseResponse](httpClient, baseURL+CatalogServiceBrowseProcedure, opts...),
		createCreature: connect.NewClient[api.CreateCreatureRequest, api.CreateCreatureResponse](httpClient, baseURL+CatalogServiceCreateCreatureProcedure, opts...),
		updateCreature: connect.NewClient[api.UpdateCreatureRequest, api.UpdateCreatureResponse](httpClient, baseURL+CatalogServiceUpdateCreatureProcedure, opts...),
		deleteCreature: connect.NewClient[api.DeleteCreatureRequest, api.DeleteCreatureResponse](httpClient, baseURL+CatalogServiceDeleteCreatureProcedure, opts...),
	}
}

type catalogServiceClient struct {
	listCategories *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
	listCreatures  *connect.Client[api.ListCreaturesRequest, api.ListCreaturesResponse]
	watchCreatures *connect.Client[api.WatchCreaturesRequest, api.WatchCreaturesResponse]
	browse         *connect.Client[api.BrowseRequest, api.BrowseResponse]
	createCreature *connect.Client[api.CreateCreatureRequest, api.CreateCreatureResponse]
	updateCreature *connect.Client[api.UpdateCreatureRequest, api.UpdateCreatureResponse]
	deleteCreature *connect.Client[api.DeleteCreatureRequest, api.DeleteCreatureResponse]
}

func (c *catalogServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *catalogServiceClient) ListCreatures(ctx context.Context, req *connect.Request[api.ListCreaturesRequest]) (*connect.Response[api.ListCreaturesResponse], error) {
	return c.listCreatures.CallUnary(ctx, req)
}

func (c *catalogServiceClient) WatchCreatures(ctx context.Context, req *connect.Request[api.WatchCreaturesRequest]) (*connect.ServerStreamForClient[api.WatchCreaturesResponse], error) {
	return c.watchCreatures.CallServerStream(ctx, req)
}

func (c *catalogServiceClient) Browse(ctx context.Context, req *connect.Request[api.BrowseRequest]) (*connect.ServerStreamForClient[api.BrowseResponse], error) {
	return c.browse.CallServerStream(ctx, req)
}

func (c *catalogServiceClient) CreateCreature(ctx context.Context, req *connect.Request[api.CreateCreatureRequest]) (*connect.Response[api.CreateCreatureResponse], error) {
	return c.createCreature.CallUnary(ctx, req)
}

func (c *catalogServiceClient) UpdateCreature(ctx context.Context, req *connect.Request[api.UpdateCreatureRequest]) (*connect.Response[api.UpdateCreatureResponse], error) {
	return c.updateCreature.CallUnary(ctx, req)
}

func (c *catalogServiceClient) DeleteCreature(ctx context.Context, req *connect.Request[api.DeleteCreatureRequest]) (*connect.Response[api.DeleteCreatureResponse], error) {
	return c.deleteCreature.CallUnary(ctx, req)
}
