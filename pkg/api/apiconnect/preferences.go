package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/pkg/api"
)

// PreferencesServiceName is the fully-qualified name of the PreferencesService service.
const PreferencesServiceName = "creaturemap.v1.PreferencesService"

const (
	PreferencesServiceGetPreferencesProcedure = "/creaturemap.v1.PreferencesService/GetPreferences"
	PreferencesServiceSelectTabProcedure      = "/creaturemap.v1.PreferencesService/SelectTab"
	PreferencesServiceSetMapModeProcedure     = "/creaturemap.v1.PreferencesService/SetMapMode"
)

// PreferencesServiceHandler is implemented by the server.
type PreferencesServiceHandler interface {
	GetPreferences(context.Context, *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.PreferencesResponse], error)
	SelectTab(context.Context, *connect.Request[api.SelectTabRequest]) (*connect.Response[api.PreferencesResponse], error)
	SetMapMode(context.Context, *connect.Request[api.SetMapModeRequest]) (*connect.Response[api.PreferencesResponse], error)
}

// NewPreferencesServiceHandler builds an HTTP handler from the service implementation.
func NewPreferencesServiceHandler(svc PreferencesServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + PreferencesServiceName + "/", serviceMux{
		PreferencesServiceGetPreferencesProcedure: connect.NewUnaryHandler(PreferencesServiceGetPreferencesProcedure, svc.GetPreferences, opts...),
		PreferencesServiceSelectTabProcedure:      connect.NewUnaryHandler(PreferencesServiceSelectTabProcedure, svc.SelectTab, opts...),
		PreferencesServiceSetMapModeProcedure:     connect.NewUnaryHandler(PreferencesServiceSetMapModeProcedure, svc.SetMapMode, opts...),
	}
}

// PreferencesServiceClient is a client for the PreferencesService service.
type PreferencesServiceClient interface {
	GetPreferences(context.Context, *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.PreferencesResponse], error)
	SelectTab(context.Context, *connect.Request[api.SelectTabRequest]) (*connect.Response[api.PreferencesResponse], error)
	SetMapMode(context.Context, *connect.Request[api.SetMapModeRequest]) (*connect.Response[api.PreferencesResponse], error)
}

// NewPreferencesServiceClient constructs a client for the PreferencesService service.
func NewPreferencesServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PreferencesServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &preferencesServiceClient{
		getPreferences: connect.NewClient[api.GetPreferencesRequest, api.PreferencesResponse](httpClient, baseURL+PreferencesServiceGetPreferencesProcedure, opts...),
		selectTab:      connect.NewClient[api.SelectTabRequest, api.PreferencesResponse](httpClient, baseURL+PreferencesServiceSelectTabProcedure, opts...),
		setMapMode:     connect.NewClient[api.SetMapModeRequest, api.PreferencesResponse](httpClient, baseURL+PreferencesServiceSetMapModeProcedure, opts...),
	}
}

type preferencesServiceClient struct {
	getPreferences *connect.Client[api.GetPreferencesRequest, api.PreferencesResponse]
	selectTab      *connect.Client[api.SelectTabRequest, api.PreferencesResponse]
	setMapMode     *connect.Client[api.SetMapModeRequest, api.PreferencesResponse]
}

func (c *preferencesServiceClient) GetPreferences(ctx context.Context, req *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.PreferencesResponse], error) {
	return c.getPreferences.CallUnary(ctx, req)
}

func (c *preferencesServiceClient) SelectTab(ctx context.Context, req *connect.Request[api.SelectTabRequest]) (*connect.Response[api.PreferencesResponse], error) {
	return c.selectTab.CallUnary(ctx, req)
}

func (c *preferencesServiceClient) SetMapMode(ctx context.Context, req *connect.Request[api.SetMapModeRequest]) (*connect.Response[api.PreferencesResponse], error) {
	return c.setMapMode.CallUnary(ctx, req)
}
