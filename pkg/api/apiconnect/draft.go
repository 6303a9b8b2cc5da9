package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/pkg/api"
)

// DraftServiceName is the fully-qualified name of the DraftService service.
const DraftServiceName = "creaturemap.v1.DraftService"

const (
	DraftServiceStartDraftProcedure    = "/creaturemap.v1.DraftService/StartDraft"
	DraftServiceSetLocationProcedure   = "/creaturemap.v1.DraftService/SetLocation"
	DraftServiceSetCountProcedure      = "/creaturemap.v1.DraftService/SetCount"
	DraftServiceSetMemoProcedure       = "/creaturemap.v1.DraftService/SetMemo"
	DraftServiceSetDateProcedure       = "/creaturemap.v1.DraftService/SetDate"
	DraftServiceSetTimeProcedure       = "/creaturemap.v1.DraftService/SetTime"
	DraftServiceBeginEditProcedure     = "/creaturemap.v1.DraftService/BeginEdit"
	DraftServiceSubmitProcedure        = "/creaturemap.v1.DraftService/Submit"
	DraftServiceDeleteProcedure        = "/creaturemap.v1.DraftService/Delete"
	DraftServiceCancelProcedure        = "/creaturemap.v1.DraftService/Cancel"
	DraftServiceToggleMapModeProcedure = "/creaturemap.v1.DraftService/ToggleMapMode"
	DraftServiceDenyLocationProcedure  = "/creaturemap.v1.DraftService/DenyLocation"
	DraftServiceClearErrorProcedure    = "/creaturemap.v1.DraftService/ClearError"
	DraftServiceGetDraftProcedure      = "/creaturemap.v1.DraftService/GetDraft"
	DraftServiceEndDraftProcedure      = "/creaturemap.v1.DraftService/EndDraft"
)

// DraftServiceHandler is implemented by the server.
// Transitions return the session's new state; draft errors travel inside
// the state, not as RPC errors.
type DraftServiceHandler interface {
	StartDraft(context.Context, *connect.Request[api.StartDraftRequest]) (*connect.Response[api.DraftResponse], error)
	SetLocation(context.Context, *connect.Request[api.SetLocationRequest]) (*connect.Response[api.DraftResponse], error)
	SetCount(context.Context, *connect.Request[api.SetCountRequest]) (*connect.Response[api.DraftResponse], error)
	SetMemo(context.Context, *connect.Request[api.SetMemoRequest]) (*connect.Response[api.DraftResponse], error)
	SetDate(context.Context, *connect.Request[api.SetDateRequest]) (*connect.Response[api.DraftResponse], error)
	SetTime(context.Context, *connect.Request[api.SetTimeRequest]) (*connect.Response[api.DraftResponse], error)
	BeginEdit(context.Context, *connect.Request[api.BeginEditRequest]) (*connect.Response[api.DraftResponse], error)
	Submit(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	Delete(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	Cancel(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	ToggleMapMode(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	DenyLocation(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	ClearError(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	GetDraft(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	EndDraft(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.EndDraftResponse], error)
}

// NewDraftServiceHandler builds an HTTP handler from the service implementation.
func NewDraftServiceHandler(svc DraftServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + DraftServiceName + "/", serviceMux{
		DraftServiceStartDraftProcedure:    connect.NewUnaryHandler(DraftServiceStartDraftProcedure, svc.StartDraft, opts...),
		DraftServiceSetLocationProcedure:   connect.NewUnaryHandler(DraftServiceSetLocationProcedure, svc.SetLocation, opts...),
		DraftServiceSetCountProcedure:      connect.NewUnaryHandler(DraftServiceSetCountProcedure, svc.SetCount, opts...),
		DraftServiceSetMemoProcedure:       connect.NewUnaryHandler(DraftServiceSetMemoProcedure, svc.SetMemo, opts...),
		DraftServiceSetDateProcedure:       connect.NewUnaryHandler(DraftServiceSetDateProcedure, svc.SetDate, opts...),
		DraftServiceSetTimeProcedure:       connect.NewUnaryHandler(DraftServiceSetTimeProcedure, svc.SetTime, opts...),
		DraftServiceBeginEditProcedure:     connect.NewUnaryHandler(DraftServiceBeginEditProcedure, svc.BeginEdit, opts...),
		DraftServiceSubmitProcedure:        connect.NewUnaryHandler(DraftServiceSubmitProcedure, svc.Submit, opts...),
		DraftServiceDeleteProcedure:        connect.NewUnaryHandler(DraftServiceDeleteProcedure, svc.Delete, opts...),
		DraftServiceCancelProcedure:        connect.NewUnaryHandler(DraftServiceCancelProcedure, svc.Cancel, opts...),
		DraftServiceToggleMapModeProcedure: connect.NewUnaryHandler(DraftServiceToggleMapModeProcedure, svc.ToggleMapMode, opts...),
		DraftServiceDenyLocationProcedure:  connect.NewUnaryHandler(DraftServiceDenyLocationProcedure, svc.DenyLocation, opts...),
		DraftServiceClearErrorProcedure:    connect.NewUnaryHandler(DraftServiceClearErrorProcedure, svc.ClearError, opts...),
		DraftServiceGetDraftProcedure:      connect.NewUnaryHandler(DraftServiceGetDraftProcedure, svc.GetDraft, opts...),
		DraftServiceEndDraftProcedure:      connect.NewUnaryHandler(DraftServiceEndDraftProcedure, svc.EndDraft, opts...),
	}
}

// DraftServiceClient is a client for the DraftService service.
type DraftServiceClient interface {
	StartDraft(context.Context, *connect.Request[api.StartDraftRequest]) (*connect.Response[api.DraftResponse], error)
	SetLocation(context.Context, *connect.Request[api.SetLocationRequest]) (*connect.Response[api.DraftResponse], error)
	SetCount(context.Context, *connect.Request[api.SetCountRequest]) (*connect.Response[api.DraftResponse], error)
	SetMemo(context.Context, *connect.Request[api.SetMemoRequest]) (*connect.Response[api.DraftResponse], error)
	SetDate(context.Context, *connect.Request[api.SetDateRequest]) (*connect.Response[api.DraftResponse], error)
	SetTime(context.Context, *connect.Request[api.SetTimeRequest]) (*connect.Response[api.DraftResponse], error)
	BeginEdit(context.Context, *connect.Request[api.BeginEditRequest]) (*connect.Response[api.DraftResponse], error)
	Submit(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	Delete(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	Cancel(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	ToggleMapMode(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	DenyLocation(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	ClearError(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	GetDraft(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error)
	EndDraft(context.Context, *connect.Request[api.DraftRequest]) (*connect.Response[api.EndDraftResponse], error)
}

// NewDraftServiceClient constructs a client for the DraftService service.
func NewDraftServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DraftServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &draftServiceClient{
		startDraft:    connect.NewClient[api.StartDraftRequest, api.DraftResponse](httpClient, baseURL+DraftServiceStartDraftProcedure, opts...),
		setLocation:   connect.NewClient[api.SetLocationRequest, api.DraftResponse](httpClient, baseURL+DraftServiceSetLocationProcedure, opts...),
		setCount:      connect.NewClient[api.SetCountRequest, api.DraftResponse](httpClient, baseURL+DraftServiceSetCountProcedure, opts...),
		setMemo:       connect.NewClient[api.SetMemoRequest, api.DraftResponse](httpClient, baseURL+DraftServiceSetMemoProcedure, opts...),
		setDate:       connect.NewClient[api.SetDateRequest, api.DraftResponse](httpClient, baseURL+DraftServiceSetDateProcedure, opts...),
		setTime:       connect.NewClient[api.SetTimeRequest, api.DraftResponse](httpClient, baseURL+DraftServiceSetTimeProcedure, opts...),
		beginEdit:     connect.NewClient[api.BeginEditRequest, api.DraftResponse](httpClient, baseURL+DraftServiceBeginEditProcedure, opts...),
		submit:        connect.NewClient[api.DraftRequest, api.DraftResponse](httpClient, baseURL+DraftServiceSubmitProcedure, opts...),
		delete:        connect.NewClient[api.DraftRequest, api.DraftResponse](httpClient, baseURL+DraftServiceDeleteProcedure, opts...),
		cancel:        connect.NewClient[api.DraftRequest, api.DraftResponse](httpClient, baseURL+DraftServiceCancelProcedure, opts...),
		toggleMapMode: connect.NewClient[api.DraftRequest, api.DraftResponse](httpClient, baseURL+DraftServiceToggleMapModeProcedure, opts...),
		denyLocation:  connect.NewClient[api.DraftRequest, api.DraftResponse](httpClient, baseURL+DraftServiceDenyLocationProcedure, opts...),
		clearError:    connect.NewClient[api.DraftRequest, api.DraftResponse](httpClient, baseURL+DraftServiceClearErrorProcedure, opts...),
		getDraft:      connect.NewClient[api.DraftRequest, api.DraftResponse](httpClient, baseURL+DraftServiceGetDraftProcedure, opts...),
		endDraft:      connect.NewClient[api.DraftRequest, api.EndDraftResponse](httpClient, baseURL+DraftServiceEndDraftProcedure, opts...),
	}
}

type draftServiceClient struct {
	startDraft    *connect.Client[api.StartDraftRequest, api.DraftResponse]
	setLocation   *connect.Client[api.SetLocationRequest, api.DraftResponse]
	setCount      *connect.Client[api.SetCountRequest, api.DraftResponse]
	setMemo       *connect.Client[api.SetMemoRequest, api.DraftResponse]
	setDate       *connect.Client[api.SetDateRequest, api.DraftResponse]
	setTime       *connect.Client[api.SetTimeRequest, api.DraftResponse]
	beginEdit     *connect.Client[api.BeginEditRequest, api.DraftResponse]
	submit        *connect.Client[api.DraftRequest, api.DraftResponse]
	delete        *connect.Client[api.DraftRequest, api.DraftResponse]
	cancel        *connect.Client[api.DraftRequest, api.DraftResponse]
	toggleMapMode *connect.Client[api.DraftRequest, api.DraftResponse]
	denyLocation  *connect.Client[api.DraftRequest, api.DraftResponse]
	clearError    *connect.Client[api.DraftRequest, api.DraftResponse]
	getDraft      *connect.Client[api.DraftRequest, api.DraftResponse]
	endDraft      *connect.Client[api.DraftRequest, api.EndDraftResponse]
}

func (c *draftServiceClient) StartDraft(ctx context.Context, req *connect.Request[api.StartDraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.startDraft.CallUnary(ctx, req)
}

func (c *draftServiceClient) SetLocation(ctx context.Context, req *connect.Request[api.SetLocationRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.setLocation.CallUnary(ctx, req)
}

func (c *draftServiceClient) SetCount(ctx context.Context, req *connect.Request[api.SetCountRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.setCount.CallUnary(ctx, req)
}

func (c *draftServiceClient) SetMemo(ctx context.Context, req *connect.Request[api.SetMemoRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.setMemo.CallUnary(ctx, req)
}

func (c *draftServiceClient) SetDate(ctx context.Context, req *connect.Request[api.SetDateRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.setDate.CallUnary(ctx, req)
}

func (c *draftServiceClient) SetTime(ctx context.Context, req *connect.Request[api.SetTimeRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.setTime.CallUnary(ctx, req)
}

func (c *draftServiceClient) BeginEdit(ctx context.Context, req *connect.Request[api.BeginEditRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.beginEdit.CallUnary(ctx, req)
}

func (c *draftServiceClient) Submit(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.submit.CallUnary(ctx, req)
}

func (c *draftServiceClient) Delete(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

func (c *draftServiceClient) Cancel(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.cancel.CallUnary(ctx, req)
}

func (c *draftServiceClient) ToggleMapMode(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.toggleMapMode.CallUnary(ctx, req)
}

func (c *draftServiceClient) DenyLocation(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.denyLocation.CallUnary(ctx, req)
}

func (c *draftServiceClient) ClearError(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.clearError.CallUnary(ctx, req)
}

func (c *draftServiceClient) GetDraft(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.getDraft.CallUnary(ctx, req)
}

func (c *draftServiceClient) EndDraft(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.EndDraftResponse], error) {
	return c.endDraft.CallUnary(ctx, req)
}
