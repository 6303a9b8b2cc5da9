package service

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/internal/location"
	"github.com/mmynk/creaturemap/internal/metrics"
	"github.com/mmynk/creaturemap/internal/middleware"
	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/pkg/api"
)

var errDeviceRequired = errors.New("device_id is required")

// LocationService implements the Connect LocationService: devices report
// fixes, map screens watch them.
type LocationService struct {
	tracker *location.Tracker
}

// NewLocationService creates a new LocationService.
func NewLocationService(tracker *location.Tracker) *LocationService {
	return &LocationService{tracker: tracker}
}

// Report records a device fix. Fixes faster than the tracker's interval
// are dropped and reported as not accepted.
func (s *LocationService) Report(ctx context.Context, req *connect.Request[api.ReportLocationRequest]) (*connect.Response[api.ReportLocationResponse], error) {
	if req.Msg.DeviceID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errDeviceRequired)
	}
	p := models.Point{Latitude: req.Msg.Latitude, Longitude: req.Msg.Longitude}
	if err := models.Validate(p); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	accepted := s.tracker.Report(middleware.Owner(ctx), req.Msg.DeviceID, location.Fix{Point: p, At: time.Now()})
	if accepted {
		metrics.LocationFixes.WithLabelValues("accepted").Inc()
	} else {
		metrics.LocationFixes.WithLabelValues("dropped").Inc()
	}
	return connect.NewResponse(&api.ReportLocationResponse{Accepted: accepted}), nil
}

// Watch streams a device's fixes, last-known first, while the map screen
// is active. Only devices reported by the caller are visible.
func (s *LocationService) Watch(ctx context.Context, req *connect.Request[api.WatchLocationRequest], stream *connect.ServerStream[api.LocationUpdate]) error {
	if req.Msg.DeviceID == "" {
		return connect.NewError(connect.CodeInvalidArgument, errDeviceRequired)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metrics.LiveStreams.WithLabelValues("location").Inc()
	defer metrics.LiveStreams.WithLabelValues("location").Dec()

	for fix := range s.tracker.Subscribe(ctx, middleware.Owner(ctx), req.Msg.DeviceID) {
		if err := stream.Send(toLocationUpdate(fix.Point, fix.At)); err != nil {
			return err
		}
	}
	return ctx.Err()
}
