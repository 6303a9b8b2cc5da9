package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/internal/metrics"
	"github.com/mmynk/creaturemap/internal/storage"
	"github.com/mmynk/creaturemap/pkg/api"
)

// ObservationService implements the Connect ObservationService: the
// markers shown on a creature's map.
type ObservationService struct {
	store storage.ObservationStore
}

// NewObservationService creates a new ObservationService.
func NewObservationService(store storage.ObservationStore) *ObservationService {
	return &ObservationService{store: store}
}

// ListObservations returns a creature's observations oldest first.
func (s *ObservationService) ListObservations(ctx context.Context, req *connect.Request[api.ListObservationsRequest]) (*connect.Response[api.ListObservationsResponse], error) {
	list, err := s.store.ListObservations(ctx, req.Msg.CreatureID)
	if err != nil {
		slog.Error("ListObservations failed", "creature_id", req.Msg.CreatureID, "error", err)
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.ListObservationsResponse{Observations: toObservations(list)}), nil
}

// WatchObservations streams a creature's observations until the client goes away.
func (s *ObservationService) WatchObservations(ctx context.Context, req *connect.Request[api.WatchObservationsRequest], stream *connect.ServerStream[api.WatchObservationsResponse]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, err := s.store.WatchObservations(ctx, req.Msg.CreatureID)
	if err != nil {
		return storageError(err)
	}

	metrics.LiveStreams.WithLabelValues("observations").Inc()
	defer metrics.LiveStreams.WithLabelValues("observations").Dec()

	for list := range updates {
		if err := stream.Send(&api.WatchObservationsResponse{Observations: toObservations(list)}); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// DeleteObservation removes a marker directly, outside any draft.
func (s *ObservationService) DeleteObservation(ctx context.Context, req *connect.Request[api.DeleteObservationRequest]) (*connect.Response[api.DeleteObservationResponse], error) {
	n, err := s.store.DeleteObservation(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("DeleteObservation failed", "observation_id", req.Msg.ID, "error", err)
		return nil, storageError(err)
	}
	if n == 0 {
		return nil, storageError(fmt.Errorf("observation %d: %w", req.Msg.ID, storage.ErrNotFound))
	}
	return connect.NewResponse(&api.DeleteObservationResponse{}), nil
}
