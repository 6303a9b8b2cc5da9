package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/internal/catalog"
	"github.com/mmynk/creaturemap/internal/middleware"
	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/internal/storage"
	"github.com/mmynk/creaturemap/pkg/api"
)

// PreferencesService implements the Connect PreferencesService.
type PreferencesService struct {
	store storage.Store
}

// NewPreferencesService creates a new PreferencesService.
func NewPreferencesService(store storage.Store) *PreferencesService {
	return &PreferencesService{store: store}
}

// GetPreferences returns the caller's settings, creating defaults on first use.
func (s *PreferencesService) GetPreferences(ctx context.Context, req *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.PreferencesResponse], error) {
	return s.respond(ctx, middleware.Owner(ctx))
}

// SelectTab stores the last selected tab.
func (s *PreferencesService) SelectTab(ctx context.Context, req *connect.Request[api.SelectTabRequest]) (*connect.Response[api.PreferencesResponse], error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	if req.Msg.Index < 0 || req.Msg.Index >= len(categories) {
		return nil, storageError(fmt.Errorf("%w: %d", catalog.ErrInvalidTab, req.Msg.Index))
	}

	owner := middleware.Owner(ctx)
	if _, err := s.store.UpdateLastTab(ctx, owner, req.Msg.Index); err != nil {
		slog.Error("SelectTab failed", "owner", owner, "index", req.Msg.Index, "error", err)
		return nil, storageError(err)
	}
	return s.respond(ctx, owner)
}

// SetMapMode stores the map rendering.
func (s *PreferencesService) SetMapMode(ctx context.Context, req *connect.Request[api.SetMapModeRequest]) (*connect.Response[api.PreferencesResponse], error) {
	mode, err := models.ParseMapMode(req.Msg.MapMode)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	owner := middleware.Owner(ctx)
	if _, err := s.store.UpdateMapMode(ctx, owner, mode); err != nil {
		slog.Error("SetMapMode failed", "owner", owner, "map_mode", mode, "error", err)
		return nil, storageError(err)
	}
	return s.respond(ctx, owner)
}

func (s *PreferencesService) respond(ctx context.Context, owner string) (*connect.Response[api.PreferencesResponse], error) {
	prefs, err := s.store.GetPreferences(ctx, owner)
	if err != nil {
		slog.Error("GetPreferences failed", "owner", owner, "error", err)
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.PreferencesResponse{Preferences: toPreferences(prefs)}), nil
}
