package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/internal/catalog"
	"github.com/mmynk/creaturemap/internal/metrics"
	"github.com/mmynk/creaturemap/internal/middleware"
	"github.com/mmynk/creaturemap/internal/storage"
	"github.com/mmynk/creaturemap/pkg/api"
)

// CatalogService implements the Connect CatalogService: the category tabs,
// the creature lists and the creature form.
type CatalogService struct {
	store  storage.Store
	editor *catalog.Editor
}

// NewCatalogService creates a new CatalogService with the given storage backend.
func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store, editor: catalog.NewEditor(store)}
}

// ListCategories returns the tabs in display order.
func (s *CatalogService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		slog.Error("ListCategories failed", "error", err)
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: toCategories(categories)}), nil
}

// ListCreatures returns one category's creatures.
func (s *CatalogService) ListCreatures(ctx context.Context, req *connect.Request[api.ListCreaturesRequest]) (*connect.Response[api.ListCreaturesResponse], error) {
	creatures, err := s.store.ListCreatures(ctx, req.Msg.CategoryID)
	if err != nil {
		slog.Error("ListCreatures failed", "category_id", req.Msg.CategoryID, "error", err)
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.ListCreaturesResponse{Creatures: toCreatures(creatures)}), nil
}

// WatchCreatures streams a category's creature list until the client goes away.
func (s *CatalogService) WatchCreatures(ctx context.Context, req *connect.Request[api.WatchCreaturesRequest], stream *connect.ServerStream[api.WatchCreaturesResponse]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, err := s.store.WatchCreatures(ctx, req.Msg.CategoryID)
	if err != nil {
		return storageError(err)
	}

	metrics.LiveStreams.WithLabelValues("creatures").Inc()
	defer metrics.LiveStreams.WithLabelValues("creatures").Dec()

	for list := range updates {
		if err := stream.Send(&api.WatchCreaturesResponse{Creatures: toCreatures(list)}); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// Browse drives the list screen: the selected tab, edit mode and the live
// creature list. Switching tabs is a new Browse call with TabIndex set.
func (s *CatalogService) Browse(ctx context.Context, req *connect.Request[api.BrowseRequest], stream *connect.ServerStream[api.BrowseResponse]) error {
	owner := middleware.Owner(ctx)
	selector := catalog.NewSelector(s.store, s.store, owner)
	defer selector.Close()

	var err error
	if req.Msg.TabIndex != nil {
		err = selector.StartAt(ctx, *req.Msg.TabIndex)
	} else {
		err = selector.Start(ctx)
	}
	if err != nil {
		slog.Warn("Browse start failed", "owner", owner, "error", err)
		return storageError(err)
	}
	if req.Msg.EditMode {
		selector.ToggleEditMode()
	}

	metrics.LiveStreams.WithLabelValues("browse").Inc()
	defer metrics.LiveStreams.WithLabelValues("browse").Dec()

	categories := toCategories(selector.Categories())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-selector.Updates():
			if !ok {
				return nil
			}
			err := stream.Send(&api.BrowseResponse{
				TabIndex:   snap.Index,
				Category:   toCategory(snap.Category),
				Categories: categories,
				EditMode:   snap.EditMode,
				Creatures:  toCreatures(snap.Creatures),
			})
			if err != nil {
				return err
			}
		}
	}
}

// CreateCreature adds a creature to a category.
func (s *CatalogService) CreateCreature(ctx context.Context, req *connect.Request[api.CreateCreatureRequest]) (*connect.Response[api.CreateCreatureResponse], error) {
	creature, err := s.editor.Save(ctx, req.Msg.CategoryID, req.Msg.Name, req.Msg.Memo)
	if err != nil {
		slog.Warn("CreateCreature failed", "category_id", req.Msg.CategoryID, "error", err)
		return nil, storageError(err)
	}

	slog.Info("Creature created", "creature_id", creature.ID, "category_id", creature.CategoryID)
	return connect.NewResponse(&api.CreateCreatureResponse{Creature: toCreature(*creature)}), nil
}

// UpdateCreature renames a creature and replaces its memo.
func (s *CatalogService) UpdateCreature(ctx context.Context, req *connect.Request[api.UpdateCreatureRequest]) (*connect.Response[api.UpdateCreatureResponse], error) {
	if err := s.editor.Update(ctx, req.Msg.ID, req.Msg.Name, req.Msg.Memo); err != nil {
		slog.Warn("UpdateCreature failed", "creature_id", req.Msg.ID, "error", err)
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.UpdateCreatureResponse{}), nil
}

// DeleteCreature removes a creature with its observations.
func (s *CatalogService) DeleteCreature(ctx context.Context, req *connect.Request[api.DeleteCreatureRequest]) (*connect.Response[api.DeleteCreatureResponse], error) {
	if err := s.editor.Delete(ctx, req.Msg.ID); err != nil {
		slog.Warn("DeleteCreature failed", "creature_id", req.Msg.ID, "error", err)
		return nil, storageError(err)
	}

	slog.Info("Creature deleted", "creature_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteCreatureResponse{}), nil
}
