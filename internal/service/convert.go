package service

import (
	"errors"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/internal/catalog"
	"github.com/mmynk/creaturemap/internal/draft"
	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/internal/storage"
	"github.com/mmynk/creaturemap/pkg/api"
)

// storageError maps gateway errors to Connect codes.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, catalog.ErrEmptyName), errors.Is(err, catalog.ErrUnknownCategory),
		errors.Is(err, catalog.ErrInvalidTab), models.IsValidationError(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toCategories(categories []models.Category) []api.Category {
	out := make([]api.Category, len(categories))
	for i, c := range categories {
		out[i] = toCategory(c)
	}
	return out
}

func toCategory(c models.Category) api.Category {
	return api.Category{ID: c.ID, Name: c.Name, DisplayOrder: c.DisplayOrder}
}

func toCreature(c models.Creature) api.Creature {
	return api.Creature{
		ID:             c.ID,
		CategoryID:     c.CategoryID,
		Name:           c.Name,
		ScientificName: c.ScientificName,
		Memo:           c.Memo,
	}
}

func toCreatures(creatures []models.Creature) []api.Creature {
	out := make([]api.Creature, len(creatures))
	for i, c := range creatures {
		out[i] = toCreature(c)
	}
	return out
}

func toObservation(o models.Observation) api.Observation {
	return api.Observation{
		ID:         o.ID,
		CreatureID: o.CreatureID,
		Count:      o.Count,
		Memo:       o.Memo,
		RecordedAt: o.RecordedAt.Format(models.RecordedAtLayout),
		Latitude:   o.Latitude,
		Longitude:  o.Longitude,
	}
}

func toObservations(list []models.Observation) []api.Observation {
	out := make([]api.Observation, len(list))
	for i, o := range list {
		out[i] = toObservation(o)
	}
	return out
}

func toPreferences(p models.UserPreferences) api.Preferences {
	return api.Preferences{LastTabIndex: p.LastTabIndex, MapMode: string(p.MapMode)}
}

func toDraftState(s draft.State) api.DraftState {
	out := api.DraftState{
		ObservationID: s.ObservationID,
		CreatureID:    s.CreatureID,
		CreatureName:  s.CreatureName,
		CategoryID:    s.CategoryID,
		Count:         s.Count,
		Memo:          s.Memo,
		RecordedAt:    s.RecordedAt.Format(models.RecordedAtLayout),
		Latitude:      s.Location.Latitude,
		Longitude:     s.Location.Longitude,
		Pinned:        s.Pinned,
		EditMode:      s.EditMode,
		MapMode:       string(s.MapMode),
	}
	if s.Err != nil {
		out.Error = &api.DraftError{Kind: string(s.Err.Kind), Message: s.Err.Message}
	}
	return out
}

func toUser(u *models.User) api.User {
	return api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toLocationUpdate(p models.Point, at time.Time) *api.LocationUpdate {
	return &api.LocationUpdate{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		At:        at.Format(time.RFC3339),
	}
}
