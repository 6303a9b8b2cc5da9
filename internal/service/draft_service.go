package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/internal/draft"
	"github.com/mmynk/creaturemap/internal/middleware"
	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/internal/navigation"
	"github.com/mmynk/creaturemap/internal/storage"
	"github.com/mmynk/creaturemap/pkg/api"
)

// writeTimeout bounds a draft's gateway write once it is detached from the
// request.
const writeTimeout = 10 * time.Second

// DraftService implements the Connect DraftService. Each StartDraft opens
// a session holding the draft of one map screen; later calls address it by
// session ID.
type DraftService struct {
	store    storage.Store
	sessions *sessionRegistry
}

// NewDraftService creates a DraftService whose sessions expire after ttl
// without calls. Run must be running for expiry to happen.
func NewDraftService(store storage.Store, ttl time.Duration) *DraftService {
	return &DraftService{store: store, sessions: newSessionRegistry(ttl)}
}

// Run expires idle sessions until ctx is done.
func (s *DraftService) Run(ctx context.Context) error {
	s.sessions.run(ctx)
	return nil
}

// StartDraft opens a draft for a creature, from a map route or a creature ID.
func (s *DraftService) StartDraft(ctx context.Context, req *connect.Request[api.StartDraftRequest]) (*connect.Response[api.DraftResponse], error) {
	subject, err := s.subject(ctx, req.Msg)
	if err != nil {
		return nil, err
	}

	owner := middleware.Owner(ctx)
	prefs, err := s.store.GetPreferences(ctx, owner)
	if err != nil {
		slog.Error("StartDraft: failed to read preferences", "owner", owner, "error", err)
		return nil, storageError(err)
	}

	reducer := draft.New(meteredGateway{s.store}, subject,
		draft.WithMapMode(s.store, owner),
		draft.WithInitialMapMode(prefs.MapMode),
	)
	id := s.sessions.add(owner, reducer)

	slog.Info("Draft started", "session_id", id, "creature_id", subject.CreatureID, "owner", owner)
	return connect.NewResponse(&api.DraftResponse{SessionID: id, State: toDraftState(reducer.State())}), nil
}

func (s *DraftService) subject(ctx context.Context, msg *api.StartDraftRequest) (draft.Subject, error) {
	if msg.Route != "" {
		target, err := navigation.Parse(msg.Route)
		if err != nil {
			return draft.Subject{}, connect.NewError(connect.CodeInvalidArgument, err)
		}
		m, ok := target.(navigation.Map)
		if !ok {
			return draft.Subject{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("route %q is not a map route", msg.Route))
		}
		// The stored row wins over the name and category a route carries.
		c, err := s.store.GetCreature(ctx, m.CreatureID)
		if err != nil {
			return draft.Subject{}, storageError(err)
		}
		if c.Name != m.Name || c.CategoryID != m.CategoryID {
			slog.Debug("Map route is stale", "route", msg.Route, "name", c.Name, "category_id", c.CategoryID)
		}
		return draft.Subject{CreatureID: c.ID, CreatureName: c.Name, CategoryID: c.CategoryID}, nil
	}

	if msg.CreatureID <= 0 {
		return draft.Subject{}, connect.NewError(connect.CodeInvalidArgument, errors.New("route or creature_id is required"))
	}
	c, err := s.store.GetCreature(ctx, msg.CreatureID)
	if err != nil {
		return draft.Subject{}, storageError(err)
	}
	return draft.Subject{CreatureID: c.ID, CreatureName: c.Name, CategoryID: c.CategoryID}, nil
}

// detached returns a context for a gateway write that must finish even if
// the caller goes away.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
}

// transition runs fn on the session's reducer under the session lock.
func (s *DraftService) transition(ctx context.Context, id string, fn func(*draft.Reducer) draft.State) (*connect.Response[api.DraftResponse], error) {
	sess, err := s.sessions.get(id, middleware.Owner(ctx))
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	state := fn(sess.reducer)
	return connect.NewResponse(&api.DraftResponse{SessionID: id, State: toDraftState(state)}), nil
}

// SetLocation drops the pin.
func (s *DraftService) SetLocation(ctx context.Context, req *connect.Request[api.SetLocationRequest]) (*connect.Response[api.DraftResponse], error) {
	p := models.Point{Latitude: req.Msg.Latitude, Longitude: req.Msg.Longitude}
	if err := models.Validate(p); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		return r.SetLocation(p)
	})
}

// SetCount adjusts the count by delta.
func (s *DraftService) SetCount(ctx context.Context, req *connect.Request[api.SetCountRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		return r.SetCount(req.Msg.Delta)
	})
}

// SetMemo replaces the memo.
func (s *DraftService) SetMemo(ctx context.Context, req *connect.Request[api.SetMemoRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		return r.SetMemo(req.Msg.Memo)
	})
}

// SetDate replaces the date part of the recorded time.
func (s *DraftService) SetDate(ctx context.Context, req *connect.Request[api.SetDateRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		return r.SetDate(req.Msg.Year, req.Msg.Month, req.Msg.Day)
	})
}

// SetTime replaces the time part of the recorded time.
func (s *DraftService) SetTime(ctx context.Context, req *connect.Request[api.SetTimeRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		return r.SetTime(req.Msg.Hour, req.Msg.Minute)
	})
}

// BeginEdit loads a marker of the session's creature into the draft.
func (s *DraftService) BeginEdit(ctx context.Context, req *connect.Request[api.BeginEditRequest]) (*connect.Response[api.DraftResponse], error) {
	sess, err := s.sessions.get(req.Msg.SessionID, middleware.Owner(ctx))
	if err != nil {
		return nil, err
	}

	obs, err := s.store.GetObservation(ctx, req.Msg.ObservationID)
	if err != nil {
		return nil, storageError(err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if obs.CreatureID != sess.reducer.Subject().CreatureID {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("observation %d belongs to creature %d", obs.ID, obs.CreatureID))
	}
	state := sess.reducer.BeginEdit(*obs)
	return connect.NewResponse(&api.DraftResponse{SessionID: req.Msg.SessionID, State: toDraftState(state)}), nil
}

// Submit inserts or updates the observation. The write completes even if
// the client disconnects mid-call.
func (s *DraftService) Submit(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		ctx, cancel := detached(ctx)
		defer cancel()
		return r.Submit(ctx)
	})
}

// Delete removes the observation being edited.
func (s *DraftService) Delete(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		ctx, cancel := detached(ctx)
		defer cancel()
		return r.Delete(ctx)
	})
}

// Cancel discards the draft.
func (s *DraftService) Cancel(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		return r.Cancel()
	})
}

// ToggleMapMode flips and stores the map rendering.
func (s *DraftService) ToggleMapMode(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		ctx, cancel := detached(ctx)
		defer cancel()
		return r.ToggleMapMode(ctx)
	})
}

// DenyLocation records that the device refused location access.
func (s *DraftService) DenyLocation(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		return r.DenyLocation()
	})
}

// ClearError drops the surfaced error once the client has shown it.
func (s *DraftService) ClearError(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		return r.ClearError()
	})
}

// GetDraft returns the current state without changing it.
func (s *DraftService) GetDraft(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.DraftResponse], error) {
	return s.transition(ctx, req.Msg.SessionID, func(r *draft.Reducer) draft.State {
		return r.State()
	})
}

// EndDraft closes the session when the map screen goes away.
func (s *DraftService) EndDraft(ctx context.Context, req *connect.Request[api.DraftRequest]) (*connect.Response[api.EndDraftResponse], error) {
	if err := s.sessions.remove(req.Msg.SessionID, middleware.Owner(ctx)); err != nil {
		return nil, err
	}
	slog.Debug("Draft ended", "session_id", req.Msg.SessionID)
	return connect.NewResponse(&api.EndDraftResponse{}), nil
}
