package draft

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/creaturemap/internal/models"
)

// Gateway is the slice of the persistence gateway the draft writes to.
type Gateway interface {
	CreateObservation(ctx context.Context, obs *models.Observation) error
	UpdateObservation(ctx context.Context, obs *models.Observation) (int64, error)
	DeleteObservation(ctx context.Context, id int64) (int64, error)
}

// MapModeStore persists the map mode preference.
type MapModeStore interface {
	UpdateMapMode(ctx context.Context, owner string, mode models.MapMode) (int64, error)
}

var errObservationGone = errors.New("observation no longer exists")

// Reducer applies transitions to one draft.
type Reducer struct {
	gateway  Gateway
	settings MapModeStore
	owner    string
	subject  Subject
	now      func() time.Time
	state    State
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithClock sets the source of the default RecordedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Reducer) { r.now = now }
}

// WithMapMode persists map mode toggles for owner through store.
func WithMapMode(store MapModeStore, owner string) Option {
	return func(r *Reducer) {
		r.settings = store
		r.owner = owner
	}
}

// WithInitialMapMode sets the map mode of the first state, normally read
// from the owner's preferences.
func WithInitialMapMode(mode models.MapMode) Option {
	return func(r *Reducer) { r.state.MapMode = mode }
}

// New creates a reducer with a blank draft for subject.
func New(gateway Gateway, subject Subject, opts ...Option) *Reducer {
	r := &Reducer{
		gateway: gateway,
		subject: subject,
		now:     time.Now,
		state:   State{MapMode: models.MapModeSatellite},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.state = blankState(subject, r.now(), r.state.MapMode)
	return r
}

// State returns the current snapshot.
func (r *Reducer) State() State {
	return r.state
}

// Subject returns the creature the draft is for.
func (r *Reducer) Subject() Subject {
	return r.subject
}

func (r *Reducer) set(s State) State {
	r.state = s
	return s
}

func (r *Reducer) blank() State {
	return blankState(r.subject, r.now(), r.state.MapMode)
}

// SetLocation drops a pin. A pin dropped while editing starts a fresh
// draft at that point.
func (r *Reducer) SetLocation(p models.Point) State {
	next := r.state
	if next.EditMode {
		next = r.blank()
	}
	next.Location = p
	next.Pinned = true
	return r.set(next)
}

// SetCount adds delta to the count, never going below 1.
func (r *Reducer) SetCount(delta int) State {
	next := r.state
	next.Count += delta
	if next.Count < 1 {
		next.Count = 1
	}
	return r.set(next)
}

// SetMemo replaces the memo verbatim.
func (r *Reducer) SetMemo(text string) State {
	next := r.state
	next.Memo = text
	return r.set(next)
}

// SetDate replaces the calendar date of RecordedAt and keeps its time.
// month is 1-12. An impossible date records a validation error.
func (r *Reducer) SetDate(year, month, day int) State {
	cur := r.state.RecordedAt
	t := time.Date(year, time.Month(month), day, cur.Hour(), cur.Minute(), 0, 0, cur.Location())
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return r.fail(validationError("invalid date %04d-%02d-%02d", year, month, day))
	}
	next := r.state
	next.RecordedAt = t
	return r.set(next)
}

// SetTime replaces the hour and minute of RecordedAt and keeps its date.
func (r *Reducer) SetTime(hour, minute int) State {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return r.fail(validationError("invalid time %02d:%02d", hour, minute))
	}
	cur := r.state.RecordedAt
	next := r.state
	next.RecordedAt = time.Date(cur.Year(), cur.Month(), cur.Day(), hour, minute, 0, 0, cur.Location())
	return r.set(next)
}

// BeginEdit loads a persisted observation into the draft. The next Submit
// updates it.
func (r *Reducer) BeginEdit(obs models.Observation) State {
	next := r.state
	next.ObservationID = obs.ID
	next.CreatureID = obs.CreatureID
	next.Count = max(obs.Count, 1)
	next.Memo = obs.Memo
	next.RecordedAt = obs.RecordedAt
	next.Location = obs.Location()
	next.Pinned = true
	next.EditMode = true
	next.Err = nil
	return r.set(next)
}

// Submit writes the draft: insert in create mode, update in edit mode.
// On success the draft resets to a blank one for the same creature. On
// failure the draft is kept and the error recorded.
func (r *Reducer) Submit(ctx context.Context) State {
	s := r.state
	if strings.TrimSpace(s.CreatureName) == "" {
		return r.fail(validationError("creature name is required"))
	}
	if !s.EditMode && !s.Pinned {
		// Also refuses a second submit of the reset draft.
		return r.fail(validationError("choose a location on the map first"))
	}

	obs := s.Observation()
	if err := models.Validate(obs); err != nil {
		return r.fail(validationError("%s", models.ValidationMessage(err)))
	}

	if s.EditMode {
		n, err := r.gateway.UpdateObservation(ctx, &obs)
		if err == nil && n == 0 {
			err = errObservationGone
		}
		if err != nil {
			slog.Warn("Observation update failed", "observation_id", obs.ID, "error", err)
			return r.fail(persistenceError(err))
		}
		slog.Debug("Observation updated", "observation_id", obs.ID, "creature_id", obs.CreatureID)
	} else {
		obs.ID = 0
		if err := r.gateway.CreateObservation(ctx, &obs); err != nil {
			slog.Warn("Observation insert failed", "creature_id", obs.CreatureID, "error", err)
			return r.fail(persistenceError(err))
		}
		slog.Debug("Observation recorded", "observation_id", obs.ID, "creature_id", obs.CreatureID)
	}

	return r.set(r.blank())
}

// Delete removes the observation being edited and resets the draft.
// Outside edit mode it only resets.
func (r *Reducer) Delete(ctx context.Context) State {
	s := r.state
	if s.EditMode {
		n, err := r.gateway.DeleteObservation(ctx, s.ObservationID)
		if err == nil && n == 0 {
			err = errObservationGone
		}
		if err != nil {
			slog.Warn("Observation delete failed", "observation_id", s.ObservationID, "error", err)
			return r.fail(persistenceError(err))
		}
	}
	return r.set(r.blank())
}

// Cancel discards the draft without touching the gateway.
func (r *Reducer) Cancel() State {
	return r.set(r.blank())
}

// ToggleMapMode flips between satellite and normal rendering and persists
// the choice. The mode only changes once the preference is stored.
func (r *Reducer) ToggleMapMode(ctx context.Context) State {
	mode := r.state.MapMode.Toggle()
	if r.settings != nil {
		if _, err := r.settings.UpdateMapMode(ctx, r.owner, mode); err != nil {
			return r.fail(persistenceError(err))
		}
	}
	next := r.state
	next.MapMode = mode
	return r.set(next)
}

// DenyLocation records that the device has no location permission.
func (r *Reducer) DenyLocation() State {
	return r.fail(&Error{Kind: KindPermission, Message: "location permission is required to show your position"})
}

// ClearError drops the surfaced error.
func (r *Reducer) ClearError() State {
	next := r.state
	next.Err = nil
	return r.set(next)
}

func (r *Reducer) fail(e *Error) State {
	next := r.state
	next.Err = e
	return r.set(next)
}
