// Package draft holds the observation being composed on the map screen.
//
// A Reducer owns one immutable State. Every transition builds a new State
// and replaces the held one whole, so a reader never sees a half-applied
// change. A Reducer is not safe for concurrent use: it belongs to a single
// screen, and callers serialize access to it.
package draft

import (
	"time"

	"github.com/mmynk/creaturemap/internal/models"
)

// Subject identifies the creature a map screen records observations for.
type Subject struct {
	CreatureID   int64
	CreatureName string
	CategoryID   int64
}

// State is a snapshot of the draft. It is a value; copying it is safe.
type State struct {
	// ObservationID is the persisted row being edited. Zero in create mode.
	ObservationID int64

	CreatureID   int64
	CreatureName string
	CategoryID   int64

	// Count is never below 1.
	Count int

	Memo       string
	RecordedAt time.Time
	Location   models.Point

	// Pinned is set once a location was chosen for this draft.
	Pinned bool

	// EditMode: submit updates ObservationID instead of inserting.
	EditMode bool

	// MapMode is the map rendering the screen shows. It survives resets.
	MapMode models.MapMode

	// Err is the last failure, nil when there is none.
	Err *Error
}

// ErrorMessage returns the user-visible error text, "" when there is none.
func (s State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Message
}

// Observation converts the draft into the record sent to the gateway.
func (s State) Observation() models.Observation {
	return models.Observation{
		ID:         s.ObservationID,
		CreatureID: s.CreatureID,
		Count:      s.Count,
		Memo:       s.Memo,
		RecordedAt: s.RecordedAt,
		Longitude:  s.Location.Longitude,
		Latitude:   s.Location.Latitude,
	}
}

// blankState is the template a draft resets to.
func blankState(subject Subject, now time.Time, mode models.MapMode) State {
	return State{
		CreatureID:   subject.CreatureID,
		CreatureName: subject.CreatureName,
		CategoryID:   subject.CategoryID,
		Count:        1,
		RecordedAt:   now.Truncate(time.Minute),
		MapMode:      mode,
	}
}
