package models

import "time"

// RecordedAtLayout is the text form of Observation.RecordedAt in storage.
// It matches an ISO-8601 local date-time without zone.
const RecordedAtLayout = "2006-01-02T15:04"

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

// Observation records one sighting of a creature.
type Observation struct {
	// ID is assigned by the store (autoincrement). Zero means "not persisted".
	ID int64

	// CreatureID is the creature this sighting belongs to.
	CreatureID int64 `validate:"gt=0"`

	// Count is how many individuals were seen. Never below 1.
	Count int `validate:"gte=1"`

	// Memo is a free-text note about this sighting.
	Memo string `validate:"max=2000"`

	// RecordedAt is the local wall-clock time of the sighting, minute precision.
	RecordedAt time.Time

	Longitude float64 `validate:"gte=-180,lte=180"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
}

// Location returns the observation's coordinate.
func (o Observation) Location() Point {
	return Point{Latitude: o.Latitude, Longitude: o.Longitude}
}
