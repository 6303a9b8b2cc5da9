// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/creaturemap/internal/models"
)

// ErrNotFound is returned (wrapped) when a row addressed by ID does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned (wrapped) when an account email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// CategoryStore reads the seeded category reference data.
type CategoryStore interface {
	// ListCategories returns all categories ordered by DisplayOrder.
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CreatureStore persists the creature list.
type CreatureStore interface {
	// ListCreatures returns the creatures of one category ordered by ID.
	ListCreatures(ctx context.Context, categoryID int64) ([]models.Creature, error)

	// WatchCreatures streams ListCreatures snapshots: the current list first,
	// then a new list after every change that alters it. The channel is
	// closed when ctx is done.
	WatchCreatures(ctx context.Context, categoryID int64) (<-chan []models.Creature, error)

	// GetCreature retrieves a creature by ID. Wraps ErrNotFound.
	GetCreature(ctx context.Context, id int64) (*models.Creature, error)

	// CreateCreature inserts a creature; creature.ID is populated.
	CreateCreature(ctx context.Context, creature *models.Creature) error

	// UpdateCreature changes name and memo only and returns rows affected.
	UpdateCreature(ctx context.Context, id int64, name, memo string) (int64, error)

	// DeleteCreature removes a creature and its observations and returns
	// the number of creature rows affected.
	DeleteCreature(ctx context.Context, id int64) (int64, error)
}

// ObservationStore persists observations.
type ObservationStore interface {
	// ListObservations returns one creature's observations ordered by
	// RecordedAt then ID.
	ListObservations(ctx context.Context, creatureID int64) ([]models.Observation, error)

	// WatchObservations streams ListObservations snapshots like WatchCreatures.
	WatchObservations(ctx context.Context, creatureID int64) (<-chan []models.Observation, error)

	// GetObservation retrieves an observation by ID. Wraps ErrNotFound.
	GetObservation(ctx context.Context, id int64) (*models.Observation, error)

	// CreateObservation inserts obs; obs.ID is populated.
	CreateObservation(ctx context.Context, obs *models.Observation) error

	// UpdateObservation replaces every field of the row obs.ID and returns
	// rows affected.
	UpdateObservation(ctx context.Context, obs *models.Observation) (int64, error)

	// DeleteObservation removes one observation and returns rows affected.
	DeleteObservation(ctx context.Context, id int64) (int64, error)

	// DeleteObservationsByCreature removes every observation of a creature.
	DeleteObservationsByCreature(ctx context.Context, creatureID int64) (int64, error)
}

// Preferences is the settings service. Each owner has exactly one row,
// created with defaults on first read.
type Preferences interface {
	GetPreferences(ctx context.Context, owner string) (models.UserPreferences, error)
	UpdateLastTab(ctx context.Context, owner string, index int) (int64, error)
	UpdateMapMode(ctx context.Context, owner string, mode models.MapMode) (int64, error)
}

// UserStore persists accounts for the password authenticator.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store is the full persistence gateway.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	CategoryStore
	CreatureStore
	ObservationStore
	Preferences
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
