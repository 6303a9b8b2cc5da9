// Package catalog holds the creature list screen state: which category tab
// is selected, whether the list is in edit mode, and the live creature list
// of the selected category.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/internal/storage"
)

// ErrInvalidTab is returned for a tab index outside the category list.
var ErrInvalidTab = errors.New("tab index out of range")

// ListStore is what the selector reads.
type ListStore interface {
	storage.CategoryStore
	WatchCreatures(ctx context.Context, categoryID int64) (<-chan []models.Creature, error)
}

// Snapshot is the list screen state pushed on Updates.
type Snapshot struct {
	Index     int
	Category  models.Category
	EditMode  bool
	Creatures []models.Creature
}

// Selector tracks the selected tab and streams its creatures.
type Selector struct {
	store       ListStore
	prefs       storage.Preferences
	owner       string
	prefTimeout time.Duration

	base       context.Context
	cancelBase context.CancelFunc
	wg         sync.WaitGroup
	updates    chan Snapshot

	mu          sync.Mutex
	categories  []models.Category
	index       int
	editMode    bool
	creatures   []models.Creature
	generation  int
	cancelWatch context.CancelFunc
	closed      bool
}

// NewSelector creates a selector for owner's list screen. Call Start before
// selecting tabs and Close when the screen goes away.
func NewSelector(store ListStore, prefs storage.Preferences, owner string) *Selector {
	base, cancel := context.WithCancel(context.Background())
	return &Selector{
		store:       store,
		prefs:       prefs,
		owner:       owner,
		prefTimeout: 5 * time.Second,
		base:        base,
		cancelBase:  cancel,
		updates:     make(chan Snapshot, 1),
	}
}

// Updates delivers the latest snapshot. Pending snapshots are replaced by
// newer ones. The channel is closed by Close.
func (s *Selector) Updates() <-chan Snapshot {
	return s.updates
}

// Start loads the categories and re-selects the owner's last tab.
func (s *Selector) Start(ctx context.Context) error {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}

	prefs, err := s.prefs.GetPreferences(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	index := prefs.LastTabIndex
	if index < 0 || index >= len(categories) {
		index = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	return s.selectLocked(index)
}

// StartAt loads the categories and selects index as SelectTab does,
// ignoring the stored last tab.
func (s *Selector) StartAt(ctx context.Context, index int) error {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return s.SelectTab(ctx, index)
}

func (s *Selector) loadCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, errors.New("no categories installed")
	}
	return categories, nil
}

// SelectTab switches to the tab at index, re-subscribes the creature list
// to that category and records the index in the preferences. The
// preference write runs in the background; its failure is only logged.
func (s *Selector) SelectTab(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.selectLocked(index); err != nil {
		return err
	}

	// The write may outlive the caller and the screen; Close waits for it.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.prefTimeout)
		defer cancel()
		if _, err := s.prefs.UpdateLastTab(ctx, s.owner, index); err != nil {
			slog.Warn("Failed to save last tab", "owner", s.owner, "index", index, "error", err)
		}
	}()
	return nil
}

func (s *Selector) selectLocked(index int) error {
	if s.closed {
		return errors.New("selector closed")
	}
	if index < 0 || index >= len(s.categories) {
		return fmt.Errorf("%w: %d", ErrInvalidTab, index)
	}

	if s.cancelWatch != nil {
		s.cancelWatch()
		s.cancelWatch = nil
	}

	watchCtx, cancel := context.WithCancel(s.base)
	stream, err := s.store.WatchCreatures(watchCtx, s.categories[index].ID)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to watch creatures: %w", err)
	}

	s.index = index
	s.creatures = nil
	s.generation++
	s.cancelWatch = cancel

	gen := s.generation
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for list := range stream {
			s.mu.Lock()
			if gen == s.generation && !s.closed {
				s.creatures = list
				s.publishLocked()
			}
			s.mu.Unlock()
		}
	}()

	return nil
}

// ToggleEditMode switches between viewing (tap opens the map) and editing
// (tap opens the creature form).
func (s *Selector) ToggleEditMode() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editMode = !s.editMode
	if !s.closed {
		s.publishLocked()
	}
	return s.snapshotLocked()
}

// Current returns the present state.
func (s *Selector) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Categories returns the loaded tabs.
func (s *Selector) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.categories...)
}

// Close stops the live list, waits for pending preference writes and
// closes Updates.
func (s *Selector) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancelWatch != nil {
		s.cancelWatch()
	}
	s.mu.Unlock()

	s.cancelBase()
	s.wg.Wait()
	close(s.updates)
}

func (s *Selector) snapshotLocked() Snapshot {
	snap := Snapshot{
		Index:     s.index,
		EditMode:  s.editMode,
		Creatures: s.creatures,
	}
	if s.index < len(s.categories) {
		snap.Category = s.categories[s.index]
	}
	return snap
}

func (s *Selector) publishLocked() {
	select {
	case <-s.updates:
	default:
	}
	s.updates <- s.snapshotLocked()
}
