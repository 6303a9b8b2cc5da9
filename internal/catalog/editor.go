package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/internal/storage"
)

var (
	// ErrEmptyName is returned when a creature name is blank.
	ErrEmptyName = errors.New("creature name is required")

	// ErrUnknownCategory is returned when saving into a category that does
	// not exist.
	ErrUnknownCategory = errors.New("unknown category")
)

// EditorStore is what the creature form reads and writes.
type EditorStore interface {
	storage.CategoryStore
	storage.CreatureStore
}

// Editor adds, renames and removes creatures on behalf of the creature form.
type Editor struct {
	store EditorStore
}

// NewEditor creates an Editor writing to store.
func NewEditor(store EditorStore) *Editor {
	return &Editor{store: store}
}

// Save adds a creature to a category.
func (e *Editor) Save(ctx context.Context, categoryID int64, name, memo string) (*models.Creature, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	creature := models.NewCreature(categoryID, name, memo)
	if err := models.Validate(creature); err != nil {
		return nil, fmt.Errorf("invalid creature: %w", err)
	}
	if err := e.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	if err := e.store.CreateCreature(ctx, creature); err != nil {
		return nil, err
	}
	return creature, nil
}

func (e *Editor) checkCategory(ctx context.Context, id int64) error {
	categories, err := e.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range categories {
		if c.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownCategory, id)
}

// Update renames a creature and replaces its memo.
func (e *Editor) Update(ctx context.Context, id int64, name, memo string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	n, err := e.store.UpdateCreature(ctx, id, name, memo)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("creature %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// Delete removes a creature and every observation recorded for it.
func (e *Editor) Delete(ctx context.Context, id int64) error {
	n, err := e.store.DeleteCreature(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("creature %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
