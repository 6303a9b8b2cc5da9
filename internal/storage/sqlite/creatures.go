package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/creaturemap/internal/events"
	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/internal/storage"
)

// ListCreatures returns the creatures of one category.
func (s *SQLiteStore) ListCreatures(ctx context.Context, categoryID int64) ([]models.Creature, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, name, scientific_name, memo
		FROM creatures
		WHERE category_id = ?
		ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list creatures: %w", err)
	}
	defer rows.Close()

	creatures := []models.Creature{}
	for rows.Next() {
		c, err := scanCreature(rows)
		if err != nil {
			return nil, err
		}
		creatures = append(creatures, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate creatures: %w", err)
	}

	return creatures, nil
}

// WatchCreatures streams the creature list of one category.
func (s *SQLiteStore) WatchCreatures(ctx context.Context, categoryID int64) (<-chan []models.Creature, error) {
	return watch(ctx, s.hub, events.TopicCreatures, func(ctx context.Context) ([]models.Creature, error) {
		return s.ListCreatures(ctx, categoryID)
	})
}

// GetCreature retrieves a creature by ID.
func (s *SQLiteStore) GetCreature(ctx context.Context, id int64) (*models.Creature, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, category_id, name, scientific_name, memo FROM creatures WHERE id = ?",
		id,
	)
	c, err := scanCreature(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("creature %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCreature inserts a creature and populates its ID.
func (s *SQLiteStore) CreateCreature(ctx context.Context, creature *models.Creature) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO creatures (category_id, name, scientific_name, memo) VALUES (?, ?, ?, ?)",
		creature.CategoryID, creature.Name, creature.ScientificName, creature.Memo,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creature: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read creature id: %w", err)
	}
	creature.ID = id

	s.hub.Publish(events.Change{
		Topic:    events.TopicCreatures,
		Op:       events.OpInsert,
		ID:       id,
		ParentID: creature.CategoryID,
	})
	return nil
}

// UpdateCreature changes the name and memo of a creature.
func (s *SQLiteStore) UpdateCreature(ctx context.Context, id int64, name, memo string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE creatures SET name = ?, memo = ? WHERE id = ?",
		name, nullString(memo), id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update creature: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n > 0 {
		s.hub.Publish(events.Change{Topic: events.TopicCreatures, Op: events.OpUpdate, ID: id})
	}
	return n, nil
}

// DeleteCreature removes a creature together with its observations.
func (s *SQLiteStore) DeleteCreature(ctx context.Context, id int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The foreign key cascades too; deleting explicitly keeps the count
	// of removed observations observable and works with foreign keys off.
	detailRes, err := tx.ExecContext(ctx, "DELETE FROM creature_details WHERE creature_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete creature details: %w", err)
	}
	details, _ := detailRes.RowsAffected()

	res, err := tx.ExecContext(ctx, "DELETE FROM creatures WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete creature: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if n > 0 {
		s.hub.Publish(events.Change{Topic: events.TopicCreatures, Op: events.OpDelete, ID: id})
	}
	if details > 0 {
		s.hub.Publish(events.Change{Topic: events.TopicObservations, Op: events.OpDelete, ParentID: id})
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreature(row rowScanner) (*models.Creature, error) {
	var (
		c              models.Creature
		scientificName sql.NullString
		memo           sql.NullString
	)
	if err := row.Scan(&c.ID, &c.CategoryID, &c.Name, &scientificName, &memo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan creature: %w", err)
	}
	if scientificName.Valid {
		c.ScientificName = &scientificName.String
	}
	if memo.Valid {
		c.Memo = &memo.String
	}
	return &c, nil
}
