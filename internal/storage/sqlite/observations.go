package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/creaturemap/internal/events"
	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/internal/storage"
)

const observationColumns = "id, creature_id, count, memo, recorded_at, longitude, latitude"

// ListObservations returns the observations recorded for one creature.
func (s *SQLiteStore) ListObservations(ctx context.Context, creatureID int64) ([]models.Observation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+observationColumns+" FROM creature_details WHERE creature_id = ? ORDER BY recorded_at, id",
		creatureID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	defer rows.Close()

	observations := []models.Observation{}
	for rows.Next() {
		obs, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		observations = append(observations, *obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}

	return observations, nil
}

// WatchObservations streams the observations of one creature.
func (s *SQLiteStore) WatchObservations(ctx context.Context, creatureID int64) (<-chan []models.Observation, error) {
	return watch(ctx, s.hub, events.TopicObservations, func(ctx context.Context) ([]models.Observation, error) {
		return s.ListObservations(ctx, creatureID)
	})
}

// GetObservation retrieves an observation by ID.
func (s *SQLiteStore) GetObservation(ctx context.Context, id int64) (*models.Observation, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+observationColumns+" FROM creature_details WHERE id = ?",
		id,
	)
	obs, err := scanObservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("observation %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return obs, nil
}

// CreateObservation inserts an observation and populates its ID.
func (s *SQLiteStore) CreateObservation(ctx context.Context, obs *models.Observation) error {
	if obs.RecordedAt.IsZero() {
		obs.RecordedAt = time.Now().Truncate(time.Minute)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO creature_details (creature_id, count, memo, recorded_at, longitude, latitude)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		obs.CreatureID,
		obs.Count,
		nullString(obs.Memo),
		formatRecordedAt(obs.RecordedAt),
		obs.Longitude,
		obs.Latitude,
	)
	if err != nil {
		return fmt.Errorf("failed to insert observation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read observation id: %w", err)
	}
	obs.ID = id

	s.hub.Publish(events.Change{
		Topic:    events.TopicObservations,
		Op:       events.OpInsert,
		ID:       id,
		ParentID: obs.CreatureID,
	})
	return nil
}

// UpdateObservation rewrites every column of an existing observation.
func (s *SQLiteStore) UpdateObservation(ctx context.Context, obs *models.Observation) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE creature_details
		SET creature_id = ?, count = ?, memo = ?, recorded_at = ?, longitude = ?, latitude = ?
		WHERE id = ?
	`,
		obs.CreatureID,
		obs.Count,
		nullString(obs.Memo),
		formatRecordedAt(obs.RecordedAt),
		obs.Longitude,
		obs.Latitude,
		obs.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update observation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n > 0 {
		s.hub.Publish(events.Change{
			Topic:    events.TopicObservations,
			Op:       events.OpUpdate,
			ID:       obs.ID,
			ParentID: obs.CreatureID,
		})
	}
	return n, nil
}

// DeleteObservation removes one observation.
func (s *SQLiteStore) DeleteObservation(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM creature_details WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete observation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n > 0 {
		s.hub.Publish(events.Change{Topic: events.TopicObservations, Op: events.OpDelete, ID: id})
	}
	return n, nil
}

// DeleteObservationsByCreature removes every observation of a creature.
func (s *SQLiteStore) DeleteObservationsByCreature(ctx context.Context, creatureID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM creature_details WHERE creature_id = ?", creatureID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete observations: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n > 0 {
		s.hub.Publish(events.Change{Topic: events.TopicObservations, Op: events.OpDelete, ParentID: creatureID})
	}
	return n, nil
}

func scanObservation(row rowScanner) (*models.Observation, error) {
	var (
		obs        models.Observation
		memo       sql.NullString
		recordedAt string
	)
	err := row.Scan(&obs.ID, &obs.CreatureID, &obs.Count, &memo, &recordedAt, &obs.Longitude, &obs.Latitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan observation: %w", err)
	}
	obs.Memo = memo.String

	obs.RecordedAt, err = parseRecordedAt(recordedAt)
	if err != nil {
		return nil, fmt.Errorf("observation %d: %w", obs.ID, err)
	}
	return &obs, nil
}

// formatRecordedAt stores the local wall-clock minute, zone dropped.
func formatRecordedAt(t time.Time) string {
	return t.Local().Format(models.RecordedAtLayout)
}

// parseRecordedAt accepts the stored minute form and, for rows written with
// seconds, the full ISO-8601 local date-time.
func parseRecordedAt(s string) (time.Time, error) {
	for _, layout := range []string{models.RecordedAtLayout, "2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Truncate(time.Minute), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid recorded_at %q", s)
}
