package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/creaturemap/internal/events"
	"github.com/mmynk/creaturemap/internal/models"
)

// GetPreferences returns the settings row of owner, creating it with
// defaults on first use.
func (s *SQLiteStore) GetPreferences(ctx context.Context, owner string) (models.UserPreferences, error) {
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO user_preferences (owner) VALUES (?)", owner,
	); err != nil {
		return models.UserPreferences{}, fmt.Errorf("failed to create preferences: %w", err)
	}

	prefs := models.UserPreferences{Owner: owner}
	var mode string
	err := s.db.QueryRowContext(ctx,
		"SELECT last_selected_tab_index, map_mode FROM user_preferences WHERE owner = ?",
		owner,
	).Scan(&prefs.LastTabIndex, &mode)
	if err != nil {
		return models.UserPreferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	prefs.MapMode, err = models.ParseMapMode(mode)
	if err != nil {
		// Unknown values fall back to the install default.
		prefs.MapMode = models.MapModeSatellite
	}
	return prefs, nil
}

// UpdateLastTab records the last selected tab index.
func (s *SQLiteStore) UpdateLastTab(ctx context.Context, owner string, index int) (int64, error) {
	return s.upsertPreference(ctx, owner,
		`INSERT INTO user_preferences (owner, last_selected_tab_index) VALUES (?, ?)
		 ON CONFLICT(owner) DO UPDATE SET last_selected_tab_index = excluded.last_selected_tab_index`,
		index,
	)
}

// UpdateMapMode records the last chosen map mode.
func (s *SQLiteStore) UpdateMapMode(ctx context.Context, owner string, mode models.MapMode) (int64, error) {
	return s.upsertPreference(ctx, owner,
		`INSERT INTO user_preferences (owner, map_mode) VALUES (?, ?)
		 ON CONFLICT(owner) DO UPDATE SET map_mode = excluded.map_mode`,
		string(mode),
	)
}

func (s *SQLiteStore) upsertPreference(ctx context.Context, owner, query string, value any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, owner, value)
	if err != nil {
		return 0, fmt.Errorf("failed to update preferences: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	s.hub.Publish(events.Change{Topic: events.TopicPreferences, Op: events.OpUpdate, Owner: owner})
	return n, nil
}
