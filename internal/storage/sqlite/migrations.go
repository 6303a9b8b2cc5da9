package sqlite

import (
	"database/sql"
	"fmt"
)

// schema sets up the database. It runs on every startup and is idempotent.
// Category must exist before Creature because of the foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    display_order INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS creatures (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    scientific_name TEXT,
    memo TEXT,
    FOREIGN KEY (category_id) REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS creature_details (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    creature_id INTEGER NOT NULL,
    count INTEGER NOT NULL CHECK (count >= 1),
    memo TEXT,
    recorded_at TEXT NOT NULL,
    longitude REAL NOT NULL,
    latitude REAL NOT NULL,
    FOREIGN KEY (creature_id) REFERENCES creatures(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS user_preferences (
    owner TEXT PRIMARY KEY DEFAULT 'user',
    last_selected_tab_index INTEGER NOT NULL DEFAULT 0,
    map_mode TEXT NOT NULL DEFAULT 'satellite'
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_creatures_category_id ON creatures(category_id);
CREATE INDEX IF NOT EXISTS idx_creature_details_creature_id ON creature_details(creature_id);
`

// seedCategories is the reference data installed with the app.
// IDs are the tab positions the client shows.
var seedCategories = []struct {
	id   int64
	name string
}{
	{0, "Fish"},
	{1, "Bird"},
	{2, "Mammal"},
	{3, "Reptile"},
	{4, "Amphibian"},
	{5, "Insect"},
	{6, "Plant"},
	{7, "Other"},
}

// runMigrations executes the schema setup and seeds reference rows.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	for i, c := range seedCategories {
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO categories (id, name, display_order) VALUES (?, ?, ?)",
			c.id, c.name, i,
		); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.name, err)
		}
	}

	_, err := db.Exec("INSERT OR IGNORE INTO user_preferences (owner) VALUES ('user')")
	return err
}
