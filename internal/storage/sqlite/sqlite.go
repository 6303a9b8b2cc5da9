// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/creaturemap/internal/events"
	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	hub     *events.Hub
	ownsHub bool
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithHub makes the store publish changes on h instead of a private hub.
// The caller keeps ownership of h.
func WithHub(h *events.Hub) Option {
	return func(s *SQLiteStore) {
		s.hub = h
		s.ownsHub = false
	}
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them:
	// foreign keys for the observation cascade, a lock wait, and WAL so
	// live-stream readers don't block writers.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		filepath.Clean(dbPath),
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{db: db, hub: events.NewHub(), ownsHub: true}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection. Open watch streams end.
func (s *SQLiteStore) Close() error {
	if s.ownsHub {
		s.hub.Close()
	}
	return s.db.Close()
}

// Hub returns the change hub the store publishes on.
func (s *SQLiteStore) Hub() *events.Hub {
	return s.hub
}

// ListCategories returns every category ordered for display.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, display_order FROM categories ORDER BY display_order, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// watch runs query now and again after every change on topic, sending each
// result that differs from the previous one. The first snapshot is always
// sent. An error on the first query is returned; later errors are logged and
// the previous snapshot stays current.
func watch[T any](ctx context.Context, hub *events.Hub, topic events.Topic, query func(context.Context) ([]T, error)) (<-chan []T, error) {
	// Subscribe before the first query so no write falls in between.
	changes, cancel := hub.Subscribe(topic)
	initial, err := query(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan []T)

	go func() {
		defer close(out)
		defer cancel()

		last := initial
		select {
		case out <- initial:
		case <-ctx.Done():
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
			}

			next, err := query(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("Live query failed", "topic", topic, "error", err)
				continue
			}
			if reflect.DeepEqual(next, last) {
				continue
			}
			last = next

			select {
			case out <- next:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// nullString maps "" to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
