// Package models defines the core domain models for creaturemap.
//
// # Models
//
//   - Category: fixed taxonomic grouping (fish, bird, ...) used to tab-filter
//     the creature list. Seeded by migrations, never mutated.
//   - Creature: an entry in the creature list, owned by one category.
//   - Observation: a timestamped sighting of a creature at a coordinate.
//   - UserPreferences: the settings row for one owner (last tab, map mode).
//   - User: registered account, only used when authentication is enabled.
//
// # Design Principles
//
// 1. **Flat records**: models carry IDs, never pointers to related models
// 2. **Storage owns durability**: nothing here caches or mutates state
// 3. **Validation lives on the struct**: `validate` tags are checked by Validate
//
// Observations are called "creature details" on the client screens; the
// storage layer keeps that name for the table.
package models
