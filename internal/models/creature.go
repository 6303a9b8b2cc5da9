package models

import "strings"

// Creature is an entry in the creature list.
type Creature struct {
	// ID is assigned by the store (autoincrement).
	ID int64

	// CategoryID is the owning category.
	CategoryID int64 `validate:"gte=0"`

	// Name is the display name. Required; whitespace-only names are rejected.
	Name string `validate:"required,notblank,max=100"`

	// ScientificName is optional and never edited from the client.
	ScientificName *string `validate:"omitempty,max=200"`

	// Memo is an optional free-text note about the creature itself
	// (not about a single sighting).
	Memo *string `validate:"omitempty,max=2000"`
}

// MemoText returns the memo or "" when unset.
func (c Creature) MemoText() string {
	if c.Memo == nil {
		return ""
	}
	return *c.Memo
}

// NewCreature builds a creature for insertion. Blank memos are stored as NULL.
func NewCreature(categoryID int64, name, memo string) *Creature {
	c := &Creature{
		CategoryID: categoryID,
		Name:       strings.TrimSpace(name),
	}
	if memo != "" {
		c.Memo = &memo
	}
	return c
}
