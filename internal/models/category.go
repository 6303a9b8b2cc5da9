package models

// Category is a fixed grouping of creatures shown as one tab in the list.
type Category struct {
	// ID doubles as the tab position for the seeded categories.
	ID int64

	// Name is the display name (e.g., "Bird", "Fish").
	Name string

	// DisplayOrder sorts the tabs ascending.
	DisplayOrder int64
}
