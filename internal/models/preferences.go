package models

import "fmt"

// DefaultOwner is the preferences key used when accounts are disabled.
// A single settings row exists under this key.
const DefaultOwner = "user"

// MapMode selects how the map screen renders tiles.
type MapMode string

const (
	MapModeSatellite MapMode = "satellite"
	MapModeNormal    MapMode = "normal"
)

// Toggle returns the other map mode.
func (m MapMode) Toggle() MapMode {
	if m == MapModeSatellite {
		return MapModeNormal
	}
	return MapModeSatellite
}

// ParseMapMode accepts "satellite" or "normal".
func ParseMapMode(s string) (MapMode, error) {
	switch MapMode(s) {
	case MapModeSatellite, MapModeNormal:
		return MapMode(s), nil
	}
	return "", fmt.Errorf("unknown map mode %q", s)
}

// UserPreferences is the settings row for one owner.
type UserPreferences struct {
	// Owner is DefaultOwner, or a user ID when authentication is enabled.
	Owner string

	// LastTabIndex is the tab selected when the list screen was last used.
	LastTabIndex int

	// MapMode is the last chosen map rendering. Defaults to satellite.
	MapMode MapMode
}

// DefaultPreferences returns the row created for a new owner.
func DefaultPreferences(owner string) UserPreferences {
	return UserPreferences{Owner: owner, LastTabIndex: 0, MapMode: MapModeSatellite}
}
