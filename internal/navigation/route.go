// Package navigation defines the screens a client can open and their typed
// parameters. Target is a closed set; Path and Parse convert to and from the
// string routes older clients send ("map/5/Grey%20heron/1?memo=...").
package navigation

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrUnknownRoute is returned by Parse for paths that name no screen.
var ErrUnknownRoute = errors.New("unknown route")

// Target is one of List, AddCreature, EditCreature or Map.
type Target interface {
	// Path renders the string route.
	Path() string
	target()
}

// List is the creature list (start screen).
type List struct{}

// AddCreature opens the creature form for a new creature in a category.
type AddCreature struct {
	CategoryID int64
}

// EditCreature opens the creature form for an existing creature.
type EditCreature struct {
	CreatureID int64
	Name       string
	CategoryID int64
	Memo       *string
}

// Map opens the observation map of a creature.
type Map struct {
	CreatureID int64
	Name       string
	CategoryID int64
	Memo       *string
}

func (List) target()         {}
func (AddCreature) target()  {}
func (EditCreature) target() {}
func (Map) target()          {}

func (List) Path() string { return "list" }

func (t AddCreature) Path() string {
	return "add/" + strconv.FormatInt(t.CategoryID, 10)
}

func (t EditCreature) Path() string {
	return creaturePath("edit", t.CreatureID, t.Name, t.CategoryID, t.Memo)
}

func (t Map) Path() string {
	return creaturePath("map", t.CreatureID, t.Name, t.CategoryID, t.Memo)
}

func creaturePath(screen string, id int64, name string, categoryID int64, memo *string) string {
	p := fmt.Sprintf("%s/%d/%s/%d", screen, id, url.PathEscape(name), categoryID)
	if memo != nil {
		p += "?memo=" + url.QueryEscape(*memo)
	}
	return p
}

// Parse converts a string route into its Target.
func Parse(path string) (Target, error) {
	path = strings.TrimPrefix(path, "/")
	rawPath, rawQuery, _ := strings.Cut(path, "?")
	parts := strings.Split(rawPath, "/")

	switch parts[0] {
	case "list":
		if len(parts) != 1 {
			break
		}
		return List{}, nil

	case "add":
		if len(parts) != 2 {
			break
		}
		categoryID, err := parseID("categoryId", parts[1])
		if err != nil {
			return nil, err
		}
		return AddCreature{CategoryID: categoryID}, nil

	case "edit", "map":
		if len(parts) != 4 {
			break
		}
		creatureID, err := parseID("creatureId", parts[1])
		if err != nil {
			return nil, err
		}
		name, err := url.PathUnescape(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid creatureName: %w", err)
		}
		categoryID, err := parseID("categoryId", parts[3])
		if err != nil {
			return nil, err
		}
		memo, err := parseMemo(rawQuery)
		if err != nil {
			return nil, err
		}
		if parts[0] == "edit" {
			return EditCreature{CreatureID: creatureID, Name: name, CategoryID: categoryID, Memo: memo}, nil
		}
		return Map{CreatureID: creatureID, Name: name, CategoryID: categoryID, Memo: memo}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return id, nil
}

func parseMemo(rawQuery string) (*string, error) {
	if rawQuery == "" {
		return nil, nil
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	if !q.Has("memo") {
		return nil, nil
	}
	memo := q.Get("memo")
	return &memo, nil
}
