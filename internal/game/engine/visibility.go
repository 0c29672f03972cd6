// Package engine resolves player commands against a World and a Session and
// runs the resulting actions.
package engine

import (
	"github.com/cory-johannsen/focalpoint/internal/game/session"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

// CurrentLocation returns the location the session is in.
//
// Postcondition: Returns (nil, false) when the session points outside the world.
func CurrentLocation(w *world.World, s *session.Session) (*world.Location, bool) {
	return w.Location(s.CurrentMap, s.CurrentLocation)
}

// IsVisible reports whether fp can currently be seen: it has no flags, or
// every flag holds its required value.
func IsVisible(fp *world.FocalPoint, s *session.Session) bool {
	return s.FlagsMatch(fp.Flags)
}

// VisibleFocalPoints returns the focal points of the current location that
// are visible, in authoring order. It has no side effects.
//
// Postcondition: Returns nil if the current location does not exist.
func VisibleFocalPoints(w *world.World, s *session.Session) []*world.FocalPoint {
	loc, ok := CurrentLocation(w, s)
	if !ok {
		return nil
	}
	var visible []*world.FocalPoint
	for i := range loc.FocalPoints {
		if IsVisible(&loc.FocalPoints[i], s) {
			visible = append(visible, &loc.FocalPoints[i])
		}
	}
	return visible
}

// VisibleItems returns the spawned items of the current location in
// authoring order, followed by items added during play. IDs missing from the
// catalog are dropped.
func VisibleItems(w *world.World, s *session.Session) []*world.Item {
	var items []*world.Item
	for _, id := range s.SceneItemIDs(w) {
		if !s.IsSpawned(id) {
			continue
		}
		if it, ok := w.Item(id); ok {
			items = append(items, it)
		}
	}
	return items
}
