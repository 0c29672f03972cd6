package engine

import (
	"github.com/cory-johannsen/focalpoint/internal/game/session"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

// Destination is a location the player can move to.
type Destination struct {
	// Index is the location's position in the current map.
	Index int
	// Name is the location's name.
	Name string
	// Via is the name of the focal point whose event leads there.
	Via string
}

// AvailableLocations derives the places reachable from the current location.
// There is no adjacency table: every MoveToLocation action in any event of a
// visible focal point is one destination. Duplicates are kept in scan order.
// Targets outside the current map are skipped.
//
// Postcondition: Returns a fresh slice computed from w and s; nothing is cached.
func AvailableLocations(w *world.World, s *session.Session) []Destination {
	var dests []Destination
	for _, fp := range VisibleFocalPoints(w, s) {
		for _, ev := range fp.Events {
			for _, a := range ev.Actions {
				move, ok := a.(world.MoveToLocation)
				if !ok {
					continue
				}
				loc, ok := w.Location(s.CurrentMap, move.Index)
				if !ok {
					continue
				}
				dests = append(dests, Destination{Index: move.Index, Name: loc.Name, Via: fp.Name})
			}
		}
	}
	return dests
}
