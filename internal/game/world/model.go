// Package world provides the static game description: items, maps, locations,
// focal points, events, and the actions they run.
package world

import "strings"

// EventKind identifies the interaction that triggers an Event.
type EventKind int

// Event kinds, numbered as in the world document.
const (
	Examine     EventKind = 1
	Interact    EventKind = 2
	UseItem     EventKind = 3
	UseWithItem EventKind = 4
)

// String returns the editor label for the event kind.
func (k EventKind) String() string {
	switch k {
	case Examine:
		return "When Examined"
	case Interact:
		return "When Interacted With"
	case UseItem:
		return "When Used On This"
	case UseWithItem:
		return "When Used With Another Item"
	default:
		return "Unknown Event"
	}
}

// Item is a catalog entry. Everything else refers to items by ID.
type Item struct {
	ID          string
	Name        string
	Description string
}

// Flag is a named boolean. As a requirement it must equal Value; as a
// mutation target it is set to Value.
type Flag struct {
	Name  string
	Value bool
}

// Event is a reaction on a focal point to one kind of interaction.
type Event struct {
	Kind EventKind
	// ItemID names the item that triggers UseItem and UseWithItem events.
	ItemID  string
	Actions []Action
}

// CommandAlias is a custom verb attached to a focal point.
type CommandAlias struct {
	Verb          string
	Actions       []Action
	RequiredItems []string
	RequiredFlags []Flag
}

// FocalPoint is a named interactive object within a Location.
type FocalPoint struct {
	Name        string
	Description string
	Events      []Event
	// Flags gate visibility: the focal point is visible only while every flag
	// holds its required value.
	Flags   []Flag
	Aliases []CommandAlias
}

// FirstEvent returns the index of the first event of the given kind, or -1.
func (fp *FocalPoint) FirstEvent(kind EventKind) int {
	for i := range fp.Events {
		if fp.Events[i].Kind == kind {
			return i
		}
	}
	return -1
}

// ItemEvent returns the index of the first event of the given kind whose
// ItemID equals itemID, or -1.
func (fp *FocalPoint) ItemEvent(kind EventKind, itemID string) int {
	for i := range fp.Events {
		if fp.Events[i].Kind == kind && fp.Events[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// Location is a place within a Map.
type Location struct {
	Name        string
	Description string
	// Items lists the IDs of items authored into this scene.
	Items       []string
	FocalPoints []FocalPoint
}

// Map is an ordered set of locations. Locations are addressed by index only;
// movement between them is expressed by MoveToLocation actions.
type Map struct {
	Name         string
	Description  string
	Introduction string
	Locations    []Location
}

// World is the full static game description. It is never mutated during play.
type World struct {
	Items []Item
	Maps  []Map
}

// Item returns the catalog entry for id.
//
// Postcondition: Returns (item, true) if found, or (nil, false) otherwise.
func (w *World) Item(id string) (*Item, bool) {
	for i := range w.Items {
		if w.Items[i].ID == id {
			return &w.Items[i], true
		}
	}
	return nil, false
}

// ItemName returns the display name for id, falling back to the id itself
// when the item is not in the catalog.
func (w *World) ItemName(id string) string {
	if it, ok := w.Item(id); ok {
		return it.Name
	}
	return id
}

// Map returns the map at index m.
//
// Postcondition: Returns (map, true) if m is in range, or (nil, false) otherwise.
func (w *World) Map(m int) (*Map, bool) {
	if m < 0 || m >= len(w.Maps) {
		return nil, false
	}
	return &w.Maps[m], true
}

// Location returns the location at index l of map m.
//
// Postcondition: Returns (location, true) if both indices are in range, or (nil, false) otherwise.
func (w *World) Location(m, l int) (*Location, bool) {
	mp, ok := w.Map(m)
	if !ok || l < 0 || l >= len(mp.Locations) {
		return nil, false
	}
	return &mp.Locations[l], true
}

// InitialSpawnedItems returns the spawn table for a fresh session: every item
// ID referenced by any location's Items list maps to true.
//
// Postcondition: The returned map is non-nil and owned by the caller.
func (w *World) InitialSpawnedItems() map[string]bool {
	spawned := make(map[string]bool)
	for _, mp := range w.Maps {
		for _, loc := range mp.Locations {
			for _, id := range loc.Items {
				spawned[id] = true
			}
		}
	}
	return spawned
}

// FindItemByName returns the first item among ids whose name equals name,
// ignoring case.
func (w *World) FindItemByName(ids []string, name string) (*Item, bool) {
	for _, id := range ids {
		if it, ok := w.Item(id); ok && strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return nil, false
}
