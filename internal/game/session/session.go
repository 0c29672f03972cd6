// Package session holds the mutable play state of one player: position,
// inventory, flags, and which items are present in the world.
package session

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

// Session is the mutable state of a single play-through. It is owned by one
// interpreter and is not safe for concurrent use.
type Session struct {
	// CurrentMap is the index of the map the player is on.
	CurrentMap int
	// CurrentLocation is the index of the player's location within CurrentMap.
	CurrentLocation int
	// Inventory lists carried item IDs in pickup order.
	Inventory []string
	// Flags holds every flag that has been set. Absent flags read as false.
	Flags map[string]bool
	// SpawnedItems marks items currently present and takeable somewhere in the world.
	SpawnedItems map[string]bool
	// SceneItems records items added to a location during play, keyed by
	// LocationKey. The authored World is never modified.
	SceneItems map[string][]string
}

// New creates the starting session for w: first location of the first map,
// nothing carried, no flags, and every authored scene item spawned.
//
// Precondition: w must be non-nil.
// Postcondition: All collections on the returned Session are non-nil.
func New(w *world.World) *Session {
	return &Session{
		Inventory:    []string{},
		Flags:        make(map[string]bool),
		SpawnedItems: w.InitialSpawnedItems(),
		SceneItems:   make(map[string][]string),
	}
}

// LocationKey returns the SceneItems key for location l of map m.
func LocationKey(m, l int) string {
	return fmt.Sprintf("%d:%d", m, l)
}

// Flag reports the value of the named flag, false if it was never set.
func (s *Session) Flag(name string) bool {
	return s.Flags[name]
}

// SetFlag sets the named flag.
func (s *Session) SetFlag(name string, value bool) {
	if s.Flags == nil {
		s.Flags = make(map[string]bool)
	}
	s.Flags[name] = value
}

// FlagsMatch reports whether every flag currently holds its required value.
// An empty requirement list always matches.
func (s *Session) FlagsMatch(required []world.Flag) bool {
	for _, f := range required {
		if s.Flag(f.Name) != f.Value {
			return false
		}
	}
	return true
}

// HasItem reports whether id is in the inventory.
func (s *Session) HasItem(id string) bool {
	return slices.Contains(s.Inventory, id)
}

// MissingItems returns the IDs in required that are not carried, in order.
func (s *Session) MissingItems(required []string) []string {
	var missing []string
	for _, id := range required {
		if !s.HasItem(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// AddToInventory appends id to the inventory.
func (s *Session) AddToInventory(id string) {
	s.Inventory = append(s.Inventory, id)
}

// RemoveFromInventory drops every occurrence of id from the inventory.
//
// Postcondition: HasItem(id) is false. Removing an item that is not carried is a no-op.
func (s *Session) RemoveFromInventory(id string) {
	s.Inventory = slices.DeleteFunc(s.Inventory, func(held string) bool { return held == id })
}

// IsSpawned reports whether id is present and takeable in the world.
func (s *Session) IsSpawned(id string) bool {
	return s.SpawnedItems[id]
}

// Spawn marks id as present in the world.
func (s *Session) Spawn(id string) {
	if s.SpawnedItems == nil {
		s.SpawnedItems = make(map[string]bool)
	}
	s.SpawnedItems[id] = true
}

// Take moves a spawned item into the inventory.
//
// Postcondition: Returns true and carries id if it was spawned; otherwise
// returns false and the session is unchanged.
func (s *Session) Take(id string) bool {
	if !s.IsSpawned(id) {
		return false
	}
	s.SpawnedItems[id] = false
	s.AddToInventory(id)
	return true
}

// AddSceneItem records id as added to location l of map m, once.
func (s *Session) AddSceneItem(m, l int, id string) {
	if s.SceneItems == nil {
		s.SceneItems = make(map[string][]string)
	}
	key := LocationKey(m, l)
	if !slices.Contains(s.SceneItems[key], id) {
		s.SceneItems[key] = append(s.SceneItems[key], id)
	}
}

// SceneItemIDs returns the item IDs belonging to the current location: the
// authored Items followed by any added during play.
//
// Postcondition: Returns nil if the current location does not exist in w.
func (s *Session) SceneItemIDs(w *world.World) []string {
	loc, ok := w.Location(s.CurrentMap, s.CurrentLocation)
	if !ok {
		return nil
	}
	ids := slices.Clone(loc.Items)
	for _, id := range s.SceneItems[LocationKey(s.CurrentMap, s.CurrentLocation)] {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := &Session{
		CurrentMap:      s.CurrentMap,
		CurrentLocation: s.CurrentLocation,
		Inventory:       slices.Clone(s.Inventory),
		Flags:           make(map[string]bool, len(s.Flags)),
		SpawnedItems:    make(map[string]bool, len(s.SpawnedItems)),
		SceneItems:      make(map[string][]string, len(s.SceneItems)),
	}
	if c.Inventory == nil {
		c.Inventory = []string{}
	}
	for k, v := range s.Flags {
		c.Flags[k] = v
	}
	for k, v := range s.SpawnedItems {
		c.SpawnedItems[k] = v
	}
	for k, v := range s.SceneItems {
		c.SceneItems[k] = slices.Clone(v)
	}
	return c
}
