package session

import (
	"encoding/json"
	"fmt"
)

// snapshot is the save format. Field names match the client-side save data
// written by the web player.
type snapshot struct {
	CurrentMap      int                 `json:"currentMap"`
	CurrentLocation int                 `json:"currentLocation"`
	Inventory       []string            `json:"inventory"`
	Flags           map[string]bool     `json:"flags"`
	SpawnedItems    map[string]bool     `json:"spawnedItems"`
	SceneItems      map[string][]string `json:"sceneItems,omitempty"`
}

// Marshal encodes the whole session as canonical JSON. Map keys are sorted,
// so equal sessions always encode to equal bytes.
//
// Postcondition: Unmarshal(Marshal()) restores an equal Session.
func (s *Session) Marshal() ([]byte, error) {
	snap := snapshot{
		CurrentMap:      s.CurrentMap,
		CurrentLocation: s.CurrentLocation,
		Inventory:       s.Inventory,
		Flags:           s.Flags,
		SpawnedItems:    s.SpawnedItems,
		SceneItems:      s.SceneItems,
	}
	if snap.Inventory == nil {
		snap.Inventory = []string{}
	}
	if snap.Flags == nil {
		snap.Flags = map[string]bool{}
	}
	if snap.SpawnedItems == nil {
		snap.SpawnedItems = map[string]bool{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encoding session snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a snapshot produced by Marshal into a new Session. It is
// a wholesale replacement; nothing is merged with any existing state.
//
// Postcondition: Returns a Session with non-nil collections, or a non-nil error.
func Unmarshal(data []byte) (*Session, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding session snapshot: %w", err)
	}
	s := &Session{
		CurrentMap:      snap.CurrentMap,
		CurrentLocation: snap.CurrentLocation,
		Inventory:       snap.Inventory,
		Flags:           snap.Flags,
		SpawnedItems:    snap.SpawnedItems,
		SceneItems:      snap.SceneItems,
	}
	if s.Inventory == nil {
		s.Inventory = []string{}
	}
	if s.Flags == nil {
		s.Flags = make(map[string]bool)
	}
	if s.SpawnedItems == nil {
		s.SpawnedItems = make(map[string]bool)
	}
	if s.SceneItems == nil {
		s.SceneItems = make(map[string][]string)
	}
	return s, nil
}
