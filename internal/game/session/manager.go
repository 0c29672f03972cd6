package session

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Player describes one connected play-through. Each player has a private
// Session; the Manager only tracks who is connected and where they stand.
type Player struct {
	// ID is the connection's unique identifier.
	ID string
	// RemoteAddr is the client address, for logging.
	RemoteAddr string
	// Location is the LocationKey of the player's current position.
	Location string
	// Since is when the player connected.
	Since time.Time
}

// Manager tracks active players and which location each one occupies.
// All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	players  map[string]*Player
	occupied map[string]map[string]bool // location key → set of player IDs
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		players:  make(map[string]*Player),
		occupied: make(map[string]map[string]bool),
	}
}

// AddPlayer registers a player standing at location.
//
// Precondition: id must be non-empty.
// Postcondition: Returns the registered Player, or an error if id is already registered.
func (m *Manager) AddPlayer(id, remoteAddr, location string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.players[id]; exists {
		return nil, fmt.Errorf("player %q already connected", id)
	}
	p := &Player{ID: id, RemoteAddr: remoteAddr, Location: location, Since: time.Now()}
	m.players[id] = p
	m.occupy(location, id)
	return p, nil
}

// RemovePlayer forgets a player.
//
// Postcondition: The player is removed from all tracking. Returns an error if not found.
func (m *Manager) RemovePlayer(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.players[id]
	if !exists {
		return fmt.Errorf("player %q not found", id)
	}
	m.vacate(p.Location, id)
	delete(m.players, id)
	return nil
}

// MovePlayer records that a player now stands at location.
//
// Postcondition: Returns the previous location key, or an error if the player is not found.
func (m *Manager) MovePlayer(id, location string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.players[id]
	if !exists {
		return "", fmt.Errorf("player %q not found", id)
	}
	old := p.Location
	if old == location {
		return old, nil
	}
	m.vacate(old, id)
	p.Location = location
	m.occupy(location, id)
	return old, nil
}

func (m *Manager) occupy(location, id string) {
	if m.occupied[location] == nil {
		m.occupied[location] = make(map[string]bool)
	}
	m.occupied[location][id] = true
}

func (m *Manager) vacate(location, id string) {
	if set, ok := m.occupied[location]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(m.occupied, location)
		}
	}
}

// PlayersAt returns the IDs of players at location, sorted.
func (m *Manager) PlayersAt(location string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.occupied[location]))
	for id := range m.occupied[location] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetPlayer returns the player with the given ID.
func (m *Manager) GetPlayer(id string) (*Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// PlayerCount returns the number of connected players.
func (m *Manager) PlayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}
