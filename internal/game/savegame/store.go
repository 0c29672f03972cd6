// Package savegame keeps session snapshots in named slots on disk. The store
// treats snapshots as opaque bytes; loading a slot replaces a session
// wholesale.
package savegame

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrSlotNotFound is returned when loading a slot that was never saved.
	ErrSlotNotFound = errors.New("save slot not found")
	// ErrInvalidSlot is returned for slot names outside [a-z0-9_-]{1,32}.
	ErrInvalidSlot = errors.New("invalid save slot name")
	// ErrSlotLimit is returned when saving a new slot would exceed the limit.
	ErrSlotLimit = errors.New("too many save slots")
)

const slotExt = ".json"

var slotPattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

// ValidSlot reports whether name can be used as a slot name.
func ValidSlot(name string) bool {
	return slotPattern.MatchString(name)
}

// Store is a directory of save slots, one file per slot. It is safe for
// concurrent use by multiple connections.
type Store struct {
	mu       sync.Mutex
	dir      string
	maxSlots int
}

// NewStore creates a Store rooted at dir. The directory is created on the
// first save. maxSlots caps the number of slots; zero means no limit.
//
// Precondition: dir must be non-empty.
func NewStore(dir string, maxSlots int) *Store {
	return &Store{dir: dir, maxSlots: maxSlots}
}

// Dir returns the directory holding the slots.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+slotExt)
}

// Save writes snapshot into slot, replacing any earlier save there.
//
// Postcondition: On success a later Load(slot) returns snapshot. Errors wrap
// ErrInvalidSlot or ErrSlotLimit where applicable.
func (s *Store) Save(slot string, snapshot []byte) error {
	if !ValidSlot(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSlots > 0 {
		slots, err := s.list()
		if err != nil {
			return err
		}
		if _, exists := slices.BinarySearch(slots, slot); !exists && len(slots) >= s.maxSlots {
			return fmt.Errorf("%w: limit is %d", ErrSlotLimit, s.maxSlots)
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating save dir %s: %w", s.dir, err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp save for %q: %w", slot, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(snapshot); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save %q: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing save %q: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), s.path(slot)); err != nil {
		return fmt.Errorf("committing save %q: %w", slot, err)
	}
	return nil
}

// Load returns the snapshot stored in slot.
//
// Postcondition: Returns the bytes last saved, or an error wrapping
// ErrInvalidSlot or ErrSlotNotFound.
func (s *Store) Load(slot string) ([]byte, error) {
	if !ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("reading save %q: %w", slot, err)
	}
	return data, nil
}

// List returns the saved slot names in sorted order. A missing directory has
// no slots.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list()
}

func (s *Store) list() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing saves in %s: %w", s.dir, err)
	}
	slots := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), slotExt)
		if ok && ValidSlot(name) {
			slots = append(slots, name)
		}
	}
	sort.Strings(slots)
	return slots, nil
}
