package world

import (
	_ "embed"
	"fmt"
)

//go:embed blackwood_manor.json
var blackwoodManor []byte

// SampleName is the display name of the embedded sample world.
const SampleName = "Blackwood Manor"

// Sample returns a freshly parsed copy of the embedded Blackwood Manor world.
//
// Postcondition: Returns a new World on every call; callers may not observe each other's copies.
func Sample() *World {
	w, err := LoadFromBytes(blackwoodManor, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("loading embedded sample world: %v", err))
	}
	return w
}

// LoadOrSample loads the world document at path, or the sample world when
// path is empty.
func LoadOrSample(path string) (*World, error) {
	if path == "" {
		return Sample(), nil
	}
	return LoadFromFile(path)
}
