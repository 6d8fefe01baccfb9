// Package registry provides the global catalogue of agent profiles.
// Presets register themselves in init(), allowing the scheduler, the HTTP
// layer and the CLI to look agents up by id without hardcoded lists.
package registry

import (
	"fmt"
	"sync"
)

// Range is an agent's preferred engagement distance.
type Range string

const (
	RangeClose  Range = "close"
	RangeMedium Range = "medium"
	RangeFar    Range = "far"
)

// Profile is an immutable agent personality. All weights are in [0, 1].
type Profile struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Aggression     float64 `json:"aggression" yaml:"aggression"`
	RiskTolerance  float64 `json:"riskTolerance" yaml:"risk_tolerance"`
	Accuracy       float64 `json:"accuracy" yaml:"accuracy"`
	PreferredRange Range   `json:"preferredRange" yaml:"preferred_range"`
	Color          string  `json:"color,omitempty" yaml:"color,omitempty"`
}

var (
	profiles = make(map[string]Profile)
	order    []string
	mu       sync.RWMutex
)

// Register adds a profile to the registry.
// Typically called from an init() function.
// Panics if a profile with the same ID is already registered.
func Register(p Profile) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := profiles[p.ID]; exists {
		panic(fmt.Sprintf("registry: agent %q already registered", p.ID))
	}

	profiles[p.ID] = p
	order = append(order, p.ID)
}

// List returns every registered profile in registration order.
func List() []Profile {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Profile, 0, len(order))
	for _, id := range order {
		result = append(result, profiles[id])
	}
	return result
}

// Get returns the profile with the given id.
// Returns an error if the id is not registered.
func Get(id string) (Profile, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("registry: unknown agent %q", id)
	}
	return p, nil
}

// Exists checks if an agent with the given id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := profiles[id]
	return ok
}
