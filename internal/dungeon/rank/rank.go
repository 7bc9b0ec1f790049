// Package rank provides dungeon rank presets: named parameter sets that map
// a dungeon's difficulty rank to layout generation parameters.
package rank

import (
	"fmt"

	"github.com/dungeondredge/layoutd/internal/dungeon/gen"
)

// Preset binds a rank name to the generation parameters used for dungeons
// of that rank.
type Preset struct {
	// Name uniquely identifies the rank, e.g. "bronze".
	Name string
	// Description summarizes what a dungeon of this rank feels like.
	Description string
	// Params are the layout generation parameters for the rank. The Seed
	// field is ignored in presets; callers supply a seed per run.
	Params gen.Params
}

// Validate checks preset invariants.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("rank name must not be empty")
	}
	if p.Params.Seed != 0 {
		return fmt.Errorf("rank %q: presets must not fix a seed", p.Name)
	}
	if err := p.Params.Validate(); err != nil {
		return fmt.Errorf("rank %q: %w", p.Name, err)
	}
	return nil
}

// Registry holds the loaded rank presets, keyed by name.
type Registry struct {
	presets map[string]*Preset
}

// NewRegistry builds a Registry from the given presets.
//
// Precondition: every preset must pass Validate.
// Postcondition: Returns a Registry or an error naming the duplicate or
// invalid preset.
func NewRegistry(presets []*Preset) (*Registry, error) {
	byName := make(map[string]*Preset, len(presets))
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate rank %q", p.Name)
		}
		byName[p.Name] = p
	}
	return &Registry{presets: byName}, nil
}

// Get returns the preset for the given rank name.
//
// Postcondition: Returns (preset, true) if found, or (nil, false) otherwise.
func (r *Registry) Get(name string) (*Preset, bool) {
	p, ok := r.presets[name]
	return p, ok
}

// ParamsFor returns a copy of the rank's parameters with the given seed
// applied.
//
// Postcondition: Returns the params or an error for an unknown rank.
func (r *Registry) ParamsFor(name string, seed int64) (gen.Params, error) {
	p, ok := r.presets[name]
	if !ok {
		return gen.Params{}, fmt.Errorf("unknown rank %q", name)
	}
	params := p.Params
	params.Seed = seed
	return params, nil
}

// Count returns the number of loaded presets.
func (r *Registry) Count() int {
	return len(r.presets)
}
