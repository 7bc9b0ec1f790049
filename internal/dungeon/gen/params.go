package gen

import (
	"fmt"
	"strings"
)

// Params are the immutable inputs to a single generation run.
type Params struct {
	// GridWidth and GridHeight are the grid dimensions in cells.
	GridWidth  int `mapstructure:"grid_width" yaml:"grid_width" json:"gridWidth"`
	GridHeight int `mapstructure:"grid_height" yaml:"grid_height" json:"gridHeight"`
	// MinRooms and MaxRooms bound the target room count; the target is drawn
	// uniformly from [MinRooms, MaxRooms].
	MinRooms int `mapstructure:"min_rooms" yaml:"min_rooms" json:"minRooms"`
	MaxRooms int `mapstructure:"max_rooms" yaml:"max_rooms" json:"maxRooms"`
	// LootChance and EnemyChance are per-room spawn probabilities; the
	// remainder of the unit interval yields Empty rooms.
	LootChance  float64 `mapstructure:"loot_chance" yaml:"loot_chance" json:"lootChance"`
	EnemyChance float64 `mapstructure:"enemy_chance" yaml:"enemy_chance" json:"enemyChance"`
	// Seed selects the deterministic draw sequence. Zero means derive a seed
	// from the clock; the derived seed is recorded on the Layout so the run
	// stays reproducible.
	Seed int64 `mapstructure:"seed" yaml:"seed" json:"seed"`
}

// Validate checks all parameter invariants, failing fast before any
// allocation happens.
//
// Postcondition: Returns nil if the parameters are valid, or an error
// describing all violations.
func (p Params) Validate() error {
	var errs []string

	if p.GridWidth < 1 {
		errs = append(errs, fmt.Sprintf("grid_width must be >= 1, got %d", p.GridWidth))
	}
	if p.GridHeight < 1 {
		errs = append(errs, fmt.Sprintf("grid_height must be >= 1, got %d", p.GridHeight))
	}
	if p.MinRooms < 1 {
		errs = append(errs, fmt.Sprintf("min_rooms must be >= 1, got %d", p.MinRooms))
	}
	if p.MinRooms > p.MaxRooms {
		errs = append(errs, fmt.Sprintf("min_rooms (%d) must not exceed max_rooms (%d)", p.MinRooms, p.MaxRooms))
	}
	if p.LootChance < 0 || p.LootChance > 1 {
		errs = append(errs, fmt.Sprintf("loot_chance must be in [0,1], got %g", p.LootChance))
	}
	if p.EnemyChance < 0 || p.EnemyChance > 1 {
		errs = append(errs, fmt.Sprintf("enemy_chance must be in [0,1], got %g", p.EnemyChance))
	}
	if p.LootChance >= 0 && p.EnemyChance >= 0 && p.LootChance+p.EnemyChance > 1 {
		errs = append(errs, fmt.Sprintf("loot_chance + enemy_chance must not exceed 1, got %g", p.LootChance+p.EnemyChance))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid layout parameters: %s", strings.Join(errs, "; "))
	}
	return nil
}

// MaxPlacementIterations returns the hard safety cap on placement loop
// iterations for these parameters.
func (p Params) MaxPlacementIterations() int {
	return 2 * p.GridWidth * p.GridHeight
}

// MaxRepairSteps returns the per-room cap on connectivity repair steps;
// exceeding it indicates a bug, not a runtime condition.
func (p Params) MaxRepairSteps() int {
	return p.GridWidth + p.GridHeight
}
