package rank

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dungeondredge/layoutd/internal/dungeon/gen"
)

// yamlRankFile is the top-level YAML structure for rank preset files.
type yamlRankFile struct {
	Rank yamlRank `yaml:"rank"`
}

// yamlRank is the YAML representation of a rank preset.
type yamlRank struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Params      gen.Params `yaml:"params"`
}

// LoadPresetFromBytes parses and validates a rank preset from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the rank schema.
// Postcondition: Returns a validated Preset or a non-nil error.
func LoadPresetFromBytes(data []byte) (*Preset, error) {
	var file yamlRankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rank YAML: %w", err)
	}

	preset := &Preset{
		Name:        file.Rank.Name,
		Description: file.Rank.Description,
		Params:      file.Rank.Params,
	}
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	return preset, nil
}

// LoadPresetFromFile reads and validates a single rank YAML file.
//
// Precondition: path must point to a valid YAML rank file.
// Postcondition: Returns a validated Preset or a non-nil error.
func LoadPresetFromFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rank file %s: %w", path, err)
	}
	preset, err := LoadPresetFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("rank file %s: %w", path, err)
	}
	return preset, nil
}

// LoadRegistryFromDir loads every .yaml/.yml file in dir into a Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a Registry containing one preset per file, or a
// non-nil error naming the offending file.
func LoadRegistryFromDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading rank directory %s: %w", dir, err)
	}

	var presets []*Preset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		preset, err := LoadPresetFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}

	if len(presets) == 0 {
		return nil, fmt.Errorf("rank directory %s contains no presets", dir)
	}
	return NewRegistry(presets)
}
