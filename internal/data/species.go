package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Species holds the static archetype data for one creature kind loaded
// from YAML. Policy selects the behavior implementation attached at spawn;
// "input" marks a creature driven by the external input source.
type Species struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Glyph          string `yaml:"glyph"`
	Policy         string `yaml:"policy"` // hostile, orc, troll, animal, input
	Faction        int    `yaml:"faction"`
	BlocksMovement bool   `yaml:"blocks_movement"`
	HP             int    `yaml:"hp"`
	Power          int    `yaml:"power"`
	Defense        int    `yaml:"defense"`
}

// SpawnEntry defines where and how many creatures to place at startup.
type SpawnEntry struct {
	Species string `yaml:"species"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Count   int    `yaml:"count"`
}

type speciesListFile struct {
	Species []Species `yaml:"species"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// SpeciesTable holds all species indexed by id.
type SpeciesTable struct {
	entries map[string]*Species
}

// LoadSpeciesTable loads species archetypes from a YAML file.
func LoadSpeciesTable(path string) (*SpeciesTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species list: %w", err)
	}
	var f speciesListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse species list: %w", err)
	}
	t := &SpeciesTable{entries: make(map[string]*Species, len(f.Species))}
	for i := range f.Species {
		sp := &f.Species[i]
		if sp.ID == "" {
			return nil, fmt.Errorf("species entry %d: missing id", i)
		}
		if _, dup := t.entries[sp.ID]; dup {
			return nil, fmt.Errorf("species %q: duplicate id", sp.ID)
		}
		t.entries[sp.ID] = sp
	}
	return t, nil
}

// Get returns a species by id, or nil if not found.
func (t *SpeciesTable) Get(id string) *Species {
	return t.entries[id]
}

// Count returns the number of loaded species.
func (t *SpeciesTable) Count() int {
	return len(t.entries)
}

// LoadSpawnList loads spawn entries from a YAML file.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn list: %w", err)
	}
	return f.Spawns, nil
}
