package data

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadSpeciesTable_Full(t *testing.T) {
	path := writeFixture(t, "species.yaml", `
species:
  - id: orc
    name: Orc
    glyph: o
    policy: orc
    faction: 1
    blocks_movement: true
    hp: 10
    power: 3
    defense: 1
  - id: deer
    name: Deer
    glyph: d
    policy: animal
    faction: 2
    blocks_movement: true
    hp: 8
`)
	table, err := LoadSpeciesTable(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Count() != 2 {
		t.Fatalf("count = %d, want 2", table.Count())
	}

	orc := table.Get("orc")
	if orc == nil {
		t.Fatal("orc missing")
	}
	if orc.Policy != "orc" || orc.Faction != 1 || !orc.BlocksMovement {
		t.Fatalf("orc mangled: %+v", orc)
	}
	if orc.HP != 10 || orc.Power != 3 || orc.Defense != 1 {
		t.Fatalf("orc stats mangled: %+v", orc)
	}

	deer := table.Get("deer")
	if deer == nil || deer.Policy != "animal" || deer.Power != 0 {
		t.Fatalf("deer mangled: %+v", deer)
	}
	if table.Get("dragon") != nil {
		t.Fatal("unknown id should return nil")
	}
}

func TestLoadSpeciesTable_DuplicateID(t *testing.T) {
	path := writeFixture(t, "species.yaml", `
species:
  - id: orc
  - id: orc
`)
	if _, err := LoadSpeciesTable(path); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestLoadSpeciesTable_MissingID(t *testing.T) {
	path := writeFixture(t, "species.yaml", `
species:
  - name: Nameless
`)
	if _, err := LoadSpeciesTable(path); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestLoadSpeciesTable_MissingFile(t *testing.T) {
	if _, err := LoadSpeciesTable(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSpawnList_Entries(t *testing.T) {
	path := writeFixture(t, "spawns.yaml", `
spawns:
  - species: orc
    x: 10
    y: 4
  - species: deer
    x: 5
    y: 10
    count: 2
`)
	spawns, err := LoadSpawnList(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(spawns) != 2 {
		t.Fatalf("len = %d, want 2", len(spawns))
	}
	if spawns[0].Species != "orc" || spawns[0].X != 10 || spawns[0].Y != 4 || spawns[0].Count != 0 {
		t.Fatalf("first entry mangled: %+v", spawns[0])
	}
	if spawns[1].Count != 2 {
		t.Fatalf("second entry count = %d, want 2", spawns[1].Count)
	}
}
