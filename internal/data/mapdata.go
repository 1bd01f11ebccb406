package data

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tile kind values as stored in map tile files.
const (
	KindWall      uint8 = 0
	KindFloor     uint8 = 1
	KindCorrupted uint8 = 2
)

// MapInfo holds metadata for a single map, loaded from maps.yaml.
type MapInfo struct {
	MapID  int    `yaml:"map_id"`
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// MapData stores loaded tile kinds + metadata for one map.
type MapData struct {
	Info  MapInfo
	tiles []uint8 // flat array [x * Height + y]
}

// KindAt returns the tile kind at local coordinates, or KindWall when out
// of bounds.
func (m *MapData) KindAt(x, y int) uint8 {
	if x < 0 || x >= m.Info.Width || y < 0 || y >= m.Info.Height {
		return KindWall
	}
	return m.tiles[x*m.Info.Height+y]
}

// MapTable provides map tile data and metadata lookups.
type MapTable struct {
	maps map[int]*MapData
}

type mapListFile struct {
	Maps []MapInfo `yaml:"maps"`
}

// LoadMapTable loads map metadata from YAML and tile kinds from text
// files. yamlPath names the map list; tileDir holds one {map_id}.txt per
// map, comma-separated kind values, one line per row.
func LoadMapTable(yamlPath, tileDir string) (*MapTable, error) {
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("read map list %s: %w", yamlPath, err)
	}
	var file mapListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse map list: %w", err)
	}

	table := &MapTable{maps: make(map[int]*MapData, len(file.Maps))}
	for _, info := range file.Maps {
		if info.Width <= 0 || info.Height <= 0 {
			return nil, fmt.Errorf("map %d: bad dimensions %dx%d", info.MapID, info.Width, info.Height)
		}
		if _, dup := table.maps[info.MapID]; dup {
			return nil, fmt.Errorf("map %d: duplicate id", info.MapID)
		}
		tiles, err := loadTileFile(tileDir, info.MapID, info.Width, info.Height)
		if err != nil {
			return nil, fmt.Errorf("map %d: %w", info.MapID, err)
		}
		table.maps[info.MapID] = &MapData{Info: info, tiles: tiles}
	}
	return table, nil
}

// loadTileFile reads a tile file: one comma-separated row per line,
// stored flat as tiles[x*height+y].
func loadTileFile(dir string, mapID, width, height int) ([]uint8, error) {
	path := filepath.Join(dir, strconv.Itoa(mapID)+".txt")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tile file: %w", err)
	}
	defer f.Close()

	tiles := make([]uint8, width*height)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)

	y := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if y >= height {
			return nil, fmt.Errorf("tile file %s: more than %d rows", path, height)
		}
		toks := strings.Split(line, ",")
		if len(toks) != width {
			return nil, fmt.Errorf("tile file %s row %d: %d columns, want %d", path, y, len(toks), width)
		}
		for x, tok := range toks {
			val, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 8)
			if err != nil {
				return nil, fmt.Errorf("tile file %s row %d col %d: %w", path, y, x, err)
			}
			if uint8(val) > KindCorrupted {
				return nil, fmt.Errorf("tile file %s row %d col %d: unknown kind %d", path, y, x, val)
			}
			tiles[x*height+y] = uint8(val)
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan tile file %s: %w", path, err)
	}
	if y != height {
		return nil, fmt.Errorf("tile file %s: %d rows, want %d", path, y, height)
	}
	return tiles, nil
}

// Get returns a map by id, or nil if not found.
func (t *MapTable) Get(mapID int) *MapData {
	return t.maps[mapID]
}

// Count returns the number of maps loaded.
func (t *MapTable) Count() int {
	return len(t.maps)
}
