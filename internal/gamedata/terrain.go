package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/fruviad/angband/internal/cave"
)

// Feature ids, matching terrain.json. The cave engine only ever sees these
// through the flag table; everything that needs a concrete feature (the
// generator, door commands) uses the constants.
const (
	FeatNone = iota
	FeatFloor
	FeatOpenDoor
	FeatBrokenDoor
	FeatClosedDoor
	FeatLockedDoor
	FeatJammedDoor
	FeatSecretDoor
	FeatLessStairs
	FeatMoreStairs
	FeatRubble
	FeatMagma
	FeatQuartz
	FeatMagmaGold
	FeatQuartzGold
	FeatGranite
	FeatPerm
)

// featureFlagNames maps the flag strings used in terrain.json to the cave
// engine's terrain flags.
var featureFlagNames = map[string]cave.FeatureFlag{
	"PASSABLE":    cave.FlagPassable,
	"PROJECT":     cave.FlagProject,
	"NO_FLOW":     cave.FlagNoFlow,
	"FLOOR":       cave.FlagFloor,
	"WALL":        cave.FlagWall,
	"ROCK":        cave.FlagRock,
	"GRANITE":     cave.FlagGranite,
	"MAGMA":       cave.FlagMagma,
	"QUARTZ":      cave.FlagQuartz,
	"PERMANENT":   cave.FlagPermanent,
	"GOLD":        cave.FlagGold,
	"DOOR_ANY":    cave.FlagDoorAny,
	"DOOR_CLOSED": cave.FlagDoorClosed,
	"DOOR_LOCKED": cave.FlagDoorLocked,
	"DOOR_JAMMED": cave.FlagDoorJammed,
	"CLOSABLE":    cave.FlagClosable,
	"STAIR":       cave.FlagStair,
	"UPSTAIR":     cave.FlagUpstair,
	"DOWNSTAIR":   cave.FlagDownstair,
	"INTERESTING": cave.FlagInteresting,
}

// FeatureDef defines a terrain feature loaded from JSON.
type FeatureDef struct {
	ID    int      `json:"id"`    // Feature id; must match the Feat* constants
	Name  string   `json:"name"`  // Display name (e.g., "granite wall")
	Glyph string   `json:"glyph"` // Single character for rendering
	Color string   `json:"color"` // Hex color code
	Flags []string `json:"flags"` // Behavior flag names
}

// GlyphRune returns the glyph as a rune for rendering.
func (f *FeatureDef) GlyphRune() rune {
	if len(f.Glyph) == 0 {
		return '?'
	}
	return []rune(f.Glyph)[0]
}

// TCellColor returns the color as a tcell.Color.
func (f *FeatureDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(f.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// TerrainFile represents the structure of terrain.json.
type TerrainFile struct {
	Features []FeatureDef `json:"features"`
}

// FeatureTable holds the loaded terrain features and their resolved flag
// sets. It implements cave.FeatureSet.
type FeatureTable struct {
	defs  []FeatureDef
	flags []cave.FeatureFlag
}

// NewFeatureTable builds a table from feature definitions. Definitions must
// be dense in id, starting at zero, and every flag name must be known.
func NewFeatureTable(defs []FeatureDef) (*FeatureTable, error) {
	t := &FeatureTable{
		defs:  defs,
		flags: make([]cave.FeatureFlag, len(defs)),
	}
	for i, def := range defs {
		if def.ID != i {
			return nil, fmt.Errorf("terrain feature %q has id %d, want %d", def.Name, def.ID, i)
		}
		for _, name := range def.Flags {
			flag, ok := featureFlagNames[name]
			if !ok {
				return nil, fmt.Errorf("terrain feature %q has unknown flag %q", def.Name, name)
			}
			t.flags[i] |= flag
		}
	}
	return t, nil
}

// LoadFeatureTable loads and builds the table from the embedded
// terrain.json.
func LoadFeatureTable() (*FeatureTable, error) {
	file, err := Load[TerrainFile]("terrain.json")
	if err != nil {
		return nil, err
	}
	if len(file.Features) == 0 {
		return nil, fmt.Errorf("no features loaded from terrain.json")
	}
	return NewFeatureTable(file.Features)
}

// MustLoadFeatureTable loads the table, panicking on error.
func MustLoadFeatureTable() *FeatureTable {
	table, err := LoadFeatureTable()
	if err != nil {
		panic(err)
	}
	return table
}

// Has reports whether the feature carries the flag. Unknown ids carry
// nothing.
func (t *FeatureTable) Has(feat int, flag cave.FeatureFlag) bool {
	if feat < 0 || feat >= len(t.flags) {
		return false
	}
	return t.flags[feat]&flag != 0
}

// Get returns the feature definition, or nil for an unknown id.
func (t *FeatureTable) Get(feat int) *FeatureDef {
	if feat < 0 || feat >= len(t.defs) {
		return nil
	}
	return &t.defs[feat]
}

// Count returns the number of features in the table.
func (t *FeatureTable) Count() int {
	return len(t.defs)
}
