package gamedata

import (
	"errors"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// Monster behavior flag names used in monsters.json.
const (
	MonsterFlagHasLight = "HAS_LIGHT"
	MonsterFlagSmart    = "SMART"
	MonsterFlagStupid   = "STUPID"
)

// MonsterDef defines a monster race loaded from JSON.
type MonsterDef struct {
	ID          string   `json:"id"`          // Unique identifier (e.g., "kobold")
	Name        string   `json:"name"`        // Display name (e.g., "Kobold")
	Glyph       string   `json:"glyph"`       // Single character for rendering
	Color       string   `json:"color"`       // Hex color code
	HP          int      `json:"hp"`          // Base hit points
	Sleep       int      `json:"sleep"`       // Chance in percent of spawning asleep
	SpawnWeight int      `json:"spawnWeight"` // Relative spawn frequency
	Flags       []string `json:"flags"`       // Behavior flag names
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return []rune(m.Glyph)[0]
}

// TCellColor returns the color as a tcell.Color.
func (m *MonsterDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(m.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

func (m *MonsterDef) hasFlag(name string) bool {
	for _, f := range m.Flags {
		if f == name {
			return true
		}
	}
	return false
}

// HasLight reports whether the race carries its own light source.
func (m *MonsterDef) HasLight() bool {
	return m.hasFlag(MonsterFlagHasLight)
}

// Smart reports a race that always wakes when illuminated.
func (m *MonsterDef) Smart() bool {
	return m.hasFlag(MonsterFlagSmart)
}

// Stupid reports a race that rarely wakes when illuminated.
func (m *MonsterDef) Stupid() bool {
	return m.hasFlag(MonsterFlagStupid)
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}

// MonsterRegistry holds loaded monster definitions and provides spawning
// utilities.
type MonsterRegistry struct {
	monsters    []MonsterDef
	totalWeight int
}

// NewMonsterRegistry creates a registry from loaded monster definitions.
func NewMonsterRegistry(monsters []MonsterDef) *MonsterRegistry {
	totalWeight := 0
	for _, m := range monsters {
		totalWeight += m.SpawnWeight
	}
	return &MonsterRegistry{
		monsters:    monsters,
		totalWeight: totalWeight,
	}
}

// LoadMonsterRegistry loads and creates a registry from the embedded
// monsters.json.
func LoadMonsterRegistry() (*MonsterRegistry, error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	return NewMonsterRegistry(monsters), nil
}

// MustLoadMonsterRegistry loads a registry, panicking on error.
func MustLoadMonsterRegistry() *MonsterRegistry {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random monster definition using weighted
// probability. Races with higher spawnWeight are more likely.
func (r *MonsterRegistry) SpawnRandom(rng *rand.Rand) *MonsterDef {
	if r.totalWeight <= 0 || len(r.monsters) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.monsters {
		cumulative += r.monsters[i].SpawnWeight
		if roll < cumulative {
			return &r.monsters[i]
		}
	}

	// Fallback (shouldn't happen)
	return &r.monsters[0]
}

// GetByID returns the monster definition with the given ID, or nil.
func (r *MonsterRegistry) GetByID(id string) *MonsterDef {
	for i := range r.monsters {
		if r.monsters[i].ID == id {
			return &r.monsters[i]
		}
	}
	return nil
}

// All returns all monster definitions.
func (r *MonsterRegistry) All() []MonsterDef {
	return r.monsters
}

// Count returns the number of monster races in the registry.
func (r *MonsterRegistry) Count() int {
	return len(r.monsters)
}
