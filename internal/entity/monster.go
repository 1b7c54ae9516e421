// Package entity provides game entities like the player and monsters.
package entity

import (
	"math/rand"

	"github.com/fruviad/angband/internal/gamedata"
)

// Monster represents a hostile creature in the dungeon.
type Monster struct {
	Def      *gamedata.MonsterDef // Reference to the race definition
	Y, X     int                  // Position in the dungeon
	HP       int                  // Current hit points
	MaxHP    int                  // Maximum hit points
	Sleeping bool                 // True while the monster has not noticed the player
}

// NewMonster creates a monster of the given race at the specified position.
// The sleep roll uses the race's sleep chance.
func NewMonster(def *gamedata.MonsterDef, y, x int, rng *rand.Rand) *Monster {
	return &Monster{
		Def:      def,
		Y:        y,
		X:        x,
		HP:       def.HP,
		MaxHP:    def.HP,
		Sleeping: rng.Intn(100) < def.Sleep,
	}
}

// Position returns the current y, x coordinates.
func (m *Monster) Position() (int, int) {
	return m.Y, m.X
}

// IsAlive returns true if the monster has hit points remaining.
func (m *Monster) IsAlive() bool {
	return m.HP > 0
}

// Asleep reports whether the monster is still asleep.
func (m *Monster) Asleep() bool {
	return m.Sleeping
}

// Smart reports whether the race notices disturbances easily.
func (m *Monster) Smart() bool {
	return m.Def.Smart()
}

// Stupid reports whether the race is slow to notice disturbances.
func (m *Monster) Stupid() bool {
	return m.Def.Stupid()
}

// Wake rouses the monster.
func (m *Monster) Wake() {
	m.Sleeping = false
}

// HasLight reports whether the monster carries its own light source.
func (m *Monster) HasLight() bool {
	return m.Def.HasLight()
}
