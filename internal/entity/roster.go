// Package entity provides game entities like the player and monsters.
package entity

import (
	"github.com/fruviad/angband/internal/cave"
)

// Roster tracks all monsters on the current level.
type Roster struct {
	monsters []*Monster
}

// NewRoster creates an empty monster roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Add registers a monster with the roster.
func (r *Roster) Add(m *Monster) {
	r.monsters = append(r.monsters, m)
}

// All returns all monsters, including dead ones.
func (r *Roster) All() []*Monster {
	return r.monsters
}

// Count returns the number of living monsters.
func (r *Roster) Count() int {
	n := 0
	for _, m := range r.monsters {
		if m.IsAlive() {
			n++
		}
	}
	return n
}

// At returns the living monster at the given position, or nil.
func (r *Roster) At(y, x int) *Monster {
	for _, m := range r.monsters {
		if m.IsAlive() && m.Y == y && m.X == x {
			return m
		}
	}
	return nil
}

// Clear removes all monsters, for use when leaving a level.
func (r *Roster) Clear() {
	r.monsters = r.monsters[:0]
}

// EachLightSource calls fn with the position of every living monster that
// carries a light.
func (r *Roster) EachLightSource(fn func(y, x int)) {
	for _, m := range r.monsters {
		if m.IsAlive() && m.HasLight() {
			fn(m.Y, m.X)
		}
	}
}

// OccupantAt returns the living monster at the given position as a cave
// occupant, or nil when the square is empty.
func (r *Roster) OccupantAt(y, x int) cave.Occupant {
	m := r.At(y, x)
	if m == nil {
		return nil
	}
	return m
}
