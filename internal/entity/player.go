// Package entity provides game entities like the player and monsters.
package entity

// Player represents the player character in the dungeon.
type Player struct {
	Y, X    int  // Current position in the dungeon
	Symbol  rune // Display symbol
	Radius  int  // Light radius in squares (0 means no light)
	Blinded bool // True while the player cannot see
	Depth   int  // Current dungeon level, 0 is the town
}

// NewPlayer creates a new player at the given position with a torch.
func NewPlayer(y, x int) *Player {
	return &Player{
		Y:      y,
		X:      x,
		Symbol: '@',
		Radius: 2,
	}
}

// Move updates the player position by the given delta.
func (p *Player) Move(dy, dx int) {
	p.Y += dy
	p.X += dx
}

// MoveTo places the player at the given position.
func (p *Player) MoveTo(y, x int) {
	p.Y = y
	p.X = x
}

// Position returns the current y, x coordinates.
func (p *Player) Position() (int, int) {
	return p.Y, p.X
}

// Light returns the player's light radius.
func (p *Player) Light() int {
	return p.Radius
}

// Blind reports whether the player is currently blinded.
func (p *Player) Blind() bool {
	return p.Blinded
}
