package world

// Room represents a rectangular room in the dungeon. The rectangle covers
// the floor area only; the surrounding wall ring is one square beyond it.
type Room struct {
	Y, X          int // Top-left corner position
	Height, Width int // Dimensions of the room
	Lit           bool
}

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.Y + r.Height/2, r.X + r.Width/2
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(y, x int) bool {
	return y >= r.Y && y < r.Y+r.Height && x >= r.X && x < r.X+r.Width
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y &&
		r.X < other.X+other.Width &&
		r.X+r.Width > other.X
}
