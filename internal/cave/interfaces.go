package cave

// FeatureFlag is a terrain behavior flag. The feature table that maps feature
// ids to flags is owned by the caller; the chunk only keeps feature ids.
type FeatureFlag uint32

const (
	// FlagPassable means the player and monsters can walk through.
	FlagPassable FeatureFlag = 1 << iota
	// FlagProject means light and projectiles pass through.
	FlagProject
	// FlagNoFlow blocks the monster flow code (walls, rubble).
	FlagNoFlow
	// FlagFloor is normal open floor.
	FlagFloor
	// FlagWall is a solid wall (not rubble).
	FlagWall
	// FlagRock is rock of any kind, including rubble and secret doors.
	FlagRock
	// FlagGranite is a granite wall.
	FlagGranite
	// FlagMagma is a magma vein.
	FlagMagma
	// FlagQuartz is a quartz vein.
	FlagQuartz
	// FlagPermanent is a permanent feature; cannot be dug or destroyed.
	FlagPermanent
	// FlagGold is a mineral vein carrying treasure.
	FlagGold
	// FlagDoorAny is any kind of door: open, closed, broken or secret.
	FlagDoorAny
	// FlagDoorClosed is a closed door.
	FlagDoorClosed
	// FlagDoorLocked is a locked door.
	FlagDoorLocked
	// FlagDoorJammed is a jammed door.
	FlagDoorJammed
	// FlagClosable is an open door that can be closed.
	FlagClosable
	// FlagStair is any staircase.
	FlagStair
	// FlagUpstair is an up staircase.
	FlagUpstair
	// FlagDownstair is a down staircase.
	FlagDownstair
	// FlagInteresting means the feature is worth remembering when a room
	// goes dark, and worth noticing when detected.
	FlagInteresting
)

// FeatureSet resolves terrain behavior flags for feature ids. Implemented by
// the game data feature table; test fixtures supply their own.
type FeatureSet interface {
	// Has reports whether the given feature id carries the flag.
	Has(feat int, flag FeatureFlag) bool
}

// Observer is the single point of view a chunk's visibility state is
// computed for.
type Observer interface {
	// Position returns the observer's grid location.
	Position() (y, x int)
	// Light returns the observer's light radius; zero means no light
	// source, so only ambient glow can make squares seen.
	Light() int
	// Blind reports whether the observer is currently blinded.
	Blind() bool
}

// Occupant is a creature standing on a square, as far as the lighting code
// cares: it may be asleep, and illuminating it may wake it.
type Occupant interface {
	Asleep() bool
	Smart() bool
	Stupid() bool
	Wake()
}

// EntityProvider enumerates the level's creatures for the visibility and
// lighting code. A nil provider behaves as an empty level.
type EntityProvider interface {
	// EachLightSource calls fn for every live light-carrying creature.
	EachLightSource(fn func(y, x int))
	// OccupantAt returns the creature on the square, or nil.
	OccupantAt(y, x int) Occupant
}

// EventSink receives notifications from the visibility and lighting code.
// Notifications are fire and forget; sinks must not re-enter the chunk
// operation that emitted them.
type EventSink interface {
	// RedrawSquare asks the display to refresh one square.
	RedrawSquare(y, x int)
	// SquareMemorized reports a square that was just memorized, so object
	// knowledge can be updated alongside terrain knowledge.
	SquareMemorized(y, x int)
	// RequestViewUpdate asks the scheduler for a full visibility
	// recomputation before the next display.
	RequestViewUpdate()
	// FeelingReached reports how many feeling squares have been seen on
	// this level so far.
	FeelingReached(count int)
}

// noopSink is used when a chunk has no event sink attached.
type noopSink struct{}

func (noopSink) RedrawSquare(y, x int)    {}
func (noopSink) SquareMemorized(y, x int) {}
func (noopSink) RequestViewUpdate()       {}
func (noopSink) FeelingReached(count int) {}
