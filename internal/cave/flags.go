package cave

// SquareFlag is a bitset of per-square state stored in the chunk's info array.
type SquareFlag uint32

const (
	// SquareRoom marks squares belonging to a room, and thus affected by
	// room illumination effects.
	SquareRoom SquareFlag = 1 << iota
	// SquareVault marks squares belonging to a vault.
	SquareVault
	// SquareMark marks squares whose terrain the player has memorized.
	SquareMark
	// SquareGlow marks permanently illuminated squares.
	SquareGlow
	// SquareView marks squares currently in the player's line of sight.
	SquareView
	// SquareSeen marks squares currently in line of sight and illuminated.
	// SquareSeen is never set without SquareView.
	SquareSeen
	// SquareWasSeen is scratch state used during a single visibility pass.
	// Any code that sets it must clear it before returning.
	SquareWasSeen
	// SquareTrap marks squares holding a known trap.
	SquareTrap
	// SquareInvis marks squares holding an unknown trap.
	SquareInvis
	// SquareDTrap marks squares covered by trap detection.
	SquareDTrap
	// SquareDEdge marks squares on the inner edge of a trap detect area.
	SquareDEdge
	// SquareFeel marks squares that trigger the level feeling counter the
	// first time they are seen.
	SquareFeel

	// Wall role flags, only meaningful during level generation.
	SquareWallInner
	SquareWallOuter
	SquareWallSolid
)
