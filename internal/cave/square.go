package cave

// Feature predicates, answering what kind of terrain a square holds via the
// feature table. Prefer the behavior predicates below where one fits; for
// example IsRock is false for a secret door even though the square behaves
// like rock until the door is found.

// IsFloor reports normal open floor.
func (c *Chunk) IsFloor(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagFloor)
}

// IsRock reports a plain granite wall (not a secret door).
func (c *Chunk) IsRock(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagGranite) && !c.featHas(y, x, FlagDoorAny)
}

// IsPerm reports a permanent wall.
func (c *Chunk) IsPerm(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagPermanent) && c.featHas(y, x, FlagRock)
}

// IsMagma reports a magma vein.
func (c *Chunk) IsMagma(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagMagma)
}

// IsQuartz reports a quartz vein.
func (c *Chunk) IsQuartz(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagQuartz)
}

// IsMineral reports any mineral wall: granite, magma or quartz.
func (c *Chunk) IsMineral(y, x int) bool {
	return c.IsRock(y, x) || c.IsMagma(y, x) || c.IsQuartz(y, x)
}

// HasGoldVein reports a mineral square carrying treasure.
func (c *Chunk) HasGoldVein(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagGold)
}

// IsRubble reports a pile of rubble.
func (c *Chunk) IsRubble(y, x int) bool {
	c.assertBounds(y, x)
	return !c.featHas(y, x, FlagWall) && c.featHas(y, x, FlagRock)
}

// IsSecretDoor reports a hidden door. Such squares look like granite until
// the door is detected and replaced with a closed door.
func (c *Chunk) IsSecretDoor(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagDoorAny) && c.featHas(y, x, FlagRock)
}

// IsOpenDoor reports an open door.
func (c *Chunk) IsOpenDoor(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagClosable)
}

// IsClosedDoor reports a closed door, locked or not.
func (c *Chunk) IsClosedDoor(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagDoorClosed)
}

// IsLockedDoor reports a closed door that is locked or jammed.
func (c *Chunk) IsLockedDoor(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagDoorLocked) || c.featHas(y, x, FlagDoorJammed)
}

// IsBrokenDoor reports a door broken off its hinges.
func (c *Chunk) IsBrokenDoor(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagDoorAny) &&
		c.featHas(y, x, FlagPassable) &&
		!c.featHas(y, x, FlagClosable)
}

// IsDoor reports any door: open, closed, broken or hidden.
func (c *Chunk) IsDoor(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagDoorAny)
}

// IsStairs reports any staircase.
func (c *Chunk) IsStairs(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagStair)
}

// IsUpStairs reports an up staircase.
func (c *Chunk) IsUpStairs(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagUpstair)
}

// IsDownStairs reports a down staircase.
func (c *Chunk) IsDownStairs(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagDownstair)
}

// Behavior predicates, answering how a square behaves. Built from the
// feature predicates and the info flags.

// IsPassable reports whether the player can walk through the square.
func (c *Chunk) IsPassable(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagPassable)
}

// IsProjectable reports whether light and projectiles pass through the
// square. The logical negation of IsWall.
func (c *Chunk) IsProjectable(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagProject)
}

// IsWall reports whether the square blocks sight and movement. The logical
// negation of IsProjectable.
func (c *Chunk) IsWall(y, x int) bool {
	return !c.IsProjectable(y, x)
}

// IsStrongWall reports a permanent or mineral wall, excluding things like
// secret doors and rubble.
func (c *Chunk) IsStrongWall(y, x int) bool {
	return c.IsMineral(y, x) || c.IsPerm(y, x)
}

// IsDiggable reports whether the square can be dug through: mineral walls,
// secret doors and rubble.
func (c *Chunk) IsDiggable(y, x int) bool {
	return c.IsMineral(y, x) || c.IsSecretDoor(y, x) || c.IsRubble(y, x)
}

// SeemsLikeWall reports whether the square looks like rock to the player.
func (c *Chunk) SeemsLikeWall(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagRock)
}

// IsInteresting reports terrain worth remembering even when its room goes
// dark.
func (c *Chunk) IsInteresting(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagInteresting)
}

// IsBoring is the negation of IsInteresting.
func (c *Chunk) IsBoring(y, x int) bool {
	return !c.IsInteresting(y, x)
}

// BlocksFlow reports terrain the monster flow code will not pass through.
func (c *Chunk) BlocksFlow(y, x int) bool {
	c.assertBounds(y, x)
	return c.featHas(y, x, FlagNoFlow)
}

// Info flag predicates.

// IsMark reports whether the player has memorized the square's terrain.
func (c *Chunk) IsMark(y, x int) bool {
	return c.FlagHas(y, x, SquareMark)
}

// IsGlow reports whether the square is permanently lit.
func (c *Chunk) IsGlow(y, x int) bool {
	return c.FlagHas(y, x, SquareGlow)
}

// IsVault reports whether the square is part of a vault.
func (c *Chunk) IsVault(y, x int) bool {
	return c.FlagHas(y, x, SquareVault)
}

// IsRoom reports whether the square is part of a room.
func (c *Chunk) IsRoom(y, x int) bool {
	return c.FlagHas(y, x, SquareRoom)
}

// IsSeen reports whether the observer currently sees the square.
func (c *Chunk) IsSeen(y, x int) bool {
	return c.FlagHas(y, x, SquareSeen)
}

// IsView reports whether the square is currently in the observer's line of
// sight.
func (c *Chunk) IsView(y, x int) bool {
	return c.FlagHas(y, x, SquareView)
}

// WasSeen reports whether the square was seen before the current visibility
// pass. Only meaningful inside a pass.
func (c *Chunk) WasSeen(y, x int) bool {
	return c.FlagHas(y, x, SquareWasSeen)
}

// IsDTrap reports whether the square is covered by trap detection.
func (c *Chunk) IsDTrap(y, x int) bool {
	return c.FlagHas(y, x, SquareDTrap)
}

// IsDEdge reports whether the square is on the trap detection edge.
func (c *Chunk) IsDEdge(y, x int) bool {
	return c.FlagHas(y, x, SquareDEdge)
}

// IsTrap reports whether the square holds a known trap.
func (c *Chunk) IsTrap(y, x int) bool {
	return c.FlagHas(y, x, SquareTrap)
}

// IsInvis reports whether the square holds an unknown trap.
func (c *Chunk) IsInvis(y, x int) bool {
	return c.FlagHas(y, x, SquareInvis)
}

// IsFeel reports a level feeling trigger square.
func (c *Chunk) IsFeel(y, x int) bool {
	return c.FlagHas(y, x, SquareFeel)
}

// IsWallInner, IsWallOuter and IsWallSolid report the wall roles assigned
// during level generation.
func (c *Chunk) IsWallInner(y, x int) bool {
	return c.FlagHas(y, x, SquareWallInner)
}

func (c *Chunk) IsWallOuter(y, x int) bool {
	return c.FlagHas(y, x, SquareWallOuter)
}

func (c *Chunk) IsWallSolid(y, x int) bool {
	return c.FlagHas(y, x, SquareWallSolid)
}

// DTrapEdge reports whether the square sits on the inner edge of a trap
// detect area: detected itself, with an undetected cardinal neighbor.
func (c *Chunk) DTrapEdge(y, x int) bool {
	if !c.IsDTrap(y, x) {
		return false
	}

	for d := 0; d < 4; d++ {
		yy := y + DDY[d]
		xx := x + DDX[d]
		if c.InBoundsFully(yy, xx) && !c.IsDTrap(yy, xx) {
			return true
		}
	}
	return false
}

// SetFeat changes the terrain of a square, keeping the per-feature counts
// current. On a live chunk the square is re-memorized and redrawn; during
// generation any stale wall role flags are cleared instead.
func (c *Chunk) SetFeat(y, x, feat int) {
	c.assertBounds(y, x)

	current := int(c.feat[y][x])
	c.featCount[current]--
	c.featCount[feat]++

	c.feat[y][x] = uint8(feat)

	if c.Live {
		c.NoteSpot(y, x)
		c.sink().RedrawSquare(y, x)
	} else {
		c.FlagOff(y, x, SquareWallInner|SquareWallOuter|SquareWallSolid)
	}
}

// NoteSpot memorizes the square if the observer currently sees it, and lets
// the event sink update object knowledge.
func (c *Chunk) NoteSpot(y, x int) {
	c.assertBounds(y, x)

	if !c.IsSeen(y, x) {
		return
	}

	c.sink().SquareMemorized(y, x)

	if c.IsMark(y, x) {
		return
	}
	c.FlagOn(y, x, SquareMark)
}

// CountFeats counts the known squares adjacent to the center (optionally
// including the center itself) that satisfy the predicate, and returns the
// location of the last match.
func (c *Chunk) CountFeats(cy, cx int, test func(c *Chunk, y, x int) bool, under bool) (count, y, x int) {
	for d := 0; d < 9; d++ {
		if d == 8 && !under {
			continue
		}

		yy := cy + DDY[d]
		xx := cx + DDX[d]

		if !c.InBoundsFully(yy, xx) {
			continue
		}
		if !c.IsMark(yy, xx) {
			continue
		}
		if !test(c, yy, xx) {
			continue
		}

		count++
		y, x = yy, xx
	}
	return count, y, x
}
